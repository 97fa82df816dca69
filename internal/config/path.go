// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	// First expand tilde if present
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	// Then expand environment variables
	return os.ExpandEnv(path)
}

// DefaultDataPath is the fallback location of the document store when no
// data.path is configured.
const DefaultDataPath = "$HOME/.local/share/spend/spend.db"

// ResolveDataPath expands the configured store path, falling back to the
// default location when empty.
func ResolveDataPath(configured string) string {
	if configured == "" {
		configured = DefaultDataPath
	}
	return ExpandPath(configured)
}
