package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"tilde only", "~", home},
		{"tilde prefix", "~/data/spend.db", filepath.Join(home, "data/spend.db")},
		{"plain path untouched", "/var/lib/spend.db", "/var/lib/spend.db"},
		{"env var", "$HOME/spend.db", filepath.Join(home, "spend.db")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandPath(tt.input)
			if got != tt.expected {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestResolveDataPath(t *testing.T) {
	if got := ResolveDataPath("/tmp/custom.db"); got != "/tmp/custom.db" {
		t.Errorf("configured path should pass through, got %q", got)
	}

	got := ResolveDataPath("")
	if !strings.HasSuffix(got, filepath.Join(".local", "share", "spend", "spend.db")) {
		t.Errorf("empty config should resolve to the default location, got %q", got)
	}
	if strings.Contains(got, "$") {
		t.Errorf("default should be fully expanded, got %q", got)
	}
}
