// Package classify suggests a category for a transaction description using
// an external text-classification service. It only feeds suggestions into
// transaction entry before submission; a failed or nonsense reply never
// blocks manual category selection.
package classify

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Client defines the interface for classification providers.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds configuration for the classifier.
type Config struct {
	Provider   string
	APIKey     string
	Model      string
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// NewClient creates a classification client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "anthropic":
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", cfg.Provider)
	}
}
