package classify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/smartspend/smartspend/internal/common"
	"github.com/smartspend/smartspend/internal/model"
)

// noMatchReply is what the service returns when no category fits.
const noMatchReply = "Other"

// Suggester asks the classification service for a best-guess category.
type Suggester struct {
	client    Client
	retryOpts common.RetryOptions
}

// NewSuggester wraps a client with retry behavior.
func NewSuggester(client Client, cfg Config) *Suggester {
	retryOpts := common.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}

	return &Suggester{
		client:    client,
		retryOpts: retryOpts,
	}
}

// SuggestCategory returns the category whose name the service picked for
// description, matched case-insensitively against categories. The second
// return is false when the service answered "Other", named no known
// category, or the call failed in a non-retryable way after retries.
func (s *Suggester) SuggestCategory(ctx context.Context, description string, categories []model.Category) (*model.Category, bool, error) {
	if len(categories) == 0 {
		return nil, false, nil
	}

	prompt := buildPrompt(description, categories)

	var reply string
	err := common.WithRetry(ctx, func() error {
		var callErr error
		reply, callErr = s.client.Complete(ctx, prompt)
		return callErr
	}, s.retryOpts)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", common.ErrClassificationFailed, err)
	}

	name := strings.TrimSpace(strings.Trim(strings.TrimSpace(reply), `"`))
	if name == "" || strings.EqualFold(name, noMatchReply) {
		return nil, false, nil
	}

	for i := range categories {
		if strings.EqualFold(categories[i].Name, name) {
			return &categories[i], true, nil
		}
	}

	slog.Debug("classifier named an unknown category, ignoring",
		"reply", name, "description", description)
	return nil, false, nil
}

// buildPrompt lists the allowed category names and asks for exactly one.
func buildPrompt(description string, categories []model.Category) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Given the following transaction description: %q,\n", description)
	b.WriteString("categorize it into one of the following spending categories:\n")
	for _, cat := range categories {
		fmt.Fprintf(&b, "- %q\n", cat.Name)
	}
	b.WriteString("\nReturn ONLY the category name. Do not include any other text or explanation.\n")
	b.WriteString(`If none of the categories are appropriate, return "Other".`)
	return b.String()
}
