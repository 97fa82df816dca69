package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/smartspend/smartspend/internal/classify"
	"github.com/smartspend/smartspend/internal/cli"
	"github.com/smartspend/smartspend/internal/common"
	"github.com/smartspend/smartspend/internal/config"
	"github.com/smartspend/smartspend/internal/data"
	"github.com/smartspend/smartspend/internal/store"
)

// openData opens the document store and builds the data facade over it.
// The caller owns the returned store and must Close it.
func openData() (*data.Data, *store.Store, error) {
	dbPath := config.ResolveDataPath(viper.GetString("data.path"))

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open data file: %w", err)
	}

	return data.New(s), s, nil
}

// createSuggester builds the optional category suggester from config. A
// missing provider or API key is not an error for the caller: commands fall
// back to manual category selection.
func createSuggester() (*classify.Suggester, error) {
	provider := viper.GetString("classifier.provider")
	if provider == "" {
		provider = "anthropic"
	}

	cfg := classify.Config{
		Provider:   provider,
		Model:      viper.GetString("classifier.model"),
		MaxRetries: viper.GetInt("classifier.max_retries"),
		RetryDelay: viper.GetDuration("classifier.retry_delay"),
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}

	apiKey := viper.GetString("classifier.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: classifier API key not found in config or ANTHROPIC_API_KEY", common.ErrMissingConfig)
	}
	cfg.APIKey = apiKey

	client, err := classify.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return classify.NewSuggester(client, cfg), nil
}

// reportSaveError prints the right message for a mutation error. Writes
// that landed in memory but not on disk get a warning rather than a
// failure, since the change is still live for this run.
func reportSaveError(err error) error {
	if errors.Is(err, common.ErrNotPersisted) {
		fmt.Println(cli.FormatWarning("saved in memory only; the change may not survive restart"))
		return nil
	}
	return err
}
