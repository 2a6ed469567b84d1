package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/asimons81/guide-generator/internal/config"
	"github.com/asimons81/guide-generator/internal/llm"
	"github.com/asimons81/guide-generator/internal/observability"
	"github.com/asimons81/guide-generator/internal/workflow"
)

var configFile string

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a JSON config file overlaying the environment")
}

// loadConfig reads configuration from the environment, with an optional JSON
// file overlay. The full credential set is validated here so a missing value
// halts at startup instead of deep inside a pipeline stage.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore opens the session checkpoint store under the configured state
// directory.
func openStore(cfg *config.Config) (*workflow.Store, error) {
	return workflow.NewStore(cfg.StateDir)
}

// loadSession reads the named session checkpoint.
func loadSession(store *workflow.Store, id string) (*workflow.Session, error) {
	if id == "" {
		return nil, fmt.Errorf("--session is required")
	}
	return store.Load(id)
}

// newLLMClient builds the generation client from configuration.
func newLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}
	return client, nil
}

// printer returns the verbose-mode printer, or one that writes nowhere.
func printer(cfg *config.Config) *observability.Printer {
	if cfg.Verbose {
		return observability.NewPrinter(os.Stdout)
	}
	return observability.NewPrinter(io.Discard)
}
