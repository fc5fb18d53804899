package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/cineai/internal/cli/config"
	"github.com/leapstack-labs/cineai/internal/cli/output"
	"github.com/leapstack-labs/cineai/internal/i18n"
	"github.com/leapstack-labs/cineai/internal/ranking"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg       *config.Config
	Logger    *slog.Logger
	Localizer *i18n.Localizer
	Renderer  *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	loc, err := i18n.New(cfg.Locale)
	if err != nil {
		return nil, err
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:       cfg,
		Logger:    logger,
		Localizer: loc,
		Renderer:  r,
	}, nil
}

// NewFetcher builds the Gemini fetcher for this command. metrics may be nil.
func (c *CommandContext) NewFetcher(metrics ranking.Metrics) *ranking.GeminiFetcher {
	if c.Cfg.APIKey == "" {
		c.Logger.Warn("no API key configured; set CINEAI_API_KEY or GEMINI_API_KEY")
	} else {
		c.Logger.Debug("using Gemini API key", "key", config.RedactKey(c.Cfg.APIKey), "model", c.Cfg.Model)
	}

	return ranking.NewGeminiFetcher(ranking.GeminiConfig{
		APIKey:    c.Cfg.APIKey,
		Model:     c.Cfg.Model,
		BaseURL:   c.Cfg.BaseURL,
		Localizer: c.Localizer,
		Logger:    c.Logger,
		Metrics:   metrics,
	})
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise loads defaults
// and environment variables without flags.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	cfg, err := config.LoadConfig("", nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using defaults\n", err)
		return &config.Config{
			Model:        config.DefaultModel,
			Locale:       config.DefaultLocale,
			LogFormat:    config.DefaultLogFormat,
			OutputFormat: config.DefaultOutput,
			UI:           config.DefaultUIConfig(),
		}
	}
	return cfg
}
