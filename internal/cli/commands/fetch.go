package commands

import (
	"context"
	"errors"
	"time"

	"github.com/leapstack-labs/cineai/internal/cli/output"
	"github.com/leapstack-labs/cineai/internal/ranking"
	"github.com/spf13/cobra"
)

// FetchOptions holds options for the fetch command.
type FetchOptions struct {
	Timeout time.Duration
}

// NewFetchCommand creates the fetch command.
func NewFetchCommand() *cobra.Command {
	opts := &FetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the current ranking once and print it",
		Long: `Ask Gemini, grounded with Google Search, for the current top free AI video
tools and print the ranking with its sources.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json, yaml`,
		Example: `  # Print the ranking
  cineai fetch

  # As JSON for scripts
  cineai fetch --output json

  # In English, with a shorter deadline
  cineai fetch --locale en --timeout 30s`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			return runFetch(cmd.Context(), cmdCtx, cmdCtx.NewFetcher(nil), opts)
		},
	}

	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 90*time.Second, "Give up on the fetch after this long")

	return cmd
}

func runFetch(ctx context.Context, cmdCtx *CommandContext, fetcher ranking.Fetcher, opts *FetchOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	res, err := fetcher.FetchRanking(ctx)
	if err != nil {
		// the cause is already logged by the fetcher
		return errors.New(ranking.UserMessage(err, err.Error()))
	}
	fetchedAt := time.Now()

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(newFetchOutput(res, cmdCtx, fetchedAt))
	case output.ModeYAML:
		return r.YAML(newFetchOutput(res, cmdCtx, fetchedAt))
	case output.ModeMarkdown:
		return fetchMarkdown(r, cmdCtx.Localizer, res, fetchedAt)
	default:
		return fetchText(r, cmdCtx.Localizer, res, fetchedAt)
	}
}
