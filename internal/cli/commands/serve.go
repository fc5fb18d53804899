package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/leapstack-labs/cineai/internal/i18n"
	"github.com/leapstack-labs/cineai/internal/state"
	"github.com/leapstack-labs/cineai/internal/telemetry"
	"github.com/leapstack-labs/cineai/internal/ui"
	"github.com/leapstack-labs/cineai/internal/ui/notifier"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Open      bool
	Watch     bool
	Skeletons int
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	return newServeCommand(&ServeOptions{})
}

func newServeCommand(opts *ServeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"ui"},
		Short:   "Serve the live ranking page",
		Long: `Start a local web server with the ranking page.

The first ranking fetch starts as soon as the server is up. Open pages
receive every state change over server-sent events, and the refresh
button starts a new fetch unless one is already running.

Endpoints:
  /             ranking page
  /updates      live updates (SSE)
  /refresh      start a fetch (POST)
  /api/ranking  current state as JSON
  /metrics      Prometheus metrics
  /healthz      liveness`,
		Example: `  # Start on the default port
  cineai serve

  # Start on a custom port and open the browser
  cineai serve --port 3000 --open

  # English page
  cineai serve --locale en`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.Open, "open", false, "Open the page in the browser")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't open the browser even if ui.auto_open is set")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Reload open pages when static assets change (dev builds)")
	cmd.Flags().IntVar(&opts.Skeletons, "skeletons", 0, "Placeholder blocks shown while loading (default: 3)")

	return cmd
}

// serveSettings are the effective UI settings after flags override config.
type serveSettings struct {
	Port      int
	AutoOpen  bool
	Watch     bool
	Skeletons int
	Secret    string
}

func resolveServeSettings(cmd *cobra.Command, cmdCtx *CommandContext, opts *ServeOptions) serveSettings {
	uiCfg := cmdCtx.Cfg.GetUIConfig()

	s := serveSettings{
		Port:      uiCfg.Port,
		AutoOpen:  uiCfg.AutoOpen,
		Watch:     uiCfg.Watch,
		Skeletons: uiCfg.Skeletons,
		Secret:    uiCfg.SessionSecret,
	}

	// CLI flags override config file
	if opts.Port != 0 {
		s.Port = opts.Port
	}
	if opts.Open {
		s.AutoOpen = true
	}
	if opts.NoBrowser {
		s.AutoOpen = false
	}
	if cmd.Flags().Changed("watch") {
		s.Watch = opts.Watch
	}
	if opts.Skeletons > 0 {
		s.Skeletons = opts.Skeletons
	}
	return s
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	logger := cmdCtx.Logger
	settings := resolveServeSettings(cmd, cmdCtx, opts)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := telemetry.NewPrometheusMetrics(reg)

	notify := notifier.New()
	store := state.NewStore(state.Config{
		Fetcher:         cmdCtx.NewFetcher(metrics),
		Notifier:        notify,
		Logger:          logger,
		Metrics:         metrics,
		FallbackMessage: cmdCtx.Localizer.T(i18n.MsgLoadFailed),
	})

	server := ui.NewServer(ui.Config{
		Store:         store,
		Notifier:      notify,
		Localizer:     cmdCtx.Localizer,
		Port:          settings.Port,
		Watch:         settings.Watch,
		SessionSecret: settings.Secret,
		Skeletons:     settings.Skeletons,
		Logger:        logger,
		Gatherer:      reg,
	})

	if settings.Watch && !server.IsDev() {
		logger.Warn("--watch has no effect in release builds; rebuild with -tags dev")
	}

	// Open browser if configured
	if settings.AutoOpen {
		go openBrowser(server.URL())
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving the ranking on %s\n", server.URL())
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return server.Serve(ctx)
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(context.Background(), "open", url)
	case "linux":
		cmd = exec.CommandContext(context.Background(), "xdg-open", url)
	case "windows":
		cmd = exec.CommandContext(context.Background(), "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return
	}

	_ = cmd.Start()
}
