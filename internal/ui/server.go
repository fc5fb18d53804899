// Package ui provides the web page for the CineAI ranking.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/cineai/internal/i18n"
	"github.com/leapstack-labs/cineai/internal/state"
	"github.com/leapstack-labs/cineai/internal/ui/notifier"
	"github.com/leapstack-labs/cineai/internal/ui/resources"
	"github.com/leapstack-labs/cineai/internal/ui/router"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// Server is the main UI server.
type Server struct {
	store        *state.Store
	loc          *i18n.Localizer
	sessionStore *sessions.CookieStore
	port         int
	watch        bool
	skeletons    int
	logger       *slog.Logger
	notifier     *notifier.Notifier
	gatherer     prometheus.Gatherer
	reloader     *router.Reloader
}

// Config holds configuration for the UI server.
type Config struct {
	Store         *state.Store
	Notifier      *notifier.Notifier
	Localizer     *i18n.Localizer
	Port          int
	Watch         bool
	SessionSecret string
	Skeletons     int
	Logger        *slog.Logger
	Gatherer      prometheus.Gatherer
}

// NewServer creates a new UI server instance. cfg.Notifier must be the
// broadcaster the store was built with.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Notifier == nil {
		cfg.Notifier = notifier.New()
	}

	return &Server{
		store:        cfg.Store,
		loc:          cfg.Localizer,
		sessionStore: sessionStore,
		port:         cfg.Port,
		watch:        cfg.Watch,
		skeletons:    cfg.Skeletons,
		logger:       cfg.Logger,
		notifier:     cfg.Notifier,
		gatherer:     cfg.Gatherer,
		reloader:     router.NewReloader(),
	}
}

// Handler builds the routed handler. fetchCtx bounds fetches started by
// refresh requests.
func (s *Server) Handler(fetchCtx context.Context) (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	err := router.SetupRoutes(r, router.Deps{
		Store:        s.store,
		SessionStore: s.sessionStore,
		Notifier:     s.notifier,
		Localizer:    s.loc,
		Logger:       s.logger,
		FetchContext: fetchCtx,
		Gatherer:     s.gatherer,
		Skeletons:    s.skeletons,
		IsDev:        s.IsDev(),
		Reloader:     s.reloader,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
// The first fetch is issued as soon as the server starts.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting UI server", "addr", s.URL())

	eg, egctx := errgroup.WithContext(ctx)

	handler, err := s.Handler(egctx)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if _, err := s.store.Refresh(egctx); err != nil {
		s.logger.Warn("initial fetch not started", "error", err)
	}

	// Start file watcher if enabled
	if s.watch && s.IsDev() {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// URL is the local address of the page.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

// IsDev returns true when built with the dev tag.
func (s *Server) IsDev() bool {
	return resources.IsDev
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchFiles reloads dev pages when a static asset changes.
func (s *Server) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	dir := resources.Dir()
	if err := watcher.Add(dir); err != nil {
		s.logger.Error("failed to watch static directory", "dir", dir, "error", err)
		// Don't fail - continue without watching
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("static file changed, reloading pages", "file", name)
				s.reloader.Trigger()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}
