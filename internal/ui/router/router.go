// Package router sets up HTTP routes for the UI server.
package router

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/cineai/internal/i18n"
	"github.com/leapstack-labs/cineai/internal/state"
	"github.com/leapstack-labs/cineai/internal/telemetry"
	rankingFeature "github.com/leapstack-labs/cineai/internal/ui/features/ranking"
	"github.com/leapstack-labs/cineai/internal/ui/notifier"
	"github.com/leapstack-labs/cineai/internal/ui/resources"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/starfederation/datastar-go/datastar"
)

// Deps are the collaborators the routes need.
type Deps struct {
	Store        *state.Store
	SessionStore sessions.Store
	Notifier     *notifier.Notifier
	Localizer    *i18n.Localizer
	Logger       *slog.Logger
	FetchContext context.Context
	Gatherer     prometheus.Gatherer
	Skeletons    int
	IsDev        bool
	// Reloader receives dev hot-reload requests. Required when IsDev is set.
	Reloader *Reloader
}

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, deps Deps) error {
	// Hot reload endpoint for dev mode
	if deps.IsDev {
		if deps.Reloader == nil {
			deps.Reloader = NewReloader()
		}
		setupReload(router, deps.Reloader)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	router.Handle("/metrics", telemetry.Handler(deps.Gatherer))

	// Feature routes
	return rankingFeature.SetupRoutes(router, rankingFeature.Options{
		Store:        deps.Store,
		SessionStore: deps.SessionStore,
		Notifier:     deps.Notifier,
		Localizer:    deps.Localizer,
		Logger:       deps.Logger,
		FetchContext: deps.FetchContext,
		Skeletons:    deps.Skeletons,
		IsDev:        deps.IsDev,
	})
}

// Reloader tells every connected dev page to reload.
type Reloader struct {
	notifier *notifier.Notifier
	seq      atomic.Uint64
}

// NewReloader creates a Reloader.
func NewReloader() *Reloader {
	return &Reloader{notifier: notifier.New()}
}

// Trigger reloads all pages connected to /reload. Pages that have not read
// an earlier request yet reload once.
func (r *Reloader) Trigger() {
	r.notifier.Broadcast(r.seq.Add(1))
}

// Listeners returns the number of connected pages.
func (r *Reloader) Listeners() int {
	return r.notifier.Count()
}

func setupReload(router chi.Router, reloader *Reloader) {
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		updates := reloader.notifier.Subscribe()
		defer reloader.notifier.Unsubscribe(updates)

		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-updates:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		reloader.Trigger()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
