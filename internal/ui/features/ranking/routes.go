// Package ranking provides the ranking page feature for the UI.
package ranking

import (
	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures routes for the ranking feature.
func SetupRoutes(router chi.Router, opts Options) error {
	handlers := NewHandlers(opts)

	router.Get("/", handlers.RankingPage)
	router.Get("/updates", handlers.RankingUpdates)
	router.Post("/refresh", handlers.Refresh)

	router.Route("/api", func(r chi.Router) {
		r.Get("/ranking", handlers.RankingJSON)
	})
	router.Get("/healthz", handlers.Health)

	return nil
}
