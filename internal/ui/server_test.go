package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/cineai/internal/i18n"
	"github.com/leapstack-labs/cineai/internal/ranking"
	"github.com/leapstack-labs/cineai/internal/state"
	"github.com/leapstack-labs/cineai/internal/testutil"
	"github.com/leapstack-labs/cineai/internal/ui/features"
	"github.com/leapstack-labs/cineai/internal/ui/notifier"
)

func newServer(t *testing.T, fetcher ranking.Fetcher) *Server {
	t.Helper()

	notify := notifier.New()
	store := state.NewStore(state.Config{Fetcher: fetcher, Notifier: notify})

	return NewServer(Config{
		Store:         store,
		Notifier:      notify,
		Localizer:     i18n.MustNew("en"),
		Port:          0,
		SessionSecret: "test-secret-key-32-bytes-long!!",
		Logger:        testutil.NewTestLogger(t),
		Gatherer:      prometheus.NewRegistry(),
	})
}

func TestServer_Handler(t *testing.T) {
	s := newServer(t, &features.FakeFetcher{Result: ranking.Result{
		Tools: []ranking.ToolEntry{{Name: "Runway", Rank: 1}},
	}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h, err := s.Handler(ctx)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `lang="en"`)
	assert.Contains(t, rec.Body.String(), "Refreshing...")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/refresh", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)

	require.Eventually(t, func() bool { return !s.store.InFlight() }, 2*time.Second, 5*time.Millisecond)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rec.Body.String(), "Runway")
	assert.Contains(t, rec.Body.String(), "Refresh now")
}

func TestServer_Defaults(t *testing.T) {
	s := NewServer(Config{Port: 8765, SessionSecret: "x"})

	assert.Equal(t, "http://localhost:8765", s.URL())
	assert.NotNil(t, s.Notifier())
	assert.NotNil(t, s.logger)
}
