// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/cineai/internal/i18n"
	"github.com/leapstack-labs/cineai/internal/ranking"
	"github.com/leapstack-labs/cineai/internal/state"
	"github.com/leapstack-labs/cineai/internal/testutil"
	"github.com/leapstack-labs/cineai/internal/ui/notifier"
)

// FakeFetcher answers fetches with a fixed result or error. When Gate is set
// every fetch blocks until it is closed.
type FakeFetcher struct {
	mu     sync.Mutex
	Result ranking.Result
	Err    error
	Gate   chan struct{}
	calls  int
}

// FetchRanking implements ranking.Fetcher.
func (f *FakeFetcher) FetchRanking(ctx context.Context) (ranking.Result, error) {
	f.mu.Lock()
	f.calls++
	gate := f.Gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ranking.Result{}, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Result, f.Err
}

// Calls returns the number of fetches issued.
func (f *FakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Store        *state.Store
	Fetcher      *FakeFetcher
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
	Localizer    *i18n.Localizer
}

// SetupTestFixture creates a store wired to a notifier and a fake fetcher.
// The store starts in its initial loading state; use Settle to run a fetch.
func SetupTestFixture(t *testing.T, fetcher *FakeFetcher) *TestFixture {
	t.Helper()

	if fetcher == nil {
		fetcher = &FakeFetcher{}
	}
	notify := notifier.New()
	loc := i18n.MustNew(i18n.DefaultLocale)

	store := state.NewStore(state.Config{
		Fetcher:         fetcher,
		Notifier:        notify,
		Logger:          testutil.NewTestLogger(t),
		FallbackMessage: loc.T(i18n.MsgLoadFailed),
		Now: func() time.Time {
			return time.Date(2025, 5, 6, 14, 30, 15, 0, time.Local)
		},
	})

	sessionStore := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	return &TestFixture{
		Store:        store,
		Fetcher:      fetcher,
		Notifier:     notify,
		SessionStore: sessionStore,
		Localizer:    loc,
	}
}

// Settle runs one fetch to completion.
func (f *TestFixture) Settle(t *testing.T) {
	t.Helper()

	done, err := f.Store.Refresh(context.Background())
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("fetch did not complete")
	}
}
