package state

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/leapstack-labs/cineai/internal/ranking"
)

// ErrFetchInFlight is returned by Refresh while a fetch is outstanding.
var ErrFetchInFlight = errors.New("a ranking fetch is already in progress")

// Broadcaster is told the new revision after every state change.
type Broadcaster interface {
	Broadcast(revision uint64)
}

// RefreshMetrics observes refresh requests.
type RefreshMetrics interface {
	ObserveRefresh(accepted bool)
}

// Config holds configuration for a Store.
type Config struct {
	Fetcher  ranking.Fetcher
	Notifier Broadcaster
	Logger   *slog.Logger
	Metrics  RefreshMetrics
	// FallbackMessage is shown when the fetcher fails with an error that
	// carries no user-facing message.
	FallbackMessage string
	Now             func() time.Time
}

// Store owns the single page state of the process and runs fetches against
// it. At most one fetch is outstanding at any time.
type Store struct {
	fetcher  ranking.Fetcher
	notify   Broadcaster
	logger   *slog.Logger
	metrics  RefreshMetrics
	fallback string
	now      func() time.Time

	mu       sync.RWMutex
	state    State
	revision uint64

	inFlight atomic.Bool
}

// NewStore creates a store in the initial Loading state.
func NewStore(cfg Config) *Store {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Store{
		fetcher:  cfg.Fetcher,
		notify:   cfg.Notifier,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		fallback: cfg.FallbackMessage,
		now:      cfg.Now,
		state:    Initial(),
	}
}

// Current returns the state and its revision.
func (s *Store) Current() (State, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.revision
}

// View returns the projected state and its revision.
func (s *Store) View() (AggregateState, uint64) {
	st, rev := s.Current()
	return Project(st), rev
}

// InFlight reports whether a fetch is outstanding.
func (s *Store) InFlight() bool {
	return s.inFlight.Load()
}

// Refresh enters Loading and starts a fetch in the background. The returned
// channel is closed once the fetch has completed and its result is applied.
//
// ctx bounds the fetch itself; callers pass a context that outlives the
// triggering request so a fetch, once issued, runs to completion.
func (s *Store) Refresh(ctx context.Context) (<-chan struct{}, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.observeRefresh(false)
		return nil, ErrFetchInFlight
	}
	s.observeRefresh(true)
	s.apply(RefreshRequested{}, false)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.run(ctx)
	}()
	return done, nil
}

func (s *Store) run(ctx context.Context) {
	res, err := s.fetcher.FetchRanking(ctx)
	if err != nil {
		msg := ranking.UserMessage(err, s.fallback)
		s.logger.Debug("ranking refresh failed", "error", err)
		s.apply(FetchFailed{Message: msg}, true)
		return
	}
	s.logger.Info("ranking refreshed", "tools", len(res.Tools), "sources", len(res.Sources))
	s.apply(FetchSucceeded{Result: res, At: s.now()}, true)
}

// apply advances the state. When finish is set the in-flight flag is cleared
// under the same lock, so a new refresh can never interleave with the result
// of the previous one.
func (s *Store) apply(e Event, finish bool) {
	s.mu.Lock()
	s.state = Update(s.state, e)
	s.revision++
	rev := s.revision
	if finish {
		s.inFlight.Store(false)
	}
	s.mu.Unlock()

	if s.notify != nil {
		s.notify.Broadcast(rev)
	}
}

func (s *Store) observeRefresh(accepted bool) {
	if s.metrics != nil {
		s.metrics.ObserveRefresh(accepted)
	}
}
