package state

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leapstack-labs/cineai/internal/ranking"
	"github.com/leapstack-labs/cineai/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher returns queued results, optionally blocking until released.
type stubFetcher struct {
	mu      sync.Mutex
	calls   int
	results []ranking.Result
	errs    []error
	gate    chan struct{}
}

func (f *stubFetcher) FetchRanking(ctx context.Context) (ranking.Result, error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return ranking.Result{}, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	var res ranking.Result
	var err error
	if i < len(f.results) {
		res = f.results[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return res, err
}

func (f *stubFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingBroadcaster struct {
	mu   sync.Mutex
	revs []uint64
}

func (b *recordingBroadcaster) Broadcast(rev uint64) {
	b.mu.Lock()
	b.revs = append(b.revs, rev)
	b.mu.Unlock()
}

func (b *recordingBroadcaster) Revisions() []uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]uint64(nil), b.revs...)
}

type countingMetrics struct {
	accepted, rejected atomic.Int32
}

func (m *countingMetrics) ObserveRefresh(accepted bool) {
	if accepted {
		m.accepted.Add(1)
	} else {
		m.rejected.Add(1)
	}
}

func newTestStore(t *testing.T, f ranking.Fetcher, b Broadcaster, m RefreshMetrics) *Store {
	t.Helper()
	return NewStore(Config{
		Fetcher:         f,
		Notifier:        b,
		Logger:          testutil.NewTestLogger(t),
		Metrics:         m,
		FallbackMessage: "fallback",
		Now:             func() time.Time { return t0 },
	})
}

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("fetch did not complete")
	}
}

func TestStore_InitialState(t *testing.T) {
	s := newTestStore(t, &stubFetcher{}, nil, nil)
	st, rev := s.Current()
	assert.Equal(t, Loading{}, st)
	assert.Equal(t, uint64(0), rev)
	assert.False(t, s.InFlight())
}

// Scenario A: mount, success, tools and sources shown.
func TestStore_RefreshSuccess(t *testing.T) {
	f := &stubFetcher{results: []ranking.Result{{Tools: toolsA, Sources: srcsA}}}
	b := &recordingBroadcaster{}
	s := newTestStore(t, f, b, nil)

	done, err := s.Refresh(context.Background())
	require.NoError(t, err)
	wait(t, done)

	v, rev := s.View()
	assert.False(t, v.IsLoading)
	assert.Empty(t, v.Error)
	assert.Equal(t, toolsA, v.Tools)
	assert.Equal(t, srcsA, v.Sources)
	assert.Equal(t, uint64(2), rev)
	assert.Equal(t, []uint64{1, 2}, b.Revisions())
	assert.False(t, s.InFlight())
}

// Scenario B: success, then a refresh fails; stale data stays with the error.
func TestStore_RefreshFailureKeepsStaleData(t *testing.T) {
	fe := &ranking.FetchError{Message: "Não foi possível carregar o ranking. Tente novamente mais tarde.", Err: errors.New("401")}
	f := &stubFetcher{
		results: []ranking.Result{{Tools: toolsA, Sources: srcsA}},
		errs:    []error{nil, fe},
	}
	s := newTestStore(t, f, nil, nil)

	done, err := s.Refresh(context.Background())
	require.NoError(t, err)
	wait(t, done)

	done, err = s.Refresh(context.Background())
	require.NoError(t, err)
	wait(t, done)

	v, _ := s.View()
	assert.Equal(t, fe.Message, v.Error)
	assert.Equal(t, toolsA, v.Tools)
	assert.Equal(t, srcsA, v.Sources)
	assert.False(t, v.IsLoading)
}

// Scenario C: malformed payload is a success with no tools.
func TestStore_EmptyResultIsSuccess(t *testing.T) {
	f := &stubFetcher{results: []ranking.Result{{Tools: []ranking.ToolEntry{}, Sources: srcsA}}}
	s := newTestStore(t, f, nil, nil)

	done, err := s.Refresh(context.Background())
	require.NoError(t, err)
	wait(t, done)

	st, _ := s.Current()
	assert.IsType(t, Loaded{}, st)
	v := Project(st)
	assert.Empty(t, v.Tools)
	assert.Empty(t, v.Error)
	assert.True(t, v.ShowSources())
}

func TestStore_UnknownErrorUsesFallback(t *testing.T) {
	f := &stubFetcher{errs: []error{errors.New("raw transport detail")}}
	s := newTestStore(t, f, nil, nil)

	done, err := s.Refresh(context.Background())
	require.NoError(t, err)
	wait(t, done)

	v, _ := s.View()
	assert.Equal(t, "fallback", v.Error)
}

func TestStore_RefreshClearsErrorImmediately(t *testing.T) {
	f := &stubFetcher{
		errs: []error{&ranking.FetchError{Message: "boom"}},
		gate: make(chan struct{}, 2),
	}
	s := newTestStore(t, f, nil, nil)

	f.gate <- struct{}{}
	done, err := s.Refresh(context.Background())
	require.NoError(t, err)
	wait(t, done)
	v, _ := s.View()
	require.Equal(t, "boom", v.Error)

	done, err = s.Refresh(context.Background())
	require.NoError(t, err)

	v, _ = s.View()
	assert.True(t, v.IsLoading)
	assert.Empty(t, v.Error, "error must be cleared before the result arrives")

	f.gate <- struct{}{}
	wait(t, done)
}

func TestStore_SingleFetchInFlight(t *testing.T) {
	f := &stubFetcher{gate: make(chan struct{})}
	m := &countingMetrics{}
	s := newTestStore(t, f, nil, m)

	done, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, s.InFlight())

	var wg sync.WaitGroup
	var rejected sync.Map
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := s.Refresh(context.Background()); errors.Is(err, ErrFetchInFlight) {
				rejected.Store(i, true)
			}
		}(i)
	}
	wg.Wait()

	count := 0
	rejected.Range(func(_, _ any) bool { count++; return true })
	assert.Equal(t, 10, count)

	close(f.gate)
	wait(t, done)

	assert.Equal(t, 1, f.Calls())
	assert.Equal(t, int32(1), m.accepted.Load())
	assert.Equal(t, int32(10), m.rejected.Load())
	assert.False(t, s.InFlight())

	// The flag is released once the result is applied.
	done, err = s.Refresh(context.Background())
	require.NoError(t, err)
	wait(t, done)
	assert.Equal(t, 2, f.Calls())
}
