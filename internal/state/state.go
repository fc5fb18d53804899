// Package state holds the ranking page state as an explicit tagged value and
// the store that drives it through fetches.
//
// The page is always in exactly one of Loading, Loaded or Failed. Transitions
// only happen through Update, a pure function of the current state and an
// event, so every path can be tested without a server or a provider.
package state

import (
	"time"

	"github.com/leapstack-labs/cineai/internal/ranking"
)

// Snapshot is the data of the last successful fetch.
type Snapshot struct {
	Tools     []ranking.ToolEntry
	Sources   []ranking.CitationSource
	UpdatedAt time.Time
}

// State is one of Loading, Loaded or Failed.
type State interface {
	isState()
	// Data returns the snapshot the state carries. Loading and Failed carry
	// the data of the last success so it can be shown again.
	Data() Snapshot
}

// Loading is the initial state and the state of every refresh.
type Loading struct {
	Previous Snapshot
}

// Loaded holds the result of a successful fetch.
type Loaded struct {
	Snapshot
}

// Failed holds the user-facing message of a failed fetch plus the stale data
// still shown under it.
type Failed struct {
	Message string
	Stale   Snapshot
}

func (Loading) isState() {}
func (Loaded) isState()  {}
func (Failed) isState()  {}

func (s Loading) Data() Snapshot { return s.Previous }
func (s Loaded) Data() Snapshot  { return s.Snapshot }
func (s Failed) Data() Snapshot  { return s.Stale }

// Event advances the state.
type Event interface {
	isEvent()
}

// RefreshRequested starts a fetch.
type RefreshRequested struct{}

// FetchSucceeded carries a fetch result and the time it completed.
type FetchSucceeded struct {
	Result ranking.Result
	At     time.Time
}

// FetchFailed carries the user-facing error message.
type FetchFailed struct {
	Message string
}

func (RefreshRequested) isEvent() {}
func (FetchSucceeded) isEvent()   {}
func (FetchFailed) isEvent()      {}

// Initial is the state before the first fetch completes.
func Initial() State {
	return Loading{}
}

// Update returns the state that follows s after e.
//
//	any     + RefreshRequested -> Loading (error cleared, data kept)
//	Loading + FetchSucceeded   -> Loaded
//	Loading + FetchFailed      -> Failed (data of the last success kept)
//
// Fetch results that arrive outside Loading are ignored.
func Update(s State, e Event) State {
	if s == nil {
		s = Initial()
	}
	switch e := e.(type) {
	case RefreshRequested:
		return Loading{Previous: s.Data()}
	case FetchSucceeded:
		if _, ok := s.(Loading); !ok {
			return s
		}
		return Loaded{Snapshot: Snapshot{
			Tools:     e.Result.Tools,
			Sources:   e.Result.Sources,
			UpdatedAt: e.At,
		}}
	case FetchFailed:
		if _, ok := s.(Loading); !ok {
			return s
		}
		return Failed{Message: e.Message, Stale: s.Data()}
	}
	return s
}

// AggregateState is the flat view of a State that the page renders.
type AggregateState struct {
	Tools     []ranking.ToolEntry      `json:"tools"`
	Sources   []ranking.CitationSource `json:"sources"`
	IsLoading bool                     `json:"isLoading"`
	Error     string                   `json:"error,omitempty"`
	UpdatedAt *time.Time               `json:"lastUpdated,omitempty"`
}

// Project flattens s. Tools and Sources are never nil.
func Project(s State) AggregateState {
	if s == nil {
		s = Initial()
	}
	d := s.Data()
	view := AggregateState{
		Tools:   d.Tools,
		Sources: d.Sources,
	}
	if view.Tools == nil {
		view.Tools = []ranking.ToolEntry{}
	}
	if view.Sources == nil {
		view.Sources = []ranking.CitationSource{}
	}
	if !d.UpdatedAt.IsZero() {
		at := d.UpdatedAt
		view.UpdatedAt = &at
	}

	switch s := s.(type) {
	case Loading:
		view.IsLoading = true
	case Failed:
		view.Error = s.Message
	}
	return view
}

// ShowSources reports whether the sources panel is visible.
func (v AggregateState) ShowSources() bool {
	return !v.IsLoading && len(v.Sources) > 0
}
