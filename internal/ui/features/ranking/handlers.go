package ranking

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/cineai/internal/i18n"
	"github.com/leapstack-labs/cineai/internal/state"
	"github.com/leapstack-labs/cineai/internal/ui/features/ranking/pages"
	"github.com/leapstack-labs/cineai/internal/ui/notifier"
	"github.com/starfederation/datastar-go/datastar"
)

const (
	sessionName = "cineai"
	visitorKey  = "visitor_id"
)

// Signals are the datastar signals the page sends back.
type Signals struct {
	Revision uint64 `json:"revision"`
}

// Options configures the ranking feature.
type Options struct {
	Store        *state.Store
	SessionStore sessions.Store
	Notifier     *notifier.Notifier
	Localizer    *i18n.Localizer
	Logger       *slog.Logger
	// FetchContext bounds fetches started by a refresh. It should live as
	// long as the server, not the request.
	FetchContext context.Context
	Skeletons    int
	IsDev        bool
}

// Handlers provides HTTP handlers for the ranking feature.
type Handlers struct {
	store        *state.Store
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	loc          *i18n.Localizer
	logger       *slog.Logger
	fetchCtx     context.Context
	skeletons    int
	isDev        bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(opts Options) *Handlers {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Localizer == nil {
		opts.Localizer = i18n.MustNew(i18n.DefaultLocale)
	}
	if opts.FetchContext == nil {
		opts.FetchContext = context.Background()
	}
	return &Handlers{
		store:        opts.Store,
		sessionStore: opts.SessionStore,
		notifier:     opts.Notifier,
		loc:          opts.Localizer,
		logger:       opts.Logger,
		fetchCtx:     opts.FetchContext,
		skeletons:    opts.Skeletons,
		isDev:        opts.IsDev,
	}
}

// RankingPage renders the full page from the current state.
func (h *Handlers) RankingPage(w http.ResponseWriter, r *http.Request) {
	h.visitorID(w, r)

	view, rev := h.store.View()
	shell := pages.NewShellData(view, h.loc, h.skeletons)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Page(pages.NewPageData(shell, h.loc, rev, h.isDev)).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// RankingUpdates is the long-lived SSE endpoint. It patches #app-shell on
// every state change, and once on connect when the page is behind.
func (h *Handlers) RankingUpdates(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE
	var signals Signals
	_ = datastar.ReadSignals(r, &signals)

	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	if _, rev := h.store.Current(); rev != signals.Revision {
		if err := h.sendShell(sse); err != nil {
			_ = sse.ConsoleError(err)
		}
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := h.sendShell(sse); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// sendShell patches the app shell and the revision signal.
func (h *Handlers) sendShell(sse *datastar.ServerSentEventGenerator) error {
	view, rev := h.store.View()
	if err := sse.PatchElementTempl(pages.Shell(pages.NewShellData(view, h.loc, h.skeletons))); err != nil {
		return err
	}
	return sse.MarshalAndPatchSignals(Signals{Revision: rev})
}

// Refresh starts a fetch. It answers 202 when the fetch started and 409 when
// one is already in flight.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	visitor := h.visitorID(w, r)

	if _, err := h.store.Refresh(h.fetchCtx); err != nil {
		if errors.Is(err, state.ErrFetchInFlight) {
			h.logger.Debug("refresh rejected, fetch in flight", "visitor", visitor)
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.logger.Info("refresh requested", "visitor", visitor)
	w.WriteHeader(http.StatusAccepted)
}

// rankingResponse is the JSON body of GET /api/ranking.
type rankingResponse struct {
	state.AggregateState
	Revision    uint64 `json:"revision"`
	LastUpdated string `json:"lastUpdatedClock,omitempty"`
}

// RankingJSON returns the current aggregate state.
func (h *Handlers) RankingJSON(w http.ResponseWriter, _ *http.Request) {
	view, rev := h.store.View()
	resp := rankingResponse{AggregateState: view, Revision: rev}
	if view.UpdatedAt != nil {
		resp.LastUpdated = h.loc.Clock(*view.UpdatedAt)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Health reports liveness plus whether a fetch is outstanding.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	_, rev := h.store.Current()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"inFlight": h.store.InFlight(),
		"revision": rev,
	})
}

// visitorID returns the visitor id from the session cookie, issuing one on
// first contact. It is only used to attribute log lines.
func (h *Handlers) visitorID(w http.ResponseWriter, r *http.Request) string {
	if h.sessionStore == nil {
		return ""
	}
	session, err := h.sessionStore.Get(r, sessionName)
	if err != nil {
		// a cookie signed with an old secret; start a fresh session
		h.logger.Debug("discarding invalid session", "error", err)
	}
	if session == nil {
		return ""
	}
	if id, ok := session.Values[visitorKey].(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	session.Values[visitorKey] = id
	if err := session.Save(r, w); err != nil {
		h.logger.Warn("failed to save session", "error", err)
	}
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
