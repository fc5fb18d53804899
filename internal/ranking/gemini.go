package ranking

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/leapstack-labs/cineai/internal/i18n"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model queried when none is configured.
const DefaultModel = "gemini-3-flash-preview"

// GeminiConfig holds configuration for GeminiFetcher.
type GeminiConfig struct {
	APIKey     string
	Model      string
	BaseURL    string       // empty uses the public endpoint
	HTTPClient *http.Client // nil uses the SDK default
	Localizer  *i18n.Localizer
	Logger     *slog.Logger
	Metrics    Metrics
}

// GeminiFetcher asks Gemini, with Google Search grounding, for the current
// top tools and returns them with the citations the answer was grounded on.
type GeminiFetcher struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	loc        *i18n.Localizer
	logger     *slog.Logger
	metrics    Metrics
}

// NewGeminiFetcher creates a fetcher. The API key is not checked here; a
// missing key surfaces as a failed fetch.
func NewGeminiFetcher(cfg GeminiConfig) *GeminiFetcher {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Localizer == nil {
		cfg.Localizer = i18n.MustNew(i18n.DefaultLocale)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &GeminiFetcher{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    cfg.BaseURL,
		httpClient: cfg.HTTPClient,
		loc:        cfg.Localizer,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
	}
}

// Model returns the model identifier requests are sent to.
func (f *GeminiFetcher) Model() string {
	return f.model
}

// FetchRanking sends one generateContent request. Any failure to build the
// client or complete the exchange is logged and returned as a *FetchError
// carrying the localized load-failed message.
func (f *GeminiFetcher) FetchRanking(ctx context.Context) (Result, error) {
	start := time.Now()

	resp, err := f.generate(ctx)
	elapsed := time.Since(start)
	if err != nil {
		f.logger.Error("ranking fetch failed", "model", f.model, "duration", elapsed, "error", err)
		f.observeFetch(OutcomeError, elapsed)
		return Result{}, &FetchError{Message: f.loc.T(i18n.MsgLoadFailed), Err: err}
	}

	text := primaryText(resp)
	tools, ok := ParseTools(text)
	if !ok {
		f.logger.Warn("model returned malformed JSON, showing no tools", "model", f.model, "bytes", len(text))
	}
	sources := citations(resp)

	f.logger.Debug("ranking fetched", "model", f.model, "tools", len(tools), "sources", len(sources), "duration", elapsed)
	f.observeFetch(OutcomeSuccess, elapsed)
	if f.metrics != nil {
		f.metrics.ObservePayload(len(tools), len(sources), !ok)
	}

	return Result{Tools: tools, Sources: sources}, nil
}

func (f *GeminiFetcher) generate(ctx context.Context) (*genai.GenerateContentResponse, error) {
	prompt, err := BuildPrompt(f.loc.Tag())
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      f.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  f.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: f.baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, f.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Tools:            []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	return resp, nil
}

func (f *GeminiFetcher) observeFetch(outcome string, d time.Duration) {
	if f.metrics != nil {
		f.metrics.ObserveFetch(outcome, d.Seconds())
	}
}

// primaryText joins the non-thought text parts of the first candidate.
func primaryText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range c.Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// citations collects web grounding chunks of the first candidate in provider
// order. Chunks without a web citation are skipped.
func citations(resp *genai.GenerateContentResponse) []CitationSource {
	sources := []CitationSource{}
	if resp == nil || len(resp.Candidates) == 0 {
		return sources
	}
	c := resp.Candidates[0]
	if c == nil || c.GroundingMetadata == nil {
		return sources
	}
	for _, chunk := range c.GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		sources = append(sources, CitationSource{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}
	return sources
}
