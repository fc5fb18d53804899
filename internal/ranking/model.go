// Package ranking fetches the ranked list of cinematic AI video tools from
// Gemini, grounded with Google Search, and turns the model's answer into
// tool entries plus the web citations the answer was grounded on.
package ranking

import "context"

// ToolEntry is one ranked tool as returned by the model.
// Every field is optional on the wire; absent fields stay zero-valued.
type ToolEntry struct {
	Name         string   `json:"name" yaml:"name" jsonschema:"description=Tool name"`
	Description  string   `json:"description" yaml:"description" jsonschema:"description=Short punchy description"`
	BestFeatures []string `json:"bestFeatures" yaml:"bestFeatures" jsonschema:"description=Standout features in order of relevance"`
	Link         string   `json:"link" yaml:"link" jsonschema:"description=Direct URL to the tool,format=uri"`
	Rank         int      `json:"rank" yaml:"rank" jsonschema:"description=1-based position in the ranking,minimum=1"`
	FreeTierInfo string   `json:"freeTierInfo" yaml:"freeTierInfo" jsonschema:"description=How free access works"`
}

// CitationSource is a web page the grounded answer cites.
type CitationSource struct {
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	URI   string `json:"uri" yaml:"uri"`
}

// DisplayTitle returns the title, or the URI when the provider gave none.
func (c CitationSource) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.URI
}

// Response is the JSON object the model is asked to produce.
type Response struct {
	Tools []ToolEntry `json:"tools"`
}

// Result is the outcome of one successful fetch. Tools keep the order the
// provider returned them in; nothing is re-sorted by rank.
type Result struct {
	Tools   []ToolEntry      `json:"tools" yaml:"tools"`
	Sources []CitationSource `json:"sources" yaml:"sources"`
}

// Fetcher retrieves the current ranking. Implementations perform exactly one
// outbound request per call and never retry.
type Fetcher interface {
	FetchRanking(ctx context.Context) (Result, error)
}

// Metrics receives fetch observations. A nil Metrics is valid.
type Metrics interface {
	ObserveFetch(outcome string, seconds float64)
	ObservePayload(tools, sources int, malformed bool)
}

// Fetch outcomes reported to Metrics.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)
