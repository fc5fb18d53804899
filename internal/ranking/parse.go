package ranking

import (
	"encoding/json"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// ParseTools decodes the model's primary text into tool entries.
//
// Parsing is soft-fail: empty text counts as "{}", and text that is not a JSON
// object yields an empty list with ok=false instead of an error. A "tools"
// value that is missing or not an array also yields an empty list. Items are
// decoded field by field, so an entry with missing or mistyped fields keeps
// whatever could be decoded and leaves the rest zero-valued.
func ParseTools(text string) (tools []ToolEntry, ok bool) {
	text = stripFences(text)
	if text == "" {
		text = "{}"
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return []ToolEntry{}, false
	}

	raw, _ := payload["tools"].([]any)
	tools = make([]ToolEntry, 0, len(raw))
	for _, item := range raw {
		var entry ToolEntry
		if obj, isObj := item.(map[string]any); isObj {
			decodeEntry(obj, &entry)
		}
		tools = append(tools, entry)
	}
	return tools, true
}

// decodeEntry fills entry from obj. Fields that decoded cleanly are kept
// even when others fail.
func decodeEntry(obj map[string]any, entry *ToolEntry) {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           entry,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return
	}
	_ = dec.Decode(obj)
}

// stripFences removes a markdown code fence the model sometimes wraps JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
