package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseGeneratedListing extracts a GeneratedListing from a model response.
// Models are asked for bare JSON but frequently wrap it in markdown fences or
// surrounding prose, so parsing falls back to the first embedded JSON object.
func ParseGeneratedListing(text string) (*GeneratedListing, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var listing GeneratedListing
	if err := json.Unmarshal([]byte(text), &listing); err == nil {
		return &listing, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(text[start:end+1]), &listing); err == nil {
			return &listing, nil
		}
	}

	return nil, fmt.Errorf("failed to parse listing JSON from response: %s", truncate(text, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
