package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeModelJSON parses a JSON object out of a model response. Models often
// wrap JSON in markdown fences even when asked not to, so fences are stripped
// before decoding.
func DecodeModelJSON(text string) (map[string]interface{}, error) {
	cleaned := strings.TrimSpace(text)

	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(cleaned)
	}

	var out map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, fmt.Errorf("decode model JSON: %w", err)
	}
	return out, nil
}
