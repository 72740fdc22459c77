package extract

import (
	"encoding/json"
	"strings"
)

// ListOrJSON recovers an array of objects from text that may carry prose or
// fences around it. Only the span from the first '[' to the last ']' is read,
// first as strict JSON and then as a permissive literal (single quotes,
// None/True/False, trailing commas, comments). Non-object elements are dropped.
func ListOrJSON(text string) []map[string]any {
	rows := []map[string]any{}

	payload := StripFences(text)
	start := strings.Index(payload, "[")
	end := strings.LastIndex(payload, "]")
	if start < 0 || end < start {
		return rows
	}
	payload = payload[start : end+1]

	var items []any
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		v, err := parseLiteral(payload)
		if err != nil {
			return rows
		}
		list, ok := v.([]any)
		if !ok {
			return rows
		}
		items = list
	}

	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			rows = append(rows, obj)
		}
	}
	return rows
}
