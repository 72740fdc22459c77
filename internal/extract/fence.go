// Package extract recovers structured values from free-form LLM text.
//
// Every extractor is best effort: malformed input yields an empty value, never
// an error or a panic. An empty result means "nothing found" and is distinct
// from a failed provider call.
package extract

import (
	"regexp"
	"strings"
)

var (
	// everything up to and including the first fence opener and its newline
	leadingFence = regexp.MustCompile("(?s)^.*?```[a-zA-Z]*\n?")
	// the next fence and everything after it
	trailingFence = regexp.MustCompile("(?s)```.*$")
)

// StripFences removes a markdown code fence wrapper, along with any prose
// before the opening fence and after the closing one.
// Text without fences is only trimmed.
func StripFences(text string) string {
	text = leadingFence.ReplaceAllLiteralString(text, "")
	text = trailingFence.ReplaceAllLiteralString(text, "")
	return strings.TrimSpace(text)
}
