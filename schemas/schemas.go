// Package schemas embeds the JSON Schemas for structured LLM output.
package schemas

import (
	"embed"
	"fmt"
)

// Schema names
const (
	ToolComparison      = "tool_comparison"
	FrameworkComparison = "framework_comparison"
	ToolDiscovery       = "tool_discovery"
)

//go:embed *.schema.json
var files embed.FS

// Names lists every embedded schema
func Names() []string {
	return []string{ToolComparison, FrameworkComparison, ToolDiscovery}
}

// Load returns the schema document for name
func Load(name string) (string, error) {
	data, err := files.ReadFile(name + ".schema.json")
	if err != nil {
		return "", fmt.Errorf("unknown schema %q: %w", name, err)
	}
	return string(data), nil
}
