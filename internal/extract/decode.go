package extract

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Alternative is a cheaper or open alternative to a compared tool
type Alternative struct {
	Name          string `mapstructure:"name" json:"name"`
	Type          string `mapstructure:"type" json:"type"`
	MainFeatures  string `mapstructure:"main_features" json:"main_features"`
	HowItCompares string `mapstructure:"how_it_compares" json:"how_it_compares"`
}

// ToolComparison is one row of a tool comparison
type ToolComparison struct {
	Tool         string       `mapstructure:"tool" json:"tool"`
	Type         string       `mapstructure:"type" json:"type"`
	MainFeatures string       `mapstructure:"main_features" json:"main_features"`
	Pricing      string       `mapstructure:"pricing" json:"pricing"`
	Alternative  *Alternative `mapstructure:"alternative" json:"alternative,omitempty"`
}

// FrameworkComparison is one benchmark row comparing two frameworks
type FrameworkComparison struct {
	Benchmark       string `mapstructure:"benchmark" json:"benchmark"`
	Framework1Name  string `mapstructure:"framework1_name" json:"framework1_name"`
	Framework1Value string `mapstructure:"framework1_value" json:"framework1_value"`
	Framework2Name  string `mapstructure:"framework2_name" json:"framework2_name"`
	Framework2Value string `mapstructure:"framework2_value" json:"framework2_value"`
	Justification   string `mapstructure:"justification" json:"justification"`
}

// DecodeToolComparisons converts extracted rows into typed tool comparisons.
// Rows that cannot be decoded are skipped.
func DecodeToolComparisons(rows []map[string]any) []ToolComparison {
	return decodeRows[ToolComparison](rows)
}

// DecodeFrameworkComparisons converts extracted rows into typed framework comparisons.
// Rows that cannot be decoded are skipped.
func DecodeFrameworkComparisons(rows []map[string]any) []FrameworkComparison {
	return decodeRows[FrameworkComparison](rows)
}

func decodeRows[T any](rows []map[string]any) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var v T
		if err := decodeRow(row, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func decodeRow(row map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       lenientHook,
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(row); err != nil {
		return fmt.Errorf("failed to decode row: %w", err)
	}
	return nil
}

// lenientHook joins lists into strings and treats a string where an object
// is expected (e.g. "None" or "n/a") as absent
func lenientHook(from, to reflect.Type, data any) (any, error) {
	switch {
	case to.Kind() == reflect.String && from.Kind() == reflect.Slice:
		items, ok := data.([]any)
		if !ok {
			return data, nil
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", "), nil
	case to.Kind() == reflect.Ptr && to.Elem().Kind() == reflect.Struct && from.Kind() == reflect.String:
		return nil, nil
	}
	return data, nil
}
