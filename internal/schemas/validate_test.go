package schemas

import (
	"errors"
	"testing"

	schemafiles "github.com/jonathan/agent-selector/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"type": "object",
	"required": ["name"],
	"properties": {"name": {"type": "string"}, "age": {"type": "integer"}}
}`

func TestValidateJSONString_Valid(t *testing.T) {
	assert.NoError(t, ValidateJSONString(personSchema, `{"name": "Ada", "age": 36}`))
}

func TestValidateJSONString_MissingField(t *testing.T) {
	err := ValidateJSONString(personSchema, `{"age": 36}`)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateJSONString_WrongType(t *testing.T) {
	err := ValidateJSONString(personSchema, `{"name": "Ada", "age": "old"}`)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "age", validationErr.Errors[0].Field)
}

func TestValidateJSONString_MalformedSchema(t *testing.T) {
	err := ValidateJSONString(`{ invalid json }`, `{}`)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.NotNil(t, loadErr.Unwrap())
}

func TestValidateRows_ToolComparison(t *testing.T) {
	valid := []map[string]any{
		{"tool": "Slack", "pricing": 10.0, "alternative": map[string]any{"name": "Mattermost"}},
		{"tool": "Zapier", "main_features": []any{"a", "b"}, "alternative": "None"},
	}
	assert.NoError(t, ValidateRows(schemafiles.ToolComparison, valid))
	assert.NoError(t, ValidateRows(schemafiles.ToolComparison, nil))

	invalid := []map[string]any{{"type": "external"}}
	err := ValidateRows(schemafiles.ToolComparison, invalid)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateRows_FrameworkComparison(t *testing.T) {
	err := ValidateRows(schemafiles.FrameworkComparison, nil)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "empty comparison is rejected")

	rows := []map[string]any{{
		"benchmark":        "Control",
		"framework1_name":  "LangGraph",
		"framework1_value": "explicit graph",
		"framework2_name":  "CrewAI",
		"framework2_value": "role based",
	}}
	assert.NoError(t, ValidateRows(schemafiles.FrameworkComparison, rows))
}

func TestValidateDocument_UnknownSchema(t *testing.T) {
	err := ValidateDocument("nope", map[string]any{})

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "nope", loadErr.Path)
}

func TestValidationError_Format(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "0.tool", Message: "tool is required"},
		{Field: "1", Message: "Invalid type"},
	}}
	assert.Equal(t, "validation failed:\n  1. 0.tool: tool is required\n  2. 1: Invalid type\n", err.Error())
}
