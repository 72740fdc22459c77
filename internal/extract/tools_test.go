package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToolDiscovery(t *testing.T) {
	tools := ToolDiscovery("```python\ninternal_tools = [\"A\"]\nexternal_tools = [\"B\", \"C\"]\n```")

	assert.Equal(t, []string{"A"}, tools.Internal)
	assert.Equal(t, []string{"B", "C"}, tools.External)
	assert.False(t, tools.Empty())
}

func TestToolDiscovery_Accepted(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		internal []string
		external []string
	}{
		{
			name: "multi-line lists with comments and trailing commas",
			input: "Here you go:\n```python\n# tools the team owns\ninternal_tools = [\n    'CRM API',  # customer data\n    \"Billing DB\",\n]\nexternal_tools = [\n    '''Slack''',\n]\n```\nHope this helps",
			internal: []string{"CRM API", "Billing DB"},
			external: []string{"Slack"},
		},
		{
			name:     "unfenced with semicolons",
			input:    "internal_tools = []; external_tools = ['Zapier']",
			internal: []string{},
			external: []string{"Zapier"},
		},
		{
			name:     "extra variables ignored",
			input:    "notes = ['x']\ninternal_tools = ['A']\nexternal_tools = ['B']",
			internal: []string{"A"},
			external: []string{"B"},
		},
		{
			name:     "escaped quotes",
			input:    `internal_tools = ['O\'Reilly API']` + "\n" + `external_tools = ["say \"hi\""]`,
			internal: []string{"O'Reilly API"},
			external: []string{`say "hi"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tools := ToolDiscovery(tt.input)
			assert.Equal(t, tt.internal, tools.Internal)
			assert.Equal(t, tt.external, tools.External)
		})
	}
}

func TestToolDiscovery_Rejected(t *testing.T) {
	inputs := map[string]string{
		"function call":        "```python\ninternal_tools = __import__('os').system('rm -rf /')\nexternal_tools = []\n```",
		"call in list":         "internal_tools = [open('/etc/passwd').read()]\nexternal_tools = []",
		"import statement":     "import os\ninternal_tools = ['A']\nexternal_tools = ['B']",
		"expression":           "internal_tools = ['A'] + ['B']\nexternal_tools = []",
		"comprehension":        "internal_tools = [t for t in 'ab']\nexternal_tools = []",
		"attribute access":     "internal_tools = os.environ\nexternal_tools = []",
		"non-string element":   "internal_tools = ['A', 1]\nexternal_tools = []",
		"dict instead of list": "internal_tools = {'a': 'b'}\nexternal_tools = []",
		"missing external":     "internal_tools = ['A']",
		"missing both":         "Sorry, I cannot help with that.",
		"unterminated list":    "internal_tools = ['A'\nexternal_tools = []",
		"two values one line":  "internal_tools = ['A'] ['B']\nexternal_tools = []",
		"keyword as name":      "True = ['A']\ninternal_tools = []\nexternal_tools = []",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			tools := ToolDiscovery(input)
			assert.Equal(t, []string{}, tools.Internal)
			assert.Equal(t, []string{}, tools.External)
			assert.True(t, tools.Empty())
		})
	}
}
