package llm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPriority(t *testing.T) {
	priority := DefaultPriority()

	require.Len(t, priority, 2)
	assert.Equal(t, Candidate{Provider: ProviderGroq, Model: "llama3-70b-8192"}, priority[0])
	assert.Equal(t, Candidate{Provider: ProviderGoogle, Model: "gemini-2.0-flash"}, priority[1])
}

func TestCandidateString(t *testing.T) {
	c := Candidate{Provider: ProviderGroq, Model: "llama3-70b-8192"}
	assert.Equal(t, "groq:llama3-70b-8192", c.String())
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PriorityList
		wantErr string
	}{
		{
			name: "yaml list",
			input: `priority:
  - provider: google
    model: gemini-2.0-flash
  - provider: groq
    model: mixtral-8x7b
`,
			want: PriorityList{
				{Provider: ProviderGoogle, Model: "gemini-2.0-flash"},
				{Provider: ProviderGroq, Model: "mixtral-8x7b"},
			},
		},
		{
			name:  "json document",
			input: `{"priority": [{"provider": "gemini", "model": "gemini-1.5-pro"}]}`,
			want:  PriorityList{{Provider: ProviderGemini, Model: "gemini-1.5-pro"}},
		},
		{
			name:    "empty list",
			input:   "priority: []\n",
			wantErr: "invalid priority list",
		},
		{
			name:    "missing model",
			input:   "priority:\n  - provider: groq\n",
			wantErr: "invalid priority list",
		},
		{
			name:    "not yaml",
			input:   "priority: [unterminated",
			wantErr: "failed to parse priority list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePriority([]byte(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	path := filepath.Join(t.TempDir(), "priority.yaml")
	require.NoError(t, os.WriteFile(path, []byte("priority:\n  - provider: groq\n    model: llama3-8b-8192\n"), 0o600))

	got, err := LoadPriority(path)
	require.NoError(t, err)
	assert.Equal(t, PriorityList{{Provider: ProviderGroq, Model: "llama3-8b-8192"}}, got)
}

func TestLoadPriority_Errors(t *testing.T) {
	_, err := LoadPriority("")
	assert.Error(t, err)

	_, err = LoadPriority(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read priority file")
}

func TestNewRequest(t *testing.T) {
	req := NewRequest("hello")

	assert.Equal(t, "hello", req.Prompt)
	assert.Equal(t, DefaultMaxTokens, req.MaxTokens)
	assert.Equal(t, DefaultTemperature, req.Temperature)
	assert.Nil(t, req.Preferred)
	assert.NoError(t, req.Validate())
}

func TestRequestWithPreferred(t *testing.T) {
	base := NewRequest("hello")

	req := base.WithPreferred(ProviderGoogle, "gemini-2.0-flash")
	require.NotNil(t, req.Preferred)
	assert.Equal(t, Candidate{Provider: ProviderGoogle, Model: "gemini-2.0-flash"}, *req.Preferred)
	assert.Nil(t, base.Preferred)

	// both halves are required
	assert.Nil(t, base.WithPreferred(ProviderGoogle, "").Preferred)
	assert.Nil(t, base.WithPreferred("", "gemini-2.0-flash").Preferred)
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{name: "defaults", req: NewRequest("p")},
		{name: "zero temperature", req: Request{Prompt: "p", MaxTokens: 1}},
		{name: "empty prompt", req: Request{MaxTokens: 10}, wantErr: true},
		{name: "zero tokens", req: Request{Prompt: "p"}, wantErr: true},
		{name: "negative temperature", req: Request{Prompt: "p", MaxTokens: 1, Temperature: -0.1}, wantErr: true},
		{name: "temperature too high", req: Request{Prompt: "p", MaxTokens: 1, Temperature: 2.5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid request")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProviderConstants(t *testing.T) {
	assert.Equal(t, Provider("groq"), ProviderGroq)
	assert.Equal(t, Provider("google"), ProviderGoogle)
	assert.Equal(t, Provider("gemini"), ProviderGemini)
}
