package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/agent-selector/internal/extract"
	"github.com/jonathan/agent-selector/internal/llm"
	"github.com/jonathan/agent-selector/internal/requestlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintSuggestion(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSuggestion("CrewAI", "Role-based agents map well onto the described workflow.")
	output := buf.String()

	assert.Contains(t, output, "FRAMEWORK SUGGESTION")
	assert.Contains(t, output, "Framework: CrewAI")
	assert.Contains(t, output, "Role-based agents")
}

func TestPrintSuggestion_NoJustification(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSuggestion("LangGraph", "")

	assert.Contains(t, buf.String(), "Framework: LangGraph")
}

func TestPrintTools(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTools(extract.Tools{
		Internal: []string{"search_docs"},
		External: []string{"Slack", "Jira"},
	})
	output := buf.String()

	assert.Contains(t, output, "DISCOVERED TOOLS")
	assert.Contains(t, output, "• search_docs")
	assert.Contains(t, output, "• Slack")
	assert.Contains(t, output, "• Jira")
}

func TestPrintTools_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTools(extract.Tools{})

	assert.Equal(t, 2, strings.Count(buf.String(), "(none)"))
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 200))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), "line %q", line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	err := p.PrintJSON(extract.Tools{Internal: []string{"a"}, External: []string{}})
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"internal_tools\": [\n    \"a\"\n  ],\n  \"external_tools\": []\n}\n", buf.String())
}

func TestPrintJSON_Unencodable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	err := p.PrintJSON(make(chan int))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode output")
}

func TestPrintFailure(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFailure(&llm.AllProvidersFailedError{
		Candidates: 2,
		Attempts: []llm.Attempt{
			{
				Candidate: llm.Candidate{Provider: llm.ProviderGroq, Model: "llama3-70b-8192"},
				Err:       &llm.ConfigurationError{Provider: llm.ProviderGroq, EnvVar: llm.GroqAPIKeyEnv},
			},
			{
				Candidate: llm.Candidate{Provider: llm.ProviderGoogle, Model: "gemini-2.0-flash"},
				Err:       &llm.TransportError{Provider: llm.ProviderGoogle, Model: "gemini-2.0-flash", StatusCode: 503},
			},
		},
		Interrupted: context.Canceled,
	})
	output := buf.String()

	assert.Contains(t, output, "ALL PROVIDERS FAILED")
	assert.Contains(t, output, "#1  groq:llama3-70b-8192")
	assert.Contains(t, output, "#2  google:gemini-2.0-flash")
	assert.Contains(t, output, "GROQ_API_KEY")
	assert.Contains(t, output, "status 503")
	assert.Contains(t, output, "Stopped: context canceled")
}

func TestPrintFailure_NoAttempts(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFailure(&llm.AllProvidersFailedError{Candidates: 3})

	assert.Contains(t, buf.String(), "No registered provider among 3 candidates")
}

func TestPrintFailure_OtherError(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFailure(fmt.Errorf("boom"))

	assert.Contains(t, buf.String(), "boom")
}

func TestPrintEntries(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	ts := time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local)
	p.PrintEntries([]requestlog.Entry{{Time: ts, Text: "hello"}})

	assert.Equal(t, "[2026-03-04 05:06:07]\nhello\n\n", buf.String())
}

func TestPrintMarkdown_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMarkdown("# Title")

	assert.Equal(t, "# Title\n", buf.String())
}

func TestPrintMarkdown_Rendered(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, WithMarkdown(80))
	require.NotNil(t, p.md)

	p.PrintMarkdown("# Title\n\nhello world")

	assert.Contains(t, buf.String(), "hello world")
}

func TestWrap(t *testing.T) {
	got := wrap("one two three four", 9, "> ")
	assert.Equal(t, "> one two\n> three\n> four\n", got)
	assert.Equal(t, "", wrap("   ", 10))
}
