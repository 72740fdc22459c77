// Package report renders extracted LLM output for the terminal.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jonathan/agent-selector/internal/extract"
	"github.com/jonathan/agent-selector/internal/llm"
	"github.com/jonathan/agent-selector/internal/requestlog"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// defaultWrap is the markdown word-wrap width
	defaultWrap = 100
)

// Printer handles formatted output
type Printer struct {
	out io.Writer
	md  *glamour.TermRenderer
}

// Option configures a Printer
type Option func(*Printer)

// WithMarkdown renders markdown through glamour, wrapping at width columns.
// Without it markdown is written as-is.
func WithMarkdown(width int) Option {
	return func(p *Printer) {
		if width <= 0 {
			width = defaultWrap
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return
		}
		p.md = r
	}
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer, opts ...Option) *Printer {
	p := &Printer{out: out}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintJSON writes v as indented JSON
func (p *Printer) PrintJSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// PrintMarkdown writes markdown, rendered for the terminal when enabled
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintMarkdown(md string) {
	fmt.Fprintln(p.out, p.renderMarkdown(md))
}

func (p *Printer) renderMarkdown(md string) string {
	if p.md == nil {
		return md
	}
	out, err := p.md.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// PrintSuggestion outputs the resolved framework and why it was picked
func (p *Printer) PrintSuggestion(framework, justification string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Framework: %s\n", framework))
	if justification != "" {
		sb.WriteString("\n")
		sb.WriteString(wrap(justification, boxWidth-4))
	}
	p.printBox("FRAMEWORK SUGGESTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTools outputs discovered internal and external tools
func (p *Printer) PrintTools(tools extract.Tools) {
	var sb strings.Builder
	writeList := func(title string, items []string) {
		sb.WriteString(title + ":\n")
		if len(items) == 0 {
			sb.WriteString("  (none)\n")
		}
		for _, item := range items {
			sb.WriteString(fmt.Sprintf("  • %s\n", item))
		}
	}
	writeList("Internal", tools.Internal)
	sb.WriteString("\n")
	writeList("External", tools.External)

	p.printBox("DISCOVERED TOOLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFailure outputs every attempt of an exhausted fallback
func (p *Printer) PrintFailure(err error) {
	var failed *llm.AllProvidersFailedError
	if !errors.As(err, &failed) {
		p.printBox("ALL PROVIDERS FAILED", err.Error())
		return
	}

	var sb strings.Builder
	if len(failed.Attempts) == 0 {
		sb.WriteString(fmt.Sprintf("No registered provider among %d candidates\n", failed.Candidates))
	}
	for i, a := range failed.Attempts {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, a.Candidate))
		sb.WriteString(wrap(a.Err.Error(), boxWidth-8, "    "))
	}
	if failed.Interrupted != nil {
		sb.WriteString(fmt.Sprintf("Stopped: %v\n", failed.Interrupted))
	}
	p.printBox("ALL PROVIDERS FAILED", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEntries outputs request log entries, newest last
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintEntries(entries []requestlog.Entry) {
	for _, e := range entries {
		fmt.Fprintf(p.out, "[%s]\n%s\n\n", e.Time.Format(requestlog.TimestampLayout), e.Text)
	}
}

// wrap breaks text into lines of at most width runes, each prefixed by indent
func wrap(text string, width int, indent ...string) string {
	prefix := strings.Join(indent, "")
	var sb strings.Builder
	line := ""
	for _, word := range strings.Fields(text) {
		if line != "" && len([]rune(line))+1+len([]rune(word)) > width {
			sb.WriteString(prefix + line + "\n")
			line = ""
		}
		if line == "" {
			line = word
		} else {
			line += " " + word
		}
	}
	if line != "" {
		sb.WriteString(prefix + line + "\n")
	}
	return sb.String()
}
