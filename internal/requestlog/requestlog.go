// Package requestlog keeps an append-only text trail of prompts and raw responses.
package requestlog

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// TimestampLayout is the layout of the bracketed entry header
const TimestampLayout = "2006-01-02 15:04:05"

// DefaultLogName is used when a caller does not name a log file
const DefaultLogName = "app.log"

var headerPattern = regexp.MustCompile(`^\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\] `)

// Writer appends timestamped entries to log files under Dir
type Writer struct {
	Dir    string
	Now    func() time.Time
	Logger *slog.Logger
}

// NewWriter creates a writer rooted at dir
func NewWriter(dir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Writer{Dir: dir, Now: time.Now, Logger: logger}
}

// Path returns the file a log name resolves to
func (w *Writer) Path(logName string) string {
	if logName == "" {
		logName = DefaultLogName
	}
	if filepath.IsAbs(logName) || w.Dir == "" {
		return logName
	}
	return filepath.Join(w.Dir, logName)
}

// Append writes "[YYYY-MM-DD HH:MM:SS] entry" followed by a blank line.
// The file is closed on every path, including a failed write.
func (w *Writer) Append(entry, logName string) (err error) {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}

	path := w.Path(logName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open request log %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close request log %s: %w", path, closeErr)
		}
	}()

	line := fmt.Sprintf("[%s] %s\n\n", now().Format(TimestampLayout), entry)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to write request log %s: %w", path, err)
	}
	return nil
}

// Record appends an entry and logs, rather than returns, any failure.
// Request logging must never break the caller's flow.
func (w *Writer) Record(ctx context.Context, entry, logName string) {
	if err := w.Append(entry, logName); err != nil {
		logger := w.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.WarnContext(ctx, "request log write failed",
			slog.String("log", w.Path(logName)),
			slog.String("error", err.Error()),
		)
	}
}

// FormatExchange renders a prompt and its response as one log entry
func FormatExchange(title, prompt, response string) string {
	return fmt.Sprintf("%s Prompt:\n%s\nResponse:\n%s", title, prompt, response)
}

// Entry is one parsed log record
type Entry struct {
	Time time.Time `json:"time"`
	Text string    `json:"text"`
}

// ReadEntries parses a log file back into entries. A header is only
// recognised at the start of the file or right after an entry separator, so
// bracketed timestamps inside an entry body stay part of that body.
func ReadEntries(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open request log %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var entries []Entry
	var body []string
	var current *Entry
	atBoundary := true

	flush := func() {
		if current == nil {
			return
		}
		// Append always leaves one blank separator line
		text := strings.Join(body, "\n")
		current.Text = strings.TrimSuffix(text, "\n")
		entries = append(entries, *current)
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	scanner.Split(scanRawLines)
	for scanner.Scan() {
		line := scanner.Text()

		if atBoundary {
			if m := headerPattern.FindStringSubmatch(line); m != nil {
				ts, err := time.ParseInLocation(TimestampLayout, m[1], time.Local)
				if err == nil {
					flush()
					current = &Entry{Time: ts}
					body = []string{line[len(m[0]):]}
					atBoundary = false
					continue
				}
			}
		}

		if current != nil {
			body = append(body, line)
		}
		atBoundary = line == ""
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read request log %s: %w", path, err)
	}
	flush()

	return entries, nil
}

// scanRawLines splits on '\n' like bufio.ScanLines but keeps a trailing '\r'
// so CRLF text reads back unchanged
func scanRawLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
