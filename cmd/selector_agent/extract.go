package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/agent-selector/internal/extract"
	"github.com/jonathan/agent-selector/internal/report"
	"github.com/jonathan/agent-selector/internal/schemas"
	schemafiles "github.com/jonathan/agent-selector/schemas"
	"github.com/spf13/cobra"
)

// errUnparseable marks a response the extractors could not read
var errUnparseable = errors.New("could not understand the response")

// Extraction kinds
const (
	kindSuggestion = "suggestion"
	kindTools      = "tools"
	kindList       = "list"
)

// Output formats
const (
	formatJSON     = "json"
	formatTable    = "table"
	formatMarkdown = "markdown"
)

// Row shapes accepted by --as
const (
	asToolComparison      = "tool-comparison"
	asFrameworkComparison = "framework-comparison"
)

type extractOptions struct {
	Kind       string
	As         string
	Validate   bool
	Format     string
	UserChoice string
	Width      int
	// Schema is a caller-supplied JSON Schema document for list rows
	Schema string
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured data from a saved LLM response",
	Long:  "Extract a framework suggestion, a tool list or a list of comparison rows from LLM response text read from a file or stdin.",
}

var (
	extractInputFile  string
	extractAs         string
	extractValidate   bool
	extractFormat     string
	extractUserChoice string
	extractWidth      int
	extractSchemaFile string
)

func init() {
	for _, kind := range []string{kindSuggestion, kindTools, kindList} {
		extractCmd.AddCommand(&cobra.Command{
			Use:   kind,
			Short: fmt.Sprintf("Extract a %s from response text", kindDescription(kind)),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runExtract(cmd, kind)
			},
		})
	}

	extractCmd.PersistentFlags().StringVarP(&extractInputFile, "in", "i", "", "Path to response text (default: stdin)")
	extractCmd.PersistentFlags().StringVar(&extractAs, "as", "", "Row shape for list: tool-comparison or framework-comparison")
	extractCmd.PersistentFlags().BoolVar(&extractValidate, "validate", false, "Validate extracted rows against the embedded JSON schema")
	extractCmd.PersistentFlags().StringVarP(&extractFormat, "format", "f", formatJSON, "Output format: json, table or markdown")
	extractCmd.PersistentFlags().StringVar(&extractUserChoice, "user-choice", "", "Framework to fall back to when none is suggested")
	extractCmd.PersistentFlags().StringVar(&extractSchemaFile, "schema", "", "Validate list rows against this JSON Schema file")
	extractCmd.PersistentFlags().IntVar(&extractWidth, "width", 100, "Word-wrap width for markdown output")

	rootCmd.AddCommand(extractCmd)
}

func kindDescription(kind string) string {
	switch kind {
	case kindSuggestion:
		return "framework suggestion"
	case kindTools:
		return "tool list"
	default:
		return "list of objects"
	}
}

func runExtract(cmd *cobra.Command, kind string) error {
	text, err := readInput(extractInputFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	var schema string
	if extractSchemaFile != "" {
		data, err := os.ReadFile(extractSchemaFile)
		if err != nil {
			return fmt.Errorf("failed to read schema file: %w", err)
		}
		schema = string(data)
	}

	return writeExtraction(text, extractOptions{
		Kind:       kind,
		As:         extractAs,
		Validate:   extractValidate,
		Format:     extractFormat,
		UserChoice: extractUserChoice,
		Width:      extractWidth,
		Schema:     schema,
	}, cmd.OutOrStdout())
}

// readInput reads path, or stdin when path is empty or "-"
func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}

// writeExtraction runs the extractor for opts.Kind over text and prints the result
func writeExtraction(text string, opts extractOptions, out io.Writer) error {
	switch opts.Format {
	case formatJSON, formatTable, formatMarkdown:
	default:
		return fmt.Errorf("unknown format %q (want json, table or markdown)", opts.Format)
	}

	printerOpts := []report.Option{}
	if opts.Format == formatMarkdown {
		printerOpts = append(printerOpts, report.WithMarkdown(opts.Width))
	}
	p := report.NewPrinter(out, printerOpts...)

	switch opts.Kind {
	case kindSuggestion:
		return writeSuggestion(p, text, opts)
	case kindTools:
		return writeTools(p, text, opts)
	case kindList:
		return writeList(p, text, opts)
	}
	return fmt.Errorf("unknown extraction %q", opts.Kind)
}

func writeSuggestion(p *report.Printer, text string, opts extractOptions) error {
	s := extract.FrameworkSuggestion(text)
	if s.Framework == nil && opts.UserChoice == "" {
		return fmt.Errorf("%w: no Framework: line found", errUnparseable)
	}

	framework, justification := s.Resolve(opts.UserChoice)
	if opts.Format == formatJSON {
		return p.PrintJSON(extract.Suggestion{Framework: &framework, Justification: justification})
	}
	p.PrintSuggestion(framework, justification)
	return nil
}

func writeTools(p *report.Printer, text string, opts extractOptions) error {
	tools := extract.ToolDiscovery(text)
	if tools.Empty() {
		return fmt.Errorf("%w: no internal_tools/external_tools block found", errUnparseable)
	}

	if opts.Validate {
		if err := schemas.ValidateDocument(schemafiles.ToolDiscovery, tools); err != nil {
			return fmt.Errorf("extracted tools do not match schema: %w", err)
		}
	}

	if opts.Format == formatJSON {
		return p.PrintJSON(tools)
	}
	p.PrintTools(tools)
	return nil
}

func writeList(p *report.Printer, text string, opts extractOptions) error {
	rows := extract.ListOrJSON(text)
	if len(rows) == 0 {
		return fmt.Errorf("%w: no list of objects found", errUnparseable)
	}

	var schemaName string
	switch opts.As {
	case "":
	case asToolComparison:
		schemaName = schemafiles.ToolComparison
	case asFrameworkComparison:
		schemaName = schemafiles.FrameworkComparison
	default:
		return fmt.Errorf("unknown row shape %q (want %s or %s)", opts.As, asToolComparison, asFrameworkComparison)
	}

	if opts.Validate {
		if schemaName == "" {
			return fmt.Errorf("--validate requires --as")
		}
		if err := schemas.ValidateRows(schemaName, rows); err != nil {
			return fmt.Errorf("extracted rows do not match schema: %w", err)
		}
	}

	if opts.Schema != "" {
		data, err := json.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to encode rows: %w", err)
		}
		if err := schemas.ValidateJSONString(opts.Schema, string(data)); err != nil {
			return fmt.Errorf("extracted rows do not match schema: %w", err)
		}
	}

	var table string
	switch opts.As {
	case asToolComparison:
		typed := extract.DecodeToolComparisons(rows)
		if opts.Format == formatJSON {
			return p.PrintJSON(typed)
		}
		table = report.ToolComparisonTable(typed)
	case asFrameworkComparison:
		typed := extract.DecodeFrameworkComparisons(rows)
		if opts.Format == formatJSON {
			return p.PrintJSON(typed)
		}
		table = report.FrameworkComparisonTable(typed)
	default:
		if opts.Format != formatJSON {
			return fmt.Errorf("%s output requires --as", opts.Format)
		}
		return p.PrintJSON(rows)
	}

	p.PrintMarkdown(strings.TrimRight(table, "\n"))
	return nil
}
