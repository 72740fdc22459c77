// Package main provides the selector_agent CLI for querying LLM providers
// with fallback and extracting structured answers from their responses.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/agent-selector/internal/llm"
	"github.com/jonathan/agent-selector/internal/report"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "selector_agent",
	Short:         "Query LLM providers with ordered fallback",
	Long:          "selector_agent sends prompts to a prioritized list of LLM providers, falls back on failure, and extracts framework suggestions, tool lists and comparison tables from the answers.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file (environment variables override it)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// reportError keeps provider exhaustion and unparseable answers apart
func reportError(err error) {
	var failed *llm.AllProvidersFailedError
	if errors.As(err, &failed) {
		fmt.Fprintln(os.Stderr, "Error: all providers failed")
		report.NewPrinter(os.Stderr).PrintFailure(failed)
		return
	}
	// errUnparseable reads "could not understand the response: ..."
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
