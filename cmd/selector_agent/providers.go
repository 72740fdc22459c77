package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/jonathan/agent-selector/internal/config"
	"github.com/jonathan/agent-selector/internal/llm"
	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the fallback priority and provider credentials",
	Args:  cobra.NoArgs,
	RunE:  runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	priority, err := cfg.Priority()
	if err != nil {
		return err
	}
	return writeProviders(cmd.OutOrStdout(), priority, cfg.Registry(), os.Getenv)
}

// providerKeyEnv maps each built-in provider to its secret
var providerKeyEnv = map[llm.Provider]string{
	llm.ProviderGroq:   llm.GroqAPIKeyEnv,
	llm.ProviderGoogle: llm.GoogleAPIKeyEnv,
	llm.ProviderGemini: llm.GeminiAPIKeyEnv,
}

// writeProviders prints one row per priority entry
//
//nolint:errcheck // tabwriter errors surface from Flush
func writeProviders(out io.Writer, priority llm.PriorityList, registry llm.Registry, getenv func(string) string) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPROVIDER\tMODEL\tKEY")

	for i, c := range priority {
		status := "set"
		envVar, known := providerKeyEnv[c.Provider]
		switch {
		case !known:
			status = "n/a"
		case getenv(envVar) == "":
			status = envVar + " missing"
		}
		if _, err := registry.Lookup(c.Provider); err != nil {
			status = "unregistered"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, c.Provider, c.Model, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	registered := make([]string, 0, len(registry))
	for _, p := range registry.Providers() {
		registered = append(registered, string(p))
	}
	_, err := fmt.Fprintf(out, "\nRegistered providers: %s\n", strings.Join(registered, ", "))
	return err
}
