package main

import (
	"io"

	"github.com/jonathan/agent-selector/internal/config"
	"github.com/jonathan/agent-selector/internal/report"
	"github.com/jonathan/agent-selector/internal/requestlog"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Inspect the request log",
}

var logShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the most recent request log entries",
	Args:  cobra.NoArgs,
	RunE:  runLogShow,
}

var (
	logShowName string
	logShowLast int
	logShowJSON bool
)

func init() {
	logShowCmd.Flags().StringVar(&logShowName, "log-name", requestlog.DefaultLogName, "Request log file name")
	logShowCmd.Flags().IntVarP(&logShowLast, "last", "n", 10, "Number of entries to show (0 for all)")
	logShowCmd.Flags().BoolVar(&logShowJSON, "json", false, "Print entries as JSON")

	logCmd.AddCommand(logShowCmd)
	rootCmd.AddCommand(logCmd)
}

func runLogShow(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	w := requestlog.NewWriter(cfg.RequestLogDir, nil)
	return showLog(cmd.OutOrStdout(), w.Path(logShowName), logShowLast, logShowJSON)
}

// showLog prints the last n entries of the log at path
func showLog(out io.Writer, path string, n int, asJSON bool) error {
	entries, err := requestlog.ReadEntries(path)
	if err != nil {
		return err
	}
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}

	p := report.NewPrinter(out)
	if asJSON {
		return p.PrintJSON(entries)
	}
	p.PrintEntries(entries)
	return nil
}
