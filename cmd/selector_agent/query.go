package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/agent-selector/internal/llm"
	"github.com/jonathan/agent-selector/internal/requestlog"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Send a prompt to the LLM providers with fallback",
	Long:  "Send a prompt to the preferred provider (if any) and then each provider in the priority list until one answers. The exchange is appended to the request log.",
	Args:  cobra.NoArgs,
	RunE:  runQuery,
}

var (
	queryPrompt      string
	queryInputFile   string
	queryProvider    string
	queryModel       string
	queryMaxTokens   int
	queryTemperature float64
	queryLogName     string
	queryTitle       string
	queryNoCache     bool
	queryExtract     string
)

func init() {
	queryCmd.Flags().StringVarP(&queryPrompt, "prompt", "p", "", "Prompt text")
	queryCmd.Flags().StringVarP(&queryInputFile, "in", "i", "", "Read the prompt from a file (\"-\" for stdin)")
	queryCmd.Flags().StringVar(&queryProvider, "provider", "", "Preferred provider, tried first (groq, google, gemini)")
	queryCmd.Flags().StringVar(&queryModel, "model", "", "Preferred model, used with --provider")
	queryCmd.Flags().IntVar(&queryMaxTokens, "max-tokens", 0, "Maximum completion tokens (default from config)")
	queryCmd.Flags().Float64Var(&queryTemperature, "temperature", -1, "Sampling temperature (default from config)")
	queryCmd.Flags().StringVar(&queryLogName, "log-name", requestlog.DefaultLogName, "Request log file name")
	queryCmd.Flags().StringVar(&queryTitle, "title", "Query", "Title recorded with the exchange")
	queryCmd.Flags().BoolVar(&queryNoCache, "no-cache", false, "Bypass the response cache")
	queryCmd.Flags().StringVar(&queryExtract, "extract", "", "Extract from the answer: suggestion, tools or list")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, _ []string) error {
	prompt := queryPrompt
	if prompt == "" {
		if queryInputFile == "" {
			return fmt.Errorf("must provide either --prompt or --in")
		}
		text, err := readInput(queryInputFile, cmd.InOrStdin())
		if err != nil {
			return err
		}
		prompt = text
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, !queryNoCache)
	if err != nil {
		return err
	}
	defer a.Close()

	req := llm.NewRequest(prompt).WithPreferred(llm.Provider(queryProvider), queryModel)
	req.MaxTokens = a.cfg.MaxTokens
	req.Temperature = a.cfg.Temperature
	if queryMaxTokens > 0 {
		req.MaxTokens = queryMaxTokens
	}
	if queryTemperature >= 0 {
		req.Temperature = queryTemperature
	}

	return runQueryWith(ctx, a.querier, a.reqLog, req, queryOptions{
		Title:   queryTitle,
		LogName: queryLogName,
		Extract: queryExtract,
	}, cmd.OutOrStdout())
}

type queryOptions struct {
	Title   string
	LogName string
	Extract string
}

// runQueryWith queries, records the exchange and prints the answer or its extraction
func runQueryWith(ctx context.Context, q llm.Querier, reqLog *requestlog.Writer, req llm.Request, opts queryOptions, out io.Writer) error {
	response, err := q.Query(ctx, req)
	if err != nil {
		reqLog.Record(ctx, requestlog.FormatExchange(opts.Title, req.Prompt, "ERROR: "+err.Error()), opts.LogName)
		return err
	}
	reqLog.Record(ctx, requestlog.FormatExchange(opts.Title, req.Prompt, response), opts.LogName)

	if opts.Extract == "" {
		_, err := fmt.Fprintln(out, response)
		return err
	}
	return writeExtraction(response, extractOptions{Kind: opts.Extract, Format: formatJSON}, out)
}
