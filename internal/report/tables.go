package report

import (
	"fmt"
	"strings"

	"github.com/jonathan/agent-selector/internal/extract"
)

var cellReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "|", "\\|")

// cell makes s safe inside a markdown table cell
func cell(s string) string {
	return strings.TrimSpace(cellReplacer.Replace(s))
}

// ToolComparisonTable renders tool comparison rows as a markdown table
func ToolComparisonTable(rows []extract.ToolComparison) string {
	var sb strings.Builder
	sb.WriteString("### Comparison Table\n")
	sb.WriteString("| Tool | Type | Main Features | Pricing | Cheaper/Open Alternative | Alt Features | Difference |\n")
	sb.WriteString("|------|------|---------------|---------|-------------------------|--------------|------------|\n")

	for _, r := range rows {
		var altSummary, altFeatures, comparison string
		if r.Alternative != nil {
			altSummary = fmt.Sprintf("%s (%s)", cell(r.Alternative.Name), cell(r.Alternative.Type))
			altFeatures = cell(r.Alternative.MainFeatures)
			comparison = cell(r.Alternative.HowItCompares)
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
			cell(r.Tool), cell(r.Type), cell(r.MainFeatures), cell(r.Pricing),
			altSummary, altFeatures, comparison))
	}
	return sb.String()
}

// FrameworkComparisonTable renders benchmark rows as a markdown table. The
// column headers are the framework names of the first row.
func FrameworkComparisonTable(rows []extract.FrameworkComparison) string {
	if len(rows) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("| Benchmark | %s | %s | Justification |\n",
		cell(rows[0].Framework1Name), cell(rows[0].Framework2Name)))
	sb.WriteString("|---|---|---|---|\n")

	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			cell(r.Benchmark), cell(r.Framework1Value), cell(r.Framework2Value), cell(r.Justification)))
	}
	return sb.String()
}
