package tool

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/napatsw/trendscope/trends/contract"
)

const (
	ToolGetLatestTrends = "get_latest_trends"

	defaultReportLimit = 10
	maxReportLimit     = 50
	minReportLimit     = 1
)

type latestTrends struct {
	store contractx.Store
	cfg   Config
}

// NewLatestTrends builds the get_latest_trends definition: a filtered, sorted,
// limited query over the reports collection.
func NewLatestTrends(store contractx.Store, cfg Config) Definition {
	t := &latestTrends{store: store, cfg: cfg}
	return Definition{
		Name:        ToolGetLatestTrends,
		Description: "Retrieve the latest trend reports, newest first, optionally filtered by field and minimum confidence.",
		Params: []Param{
			{Name: "limit", Type: ParamNumber, Description: "Maximum number of reports to return (default 10, capped at 50)."},
			{Name: "field", Type: ParamString, Description: "Exact-match filter on the report field."},
			{Name: "minConfidence", Type: ParamNumber, Description: "Lower bound on confidence_score (default 0)."},
		},
		Handler: t.handle,
	}
}

func (t *latestTrends) handle(ctx context.Context, args map[string]any) (contractx.ToolResult, error) {
	limit := limitArg(args, "limit", defaultReportLimit, minReportLimit, maxReportLimit)
	field := strings.TrimSpace(stringArg(args, "field"))
	minConfidence, _ := numberArg(args, "minConfidence")

	ctx, cancel := context.WithTimeout(ctx, t.cfg.CallTimeout)
	defer cancel()

	reports, err := t.store.LatestReports(ctx, contractx.ReportQuery{
		Field:         field,
		MinConfidence: minConfidence,
		Limit:         limit,
	})
	if err != nil {
		return contractx.ToolResult{}, err
	}

	return contractx.TextResult(formatReports(reports)), nil
}

func formatReports(reports []contractx.TrendReport) string {
	blocks := make([]string, 0, len(reports))
	for _, r := range reports {
		header := fmt.Sprintf("%s | %s", r.CreatedAt.Format("2006-01-02"), r.TrendName)
		if r.Field != "" {
			header += fmt.Sprintf(" | field: %s", r.Field)
		}
		header += fmt.Sprintf(" | confidence: %.2f", r.ConfidenceScore)
		blocks = append(blocks, header+"\n"+r.Analysis)
	}
	return strings.Join(blocks, "\n\n")
}
