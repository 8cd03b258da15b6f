package summary

import "context"

type SummaryService interface {
	// Summarize returns present days against weekdays per employee and month
	Summarize(ctx context.Context, filter SummaryFilter) ([]MonthlySummaryResponse, error)

	// SetOverride records an administrator's present-day count for one employee and month
	SetOverride(ctx context.Context, req SetOverrideRequest) (OverrideResponse, error)

	// ExportSummary renders Summarize as an XLSX workbook
	ExportSummary(ctx context.Context, filter SummaryFilter) ([]byte, error)
}
