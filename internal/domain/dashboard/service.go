package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetSummary returns the admin dashboard totals for a day (YYYY-MM-DD, empty for today) using goroutines
	GetSummary(ctx context.Context, date string) (*SummaryResponse, error)
}
