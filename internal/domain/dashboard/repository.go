package dashboard

import (
	"context"
	"time"
)

// PunchStats counts the day's records with a punch-in and with a punch-out
type PunchStats struct {
	PunchIn  int64
	PunchOut int64
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// GetPunchStatsByDay counts punches for a work date (UTC midnight of the local day) in single query
	GetPunchStatsByDay(ctx context.Context, workDate time.Time) (*PunchStats, error)
}
