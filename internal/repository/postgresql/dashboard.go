package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetPunchStatsByDay returns punch-in and punch-out counts in single query
func (r *dashboardRepositoryImpl) GetPunchStatsByDay(ctx context.Context, workDate time.Time) (*dashboard.PunchStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN punch_in_time IS NOT NULL THEN 1 ELSE 0 END), 0) as punch_in_count,
			COALESCE(SUM(CASE WHEN punch_out_time IS NOT NULL THEN 1 ELSE 0 END), 0) as punch_out_count
		FROM attendances
		WHERE work_date = $1
	`

	var stats dashboard.PunchStats
	if err := q.QueryRow(ctx, query, workDate).Scan(&stats.PunchIn, &stats.PunchOut); err != nil {
		return nil, wrapErr("failed to get punch stats", err)
	}
	return &stats, nil
}
