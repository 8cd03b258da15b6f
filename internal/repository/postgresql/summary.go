package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/summary"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type summaryRepository struct {
	db *database.DB
}

func NewSummaryRepository(db *database.DB) summary.SummaryRepository {
	return &summaryRepository{db: db}
}

// AggregatePresentDays implements summary.SummaryRepository.
func (r *summaryRepository) AggregatePresentDays(ctx context.Context, loc *time.Location, filter summary.SummaryFilter) ([]summary.PresentDayGroup, error) {
	q := GetQuerier(ctx, r.db)

	args := []interface{}{loc.String()}
	where := "WHERE punch_in_time IS NOT NULL AND punch_out_time IS NOT NULL"
	if filter.HasMonth {
		where += " AND EXTRACT(YEAR FROM punch_in_time AT TIME ZONE $1) = $2 AND EXTRACT(MONTH FROM punch_in_time AT TIME ZONE $1) = $3"
		args = append(args, filter.Year, int(filter.MonthNum))
	}

	query := fmt.Sprintf(`
		SELECT employee_code,
			EXTRACT(YEAR FROM punch_in_time AT TIME ZONE $1)::int AS year,
			EXTRACT(MONTH FROM punch_in_time AT TIME ZONE $1)::int AS month,
			COUNT(*) AS present_days
		FROM attendances
		%s
		GROUP BY employee_code, year, month
	`, where)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("failed to aggregate present days", err)
	}
	defer rows.Close()

	groups := make([]summary.PresentDayGroup, 0)
	for rows.Next() {
		var g summary.PresentDayGroup
		var month int
		var count int64
		if err := rows.Scan(&g.EmployeeCode, &g.Year, &month, &count); err != nil {
			return nil, wrapErr("failed to scan present days", err)
		}
		g.Month = time.Month(month)
		g.PresentDays = int(count)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to iterate present days", err)
	}
	return groups, nil
}

// ListOverrides implements summary.SummaryRepository.
func (r *summaryRepository) ListOverrides(ctx context.Context, month *string) ([]summary.Override, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT employee_id, month, present_days, updated_by, updated_at FROM monthly_summary_overrides`
	args := []interface{}{}
	if month != nil {
		query += " WHERE month = $1"
		args = append(args, *month)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("failed to list summary overrides", err)
	}
	defer rows.Close()

	result := make([]summary.Override, 0)
	for rows.Next() {
		var o summary.Override
		if err := rows.Scan(&o.EmployeeID, &o.Month, &o.PresentDays, &o.UpdatedBy, &o.UpdatedAt); err != nil {
			return nil, wrapErr("failed to scan summary override", err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to iterate summary overrides", err)
	}
	return result, nil
}

// UpsertOverride implements summary.SummaryRepository.
func (r *summaryRepository) UpsertOverride(ctx context.Context, o summary.Override) (summary.Override, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_summary_overrides (employee_id, month, present_days, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (employee_id, month)
		DO UPDATE SET present_days = EXCLUDED.present_days, updated_by = EXCLUDED.updated_by, updated_at = NOW()
		RETURNING updated_at
	`

	if err := q.QueryRow(ctx, query, o.EmployeeID, o.Month, o.PresentDays, o.UpdatedBy).Scan(&o.UpdatedAt); err != nil {
		return summary.Override{}, wrapErr("failed to upsert summary override", err)
	}
	return o, nil
}
