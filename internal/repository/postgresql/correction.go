package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/correction"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type correctionRepository struct {
	db *database.DB
}

func NewCorrectionRepository(db *database.DB) correction.CorrectionRepository {
	return &correctionRepository{db: db}
}

const correctionColumns = `
	id, employee_id, employee_code, correction_date,
	original_punch_in, original_punch_out, requested_punch_in, requested_punch_out,
	reason, status, admin_comment, reviewed_by, reviewed_at,
	created_at, updated_at`

func scanCorrection(row pgx.Row) (correction.CorrectionRequest, error) {
	var c correction.CorrectionRequest
	var status string
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.EmployeeCode, &c.CorrectionDate,
		&c.OriginalPunchIn, &c.OriginalPunchOut, &c.RequestedPunchIn, &c.RequestedPunchOut,
		&c.Reason, &status, &c.AdminComment, &c.ReviewedBy, &c.ReviewedAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	c.Status = correction.CorrectionStatus(status)
	return c, err
}

// Create implements correction.CorrectionRepository.
func (r *correctionRepository) Create(ctx context.Context, req correction.CorrectionRequest) (correction.CorrectionRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO correction_requests (
			employee_id, employee_code, correction_date,
			original_punch_in, original_punch_out, requested_punch_in, requested_punch_out,
			reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID,
		req.EmployeeCode,
		req.CorrectionDate,
		req.OriginalPunchIn,
		req.OriginalPunchOut,
		req.RequestedPunchIn,
		req.RequestedPunchOut,
		req.Reason,
		string(req.Status),
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return correction.CorrectionRequest{}, wrapErr("failed to create correction request", err)
	}

	return req, nil
}

// GetByIDForUpdate implements correction.CorrectionRepository.
func (r *correctionRepository) GetByIDForUpdate(ctx context.Context, id string) (correction.CorrectionRequest, error) {
	if !inTransaction(ctx) {
		return correction.CorrectionRequest{}, errNoTransaction
	}
	if !validID(id) {
		return correction.CorrectionRequest{}, correction.ErrCorrectionNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + correctionColumns + ` FROM correction_requests WHERE id = $1 FOR UPDATE`

	c, err := scanCorrection(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return correction.CorrectionRequest{}, correction.ErrCorrectionNotFound
		}
		return correction.CorrectionRequest{}, wrapErr("failed to get correction request", err)
	}
	return c, nil
}

// UpdateReview implements correction.CorrectionRepository.
func (r *correctionRepository) UpdateReview(ctx context.Context, req correction.CorrectionRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE correction_requests
		SET status = $1, admin_comment = $2, reviewed_by = $3, reviewed_at = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, string(req.Status), req.AdminComment, req.ReviewedBy, req.ReviewedAt, req.ID)
	if err != nil {
		return wrapErr("failed to update correction review", err)
	}
	if tag.RowsAffected() == 0 {
		return correction.ErrCorrectionNotFound
	}
	return nil
}

// List implements correction.CorrectionRepository.
func (r *correctionRepository) List(ctx context.Context, filter correction.CorrectionFilter) ([]correction.CorrectionRequest, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
	}

	query := `SELECT ` + correctionColumns + ` FROM correction_requests ` + where + ` ORDER BY created_at DESC, id DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("failed to list correction requests", err)
	}
	defer rows.Close()

	result := make([]correction.CorrectionRequest, 0)
	for rows.Next() {
		c, err := scanCorrection(rows)
		if err != nil {
			return nil, wrapErr("failed to scan correction request", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to iterate correction requests", err)
	}
	return result, nil
}

// CountPending implements correction.CorrectionRepository.
func (r *correctionRepository) CountPending(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM correction_requests WHERE status = 'pending'`).Scan(&count); err != nil {
		return 0, wrapErr("failed to count pending corrections", err)
	}
	return count, nil
}
