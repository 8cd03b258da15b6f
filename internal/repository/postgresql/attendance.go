package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.employee_code, a.work_date,
	a.punch_in_time, a.punch_out_time, a.source_ip, a.photo_ref,
	a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, extra ...any) (attendance.Attendance, error) {
	var att attendance.Attendance
	dest := []any{
		&att.ID, &att.EmployeeID, &att.EmployeeCode, &att.WorkDate,
		&att.PunchIn, &att.PunchOut, &att.SourceIP, &att.PhotoRef,
		&att.CreatedAt, &att.UpdatedAt,
	}
	dest = append(dest, extra...)
	err := row.Scan(dest...)
	return att, err
}

// LockDay implements attendance.AttendanceRepository.
func (a *attendanceRepository) LockDay(ctx context.Context, employeeID string, workDate time.Time) error {
	if !inTransaction(ctx) {
		return errNoTransaction
	}
	q := GetQuerier(ctx, a.db)

	key := fmt.Sprintf("attendance:%s:%s", employeeID, workDate.Format("2006-01-02"))
	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key); err != nil {
		return wrapErr("failed to lock attendance day", err)
	}
	return nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			employee_id, employee_code, work_date, punch_in_time, punch_out_time, source_ip, photo_ref
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		newAttendance.EmployeeCode,
		newAttendance.WorkDate,
		newAttendance.PunchIn,
		newAttendance.PunchOut,
		newAttendance.SourceIP,
		newAttendance.PhotoRef,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, wrapErr("failed to create attendance", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	if !validID(id) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `, e.full_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1`

	var name *string
	att, err := scanAttendance(q.QueryRow(ctx, query, id), &name)
	if err != nil {
		if isNoRows(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, wrapErr("failed to get attendance", err)
	}
	att.EmployeeName = name
	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1 AND a.work_date = $2`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, workDate))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr("failed to get attendance by day", err)
	}
	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET punch_in_time = $1, punch_out_time = $2, source_ip = $3, photo_ref = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, att.PunchIn, att.PunchOut, att.SourceIP, att.PhotoRef, att.ID)
	if err != nil {
		return wrapErr("failed to update attendance", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.work_date >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.work_date <= $%d::date", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendances a " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, wrapErr("failed to count attendances", err)
	}

	query := `SELECT ` + attendanceColumns + `, e.full_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		` + baseWhere + `
		ORDER BY a.work_date DESC, a.employee_code ASC`

	if !filter.Unpaged && filter.Limit > 0 {
		offset := (filter.Page - 1) * filter.Limit
		if offset < 0 {
			offset = 0
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, filter.Limit, offset)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapErr("failed to list attendances", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		var name *string
		att, err := scanAttendance(rows, &name)
		if err != nil {
			return nil, 0, wrapErr("failed to scan attendance", err)
		}
		att.EmployeeName = name
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("failed to iterate attendances", err)
	}

	return records, total, nil
}
