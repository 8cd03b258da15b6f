package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// workDate arguments are the UTC midnight of the local calendar day.
type AttendanceRepository interface {
	// LockDay serializes writers of one (employee, day) key until the surrounding transaction ends
	LockDay(ctx context.Context, employeeID string, workDate time.Time) error

	// Create creates a new attendance record, ErrAttendanceExists on a duplicate day
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil without error when the day has no record
	GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (*Attendance, error)

	// Update overwrites punch times, source IP and photo reference
	Update(ctx context.Context, attendance Attendance) error

	// List retrieves records newest first, joined with the employee name
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
}
