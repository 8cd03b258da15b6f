package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Punch records a punch-in or punch-out for today, whichever the record's state calls for
	Punch(ctx context.Context, req PunchRequest) (PunchResponse, error)

	// GetStatus returns today's punch times for the employee
	GetStatus(ctx context.Context, employeeID string) (StatusResponse, error)

	// ListMyAttendance retrieves records of the authenticated employee
	ListMyAttendance(ctx context.Context, employeeID string, filter AttendanceFilter) (ListAttendanceResponse, error)

	// ListRecords retrieves records of every employee (admin)
	ListRecords(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetPhoto opens the proof photo of a record (admin)
	GetPhoto(ctx context.Context, recordID string) (Photo, error)

	// ExportRecords renders the filtered records as an XLSX workbook (admin)
	ExportRecords(ctx context.Context, filter AttendanceFilter) ([]byte, error)
}
