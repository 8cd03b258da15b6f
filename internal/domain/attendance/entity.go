package attendance

import (
	"time"
)

type PunchKind string

const (
	PunchIn  PunchKind = "in"
	PunchOut PunchKind = "out"
)

// Attendance is one employee's record for one calendar day in the reference timezone.
type Attendance struct {
	ID           string
	EmployeeID   string
	EmployeeCode string
	WorkDate     time.Time // UTC midnight of the local day
	PunchIn      *time.Time
	PunchOut     *time.Time
	SourceIP     string
	PhotoRef     string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	EmployeeName *string
}

// IsOpen reports a punch-in without a punch-out.
func (a Attendance) IsOpen() bool {
	return a.PunchIn != nil && a.PunchOut == nil
}

// IsComplete reports both punch times set.
func (a Attendance) IsComplete() bool {
	return a.PunchIn != nil && a.PunchOut != nil
}

// WorkedDuration is zero unless the record is complete.
func (a Attendance) WorkedDuration() time.Duration {
	if !a.IsComplete() {
		return 0
	}
	return a.PunchOut.Sub(*a.PunchIn)
}
