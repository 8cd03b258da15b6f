package attendance

import "errors"

// Attendance domain errors
var (
	// Punch errors
	ErrAccessDenied       = errors.New("attendance is only allowed from an approved network and device")
	ErrPhotoRequired      = errors.New("a proof photo is required to punch in")
	ErrTooEarlyToPunchOut = errors.New("too early to punch out")
	ErrAlreadyComplete    = errors.New("attendance for today is already complete")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAttendanceExists   = errors.New("attendance record already exists for this day")
	ErrPhotoNotFound      = errors.New("attendance photo not found")
)
