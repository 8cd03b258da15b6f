package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/correction"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, validator.ErrInvalidInput):
		ValidationError(w, map[string]string{"request": err.Error()})

	// Auth errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrEmployeeProfileRequired):
		Forbidden(w, "Employee profile required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAccessDenied):
		ErrorWithCode(w, http.StatusForbidden, "ACCESS_DENIED", "Punch is not allowed from this network or device")
	case errors.Is(err, attendance.ErrPhotoRequired):
		ErrorWithCode(w, http.StatusBadRequest, "PHOTO_REQUIRED", "Attendance proof photo is required to punch in")
	case errors.Is(err, attendance.ErrTooEarlyToPunchOut):
		ErrorWithCode(w, http.StatusBadRequest, "TOO_EARLY_TO_PUNCH_OUT", err.Error())
	case errors.Is(err, attendance.ErrAlreadyComplete):
		ErrorWithCode(w, http.StatusConflict, "ALREADY_COMPLETE", "Attendance for today is already complete")
	case errors.Is(err, attendance.ErrAttendanceExists):
		Conflict(w, "Attendance for this day already exists")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance not found")
	case errors.Is(err, attendance.ErrPhotoNotFound):
		NotFound(w, "Attendance photo not found")

	// Correction domain errors
	case errors.Is(err, correction.ErrCorrectionNotFound):
		NotFound(w, "Correction request not found")
	case errors.Is(err, correction.ErrAlreadyReviewed):
		ErrorWithCode(w, http.StatusConflict, "ALREADY_REVIEWED", "Correction request already reviewed")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Access domain errors
	case errors.Is(err, access.ErrIPAlreadyAllowed):
		Conflict(w, "IP address already allowed")
	case errors.Is(err, access.ErrIPNotFound):
		NotFound(w, "IP address not found")

	case errors.Is(err, database.ErrStoreUnavailable):
		slog.Error("store unavailable", "error", err)
		ServiceUnavailable(w, "Service temporarily unavailable")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
