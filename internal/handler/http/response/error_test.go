package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/correction"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validator.Field("reason", "reason is required"), http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"invalid input", fmt.Errorf("bad: %w", validator.ErrInvalidInput), http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"access denied", attendance.ErrAccessDenied, http.StatusForbidden, "ACCESS_DENIED"},
		{"photo required", attendance.ErrPhotoRequired, http.StatusBadRequest, "PHOTO_REQUIRED"},
		{"too early", fmt.Errorf("%w: 12 minutes remaining", attendance.ErrTooEarlyToPunchOut), http.StatusBadRequest, "TOO_EARLY_TO_PUNCH_OUT"},
		{"already complete", attendance.ErrAlreadyComplete, http.StatusConflict, "ALREADY_COMPLETE"},
		{"already reviewed", correction.ErrAlreadyReviewed, http.StatusConflict, "ALREADY_REVIEWED"},
		{"correction not found", correction.ErrCorrectionNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"attendance not found", attendance.ErrAttendanceNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"photo not found", attendance.ErrPhotoNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"employee not found", employee.ErrEmployeeNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"ip exists", access.ErrIPAlreadyAllowed, http.StatusConflict, "CONFLICT"},
		{"ip missing", access.ErrIPNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"store unavailable", database.Unavailable("list", errors.New("dial tcp")), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"invalid token", user.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"admin required", user.ErrAdminPrivilegeRequired, http.StatusForbidden, "FORBIDDEN"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)

			var resp Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{
		{Field: "correction_date", Message: "correction_date must be YYYY-MM-DD"},
	})

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "correction_date must be YYYY-MM-DD", resp.Error.Details["correction_date"])
}

func TestFile(t *testing.T) {
	rec := httptest.NewRecorder()
	File(rec, "text/plain", "report.txt", []byte("hello"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="report.txt"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "5", rec.Header().Get("Content-Length"))
	assert.Equal(t, "hello", rec.Body.String())
}
