package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/export"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Punch(w http.ResponseWriter, r *http.Request)
	GetStatus(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	GetPhoto(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Punch implements AttendanceHandler.
func (h *attendanceHandlerImpl) Punch(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(w, r)
	if !ok {
		return
	}

	req := attendance.PunchRequest{
		EmployeeID:   principal.EmployeeID,
		EmployeeCode: principal.EmployeeCode,
		SourceIP:     clientIP(r),
	}

	r.Body = http.MaxBytesReader(w, r.Body, attendance.MaxPhotoSize+(1<<20))

	// Punch-out may arrive without a body, so a non-multipart request is accepted
	err := r.ParseMultipartForm(10 << 20)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			response.BadRequest(w, "Attendance proof photo size must not exceed 10MB", nil)
			return
		}
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}
	req.LocalIP = r.FormValue("local_ip")

	if err == nil {
		file, fileHeader, err := r.FormFile("photo")
		switch {
		case err == nil:
			defer file.Close()
			req.Photo = file
			req.PhotoName = fileHeader.Filename
			req.PhotoSize = fileHeader.Size
		case errors.Is(err, http.ErrMissingFile):
		default:
			slog.Error("Failed to get file from form", "error", err)
			response.BadRequest(w, "Invalid file upload", nil)
			return
		}
	}

	result, err := h.attendanceService.Punch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Kind == attendance.PunchIn {
		response.Created(w, "Punch in successful", result)
		return
	}
	response.SuccessWithMessage(w, "Punch out successful", result)
}

// GetStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(w, r)
	if !ok {
		return
	}

	status, err := h.attendanceService.GetStatus(r.Context(), principal.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(w, r)
	if !ok {
		return
	}

	filter := attendanceFilterFromQuery(r)
	result, err := h.attendanceService.ListMyAttendance(r.Context(), principal.EmployeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendanceFilterFromQuery(r)

	result, err := h.attendanceService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export implements AttendanceHandler.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter := attendanceFilterFromQuery(r)

	data, err := h.attendanceService.ExportRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-records-%s.xlsx", time.Now().Format("20060102-150405"))
	response.File(w, export.ContentTypeXLSX, filename, data)
}

// GetPhoto implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Attendance ID is required", nil)
		return
	}

	photo, err := h.attendanceService.GetPhoto(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer photo.Content.Close()

	w.Header().Set("Content-Type", photo.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", photo.Name))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, photo.Content); err != nil {
		slog.Error("Failed to stream attendance photo", "attendance_id", id, "error", err)
	}
}
