package attendance

import (
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// MaxPhotoSize bounds proof photo uploads.
const MaxPhotoSize = 10 << 20

// ========================================
// PUNCH DTOs
// ========================================

type PunchRequest struct {
	EmployeeID   string    `json:"-"`
	EmployeeCode string    `json:"-"`
	SourceIP     string    `json:"-"`
	LocalIP      string    `json:"local_ip"`
	Photo        io.Reader `json:"-"`
	PhotoName    string    `json:"-"`
	PhotoSize    int64     `json:"-"`
}

// HasPhoto reports whether a proof photo accompanies the punch.
func (r *PunchRequest) HasPhoto() bool {
	return r.Photo != nil
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidatePhoto checks the shape of a photo that is about to be stored.
// It runs only once the day's state says the photo will be kept, so a
// completed day still answers ErrAlreadyComplete whatever is attached.
func (r *PunchRequest) ValidatePhoto() error {
	ext := strings.ToLower(filepath.Ext(r.PhotoName))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return validator.Field("photo", "invalid file type: only jpg, jpeg, png allowed")
	}
	if r.PhotoSize > MaxPhotoSize {
		return validator.Field("photo", "attendance proof photo size must not exceed 10MB")
	}
	return nil
}

type PunchResponse struct {
	Kind       PunchKind          `json:"kind"`
	Time       time.Time          `json:"time"`
	Attendance AttendanceResponse `json:"attendance"`
}

// ========================================
// STATUS DTOs
// ========================================

type StatusResponse struct {
	Date     string     `json:"date"`
	PunchIn  *time.Time `json:"punch_in"`
	PunchOut *time.Time `json:"punch_out"`
}

// ========================================
// LISTING DTOs
// ========================================

type AttendanceResponse struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employee_id"`
	EmployeeCode  string     `json:"employee_code"`
	EmployeeName  *string    `json:"employee_name,omitempty"`
	WorkDate      string     `json:"work_date"`
	PunchIn       *time.Time `json:"punch_in"`
	PunchOut      *time.Time `json:"punch_out"`
	WorkedMinutes *int       `json:"worked_minutes,omitempty"`
	SourceIP      string     `json:"source_ip"`
	HasPhoto      bool       `json:"has_photo"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewAttendanceResponse maps a record to its JSON shape.
func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeCode: a.EmployeeCode,
		EmployeeName: a.EmployeeName,
		WorkDate:     a.WorkDate.Format("2006-01-02"),
		PunchIn:      a.PunchIn,
		PunchOut:     a.PunchOut,
		SourceIP:     a.SourceIP,
		HasPhoto:     a.PhotoRef != "",
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if a.IsComplete() {
		minutes := int(a.WorkedDuration().Minutes())
		resp.WorkedMinutes = &minutes
	}
	return resp
}

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`

	// Unpaged returns every matching row (exports)
	Unpaged bool `json:"-"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	var start, end time.Time
	var hasStart, hasEnd bool

	if f.StartDate != nil && *f.StartDate != "" {
		if start, hasStart = validator.IsValidDate(*f.StartDate); !hasStart {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if end, hasEnd = validator.IsValidDate(*f.EndDate); !hasEnd {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if hasStart && hasEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if !f.Unpaged {
		if f.Page < 1 {
			f.Page = 1
		}
		if f.Limit < 1 {
			f.Limit = 20
		}
		if f.Limit > 100 {
			errs = append(errs, validator.ValidationError{
				Field:   "limit",
				Message: "limit must not exceed 100",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// NewListAttendanceResponse pages a repository result.
func NewListAttendanceResponse(records []Attendance, total int64, filter AttendanceFilter) ListAttendanceResponse {
	items := make([]AttendanceResponse, 0, len(records))
	for _, a := range records {
		items = append(items, NewAttendanceResponse(a))
	}

	totalPages := 1
	if filter.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(filter.Limit)))
	}

	return ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: items,
	}
}

// ========================================
// PHOTO DTOs
// ========================================

// Photo is an opened proof photo, the caller closes Content.
type Photo struct {
	Content     io.ReadCloser
	ContentType string
	Name        string
}
