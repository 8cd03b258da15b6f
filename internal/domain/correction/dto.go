package correction

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// SUBMIT DTOs
// ========================================

type SubmitCorrectionRequest struct {
	EmployeeID        string  `json:"-"`
	EmployeeCode      string  `json:"-"`
	CorrectionDate    string  `json:"correction_date"`     // YYYY-MM-DD
	RequestedPunchIn  *string `json:"requested_punch_in"`  // HH:MM or HH:MM:SS, reference timezone
	RequestedPunchOut *string `json:"requested_punch_out"` // HH:MM or HH:MM:SS, reference timezone
	Reason            string  `json:"reason"`
}

func (r *SubmitCorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.CorrectionDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "correction_date",
			Message: "correction_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.CorrectionDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "correction_date",
			Message: "correction_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	hasIn := r.RequestedPunchIn != nil && !validator.IsEmpty(*r.RequestedPunchIn)
	hasOut := r.RequestedPunchOut != nil && !validator.IsEmpty(*r.RequestedPunchOut)

	if !hasIn && !hasOut {
		errs = append(errs, validator.ValidationError{
			Field:   "requested_punch_in",
			Message: "at least one of requested_punch_in or requested_punch_out is required",
		})
	}

	if hasIn {
		if _, ok := validator.IsValidClock(strings.TrimSpace(*r.RequestedPunchIn)); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_punch_in",
				Message: "requested_punch_in must be in HH:MM or HH:MM:SS format",
			})
		}
	}

	if hasOut {
		if _, ok := validator.IsValidClock(strings.TrimSpace(*r.RequestedPunchOut)); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_punch_out",
				Message: "requested_punch_out must be in HH:MM or HH:MM:SS format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ResolveTimes interprets the date and clock times in loc and returns the
// day (UTC midnight) and the requested instants in UTC. Call after Validate.
func (r *SubmitCorrectionRequest) ResolveTimes(loc *time.Location) (day time.Time, punchIn, punchOut *time.Time, err error) {
	date, ok := validator.IsValidDate(r.CorrectionDate)
	if !ok {
		return time.Time{}, nil, nil, validator.Field("correction_date", "correction_date must be in YYYY-MM-DD format")
	}

	at := func(field string, clock *string) (*time.Time, error) {
		if clock == nil || validator.IsEmpty(*clock) {
			return nil, nil
		}
		c, ok := validator.IsValidClock(strings.TrimSpace(*clock))
		if !ok {
			return nil, validator.Field(field, field+" must be in HH:MM or HH:MM:SS format")
		}
		t := time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), c.Second(), 0, loc).UTC()
		return &t, nil
	}

	if punchIn, err = at("requested_punch_in", r.RequestedPunchIn); err != nil {
		return time.Time{}, nil, nil, err
	}
	if punchOut, err = at("requested_punch_out", r.RequestedPunchOut); err != nil {
		return time.Time{}, nil, nil, err
	}

	return date, punchIn, punchOut, nil
}

// ========================================
// LIST DTOs
// ========================================

type CorrectionFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
}

func (f *CorrectionFilter) Validate() error {
	if f.Status != nil && *f.Status != "" {
		status := CorrectionStatus(strings.ToLower(*f.Status))
		if !status.IsValid() {
			return validator.Field("status", "status must be one of: pending, approved, rejected")
		}
		s := string(status)
		f.Status = &s
	}
	return nil
}

// ========================================
// REVIEW DTOs
// ========================================

type ReviewCorrectionRequest struct {
	ID           string  `json:"-"`
	Status       string  `json:"status"`
	AdminComment *string `json:"admin_comment"`
	ReviewerID   string  `json:"-"`
}

func (r *ReviewCorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	if !CorrectionStatus(r.Status).IsDecision() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: approved, rejected",
		})
	}

	if validator.IsEmpty(r.ReviewerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "reviewer_id",
			Message: "reviewer_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// RESPONSE DTOs
// ========================================

type CorrectionResponse struct {
	ID                string     `json:"id"`
	EmployeeID        string     `json:"employee_id"`
	EmployeeCode      string     `json:"employee_code"`
	CorrectionDate    string     `json:"correction_date"`
	OriginalPunchIn   *time.Time `json:"original_punch_in"`
	OriginalPunchOut  *time.Time `json:"original_punch_out"`
	RequestedPunchIn  *time.Time `json:"requested_punch_in"`
	RequestedPunchOut *time.Time `json:"requested_punch_out"`
	Reason            string     `json:"reason"`
	Status            string     `json:"status"`
	AdminComment      *string    `json:"admin_comment"`
	ReviewedBy        *string    `json:"reviewed_by"`
	ReviewedAt        *time.Time `json:"reviewed_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func NewCorrectionResponse(c CorrectionRequest) CorrectionResponse {
	return CorrectionResponse{
		ID:                c.ID,
		EmployeeID:        c.EmployeeID,
		EmployeeCode:      c.EmployeeCode,
		CorrectionDate:    c.CorrectionDate.Format("2006-01-02"),
		OriginalPunchIn:   c.OriginalPunchIn,
		OriginalPunchOut:  c.OriginalPunchOut,
		RequestedPunchIn:  c.RequestedPunchIn,
		RequestedPunchOut: c.RequestedPunchOut,
		Reason:            c.Reason,
		Status:            string(c.Status),
		AdminComment:      c.AdminComment,
		ReviewedBy:        c.ReviewedBy,
		ReviewedAt:        c.ReviewedAt,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
