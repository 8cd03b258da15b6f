package summary

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type SummaryFilter struct {
	Month *string `json:"month,omitempty"` // "August 2025"

	// Resolved by Validate when Month is set
	Year     int        `json:"-"`
	MonthNum time.Month `json:"-"`
	HasMonth bool       `json:"-"`
}

func (f *SummaryFilter) Validate() error {
	if f.Month == nil || validator.IsEmpty(*f.Month) {
		f.Month = nil
		f.HasMonth = false
		return nil
	}

	year, month, err := calendar.ParseMonthLabel(strings.TrimSpace(*f.Month))
	if err != nil {
		return validator.Field("month", "month must look like \"August 2025\"")
	}

	label := calendar.MonthLabel(year, month)
	f.Month = &label
	f.Year = year
	f.MonthNum = month
	f.HasMonth = true
	return nil
}

type SetOverrideRequest struct {
	EmployeeID  string `json:"-"`
	Month       string `json:"month"`
	PresentDays int    `json:"present_days"`
	UpdatedBy   string `json:"-"`
}

func (r *SetOverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if year, month, err := calendar.ParseMonthLabel(strings.TrimSpace(r.Month)); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must look like \"August 2025\"",
		})
	} else {
		r.Month = calendar.MonthLabel(year, month)
	}

	if r.PresentDays < 0 || r.PresentDays > 31 {
		errs = append(errs, validator.ValidationError{
			Field:   "present_days",
			Message: "present_days must be between 0 and 31",
		})
	}

	if validator.IsEmpty(r.UpdatedBy) {
		errs = append(errs, validator.ValidationError{
			Field:   "updated_by",
			Message: "updated_by is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MonthlySummaryResponse struct {
	EmployeeID       string `json:"employee_id"`
	EmployeeCode     string `json:"employee_code"`
	EmployeeName     string `json:"employee_name"`
	Month            string `json:"month"`
	PresentDays      int    `json:"present_days"`
	TotalWorkingDays int    `json:"total_working_days"`
	Overridden       bool   `json:"overridden"`
}

func NewMonthlySummaryResponse(s MonthlySummary) MonthlySummaryResponse {
	return MonthlySummaryResponse{
		EmployeeID:       s.EmployeeID,
		EmployeeCode:     s.EmployeeCode,
		EmployeeName:     s.EmployeeName,
		Month:            s.MonthLabel,
		PresentDays:      s.PresentDays,
		TotalWorkingDays: s.TotalWorkingDays,
		Overridden:       s.Overridden,
	}
}

type OverrideResponse struct {
	EmployeeID  string    `json:"employee_id"`
	Month       string    `json:"month"`
	PresentDays int       `json:"present_days"`
	UpdatedBy   string    `json:"updated_by"`
	UpdatedAt   time.Time `json:"updated_at"`
}
