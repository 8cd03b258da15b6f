package summary

import "time"

// PresentDayGroup counts complete attendance days for one employee code in one month.
type PresentDayGroup struct {
	EmployeeCode string
	Year         int
	Month        time.Month
	PresentDays  int
}

// Override replaces the computed present days of one employee for one month.
type Override struct {
	EmployeeID  string
	Month       string // "January 2006"
	PresentDays int
	UpdatedBy   string
	UpdatedAt   time.Time
}

type MonthlySummary struct {
	EmployeeID       string
	EmployeeCode     string
	EmployeeName     string
	Year             int
	Month            time.Month
	MonthLabel       string
	PresentDays      int
	TotalWorkingDays int
	Overridden       bool
}
