package calendar

import (
	"fmt"
	"time"
)

// MonthLabelLayout formats months as "August 2025".
const MonthLabelLayout = "January 2006"

// CountWeekdays returns the number of days in the month that are neither
// Saturday nor Sunday. zeroBasedMonth follows the 0 = January convention.
func CountWeekdays(year int, zeroBasedMonth int) int {
	first := time.Date(year, time.Month(zeroBasedMonth+1), 1, 0, 0, 0, 0, time.UTC)
	weekdays := 0
	for day := first; day.Month() == first.Month(); day = day.AddDate(0, 0, 1) {
		if day.Weekday() != time.Saturday && day.Weekday() != time.Sunday {
			weekdays++
		}
	}
	return weekdays
}

// DaysInMonth returns 28..31 for the given 1-based month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthLabel renders the grouping key used by summaries and overrides.
func MonthLabel(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format(MonthLabelLayout)
}

// ParseMonthLabel is the inverse of MonthLabel.
func ParseMonthLabel(label string) (int, time.Month, error) {
	t, err := time.Parse(MonthLabelLayout, label)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month label %q: expected format like %q", label, "August 2025")
	}
	return t.Year(), t.Month(), nil
}

// StartOfDay truncates t to local midnight in loc, keeping loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// DateOnly returns the calendar day of t in loc as a UTC midnight value,
// the representation stored in DATE columns.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
