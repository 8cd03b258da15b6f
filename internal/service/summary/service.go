package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/summary"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/export"
)

type SummaryServiceImpl struct {
	summary.SummaryRepository
	employeeDirectory employee.Directory
	loc               *time.Location
}

func NewSummaryService(repo summary.SummaryRepository, employeeDirectory employee.Directory, loc *time.Location) summary.SummaryService {
	if loc == nil {
		loc = time.UTC
	}
	return &SummaryServiceImpl{
		SummaryRepository: repo,
		employeeDirectory: employeeDirectory,
		loc:               loc,
	}
}

type overrideKey struct {
	employeeID string
	month      string
}

// Summarize implements summary.SummaryService.
func (s *SummaryServiceImpl) Summarize(ctx context.Context, filter summary.SummaryFilter) ([]summary.MonthlySummaryResponse, error) {
	summaries, err := s.summarize(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]summary.MonthlySummaryResponse, 0, len(summaries))
	for _, m := range summaries {
		result = append(result, summary.NewMonthlySummaryResponse(m))
	}
	return result, nil
}

func (s *SummaryServiceImpl) summarize(ctx context.Context, filter summary.SummaryFilter) ([]summary.MonthlySummary, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	groups, err := s.AggregatePresentDays(ctx, s.loc, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate present days: %w", err)
	}

	overrides, err := s.ListOverrides(ctx, filter.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to list summary overrides: %w", err)
	}
	overrideByKey := make(map[overrideKey]summary.Override, len(overrides))
	for _, o := range overrides {
		overrideByKey[overrideKey{employeeID: o.EmployeeID, month: o.Month}] = o
	}

	employees := make(map[string]*employee.Employee)
	result := make([]summary.MonthlySummary, 0, len(groups))

	for _, g := range groups {
		emp, seen := employees[g.EmployeeCode]
		if !seen {
			found, err := s.employeeDirectory.LookupByCode(ctx, g.EmployeeCode)
			switch {
			case errors.Is(err, employee.ErrEmployeeNotFound):
				slog.Debug("dropping summary group without directory entry", "employee_code", g.EmployeeCode)
			case err != nil:
				return nil, fmt.Errorf("failed to look up employee %s: %w", g.EmployeeCode, err)
			default:
				emp = &found
			}
			employees[g.EmployeeCode] = emp
		}
		if emp == nil {
			continue
		}

		label := calendar.MonthLabel(g.Year, g.Month)
		m := summary.MonthlySummary{
			EmployeeID:       emp.ID,
			EmployeeCode:     g.EmployeeCode,
			EmployeeName:     emp.FullName,
			Year:             g.Year,
			Month:            g.Month,
			MonthLabel:       label,
			PresentDays:      g.PresentDays,
			TotalWorkingDays: calendar.CountWeekdays(g.Year, int(g.Month)-1),
		}
		if o, ok := overrideByKey[overrideKey{employeeID: emp.ID, month: label}]; ok {
			m.PresentDays = o.PresentDays
			m.Overridden = true
		}
		result = append(result, m)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year < result[j].Year
		}
		if result[i].Month != result[j].Month {
			return result[i].Month < result[j].Month
		}
		return result[i].EmployeeCode < result[j].EmployeeCode
	})

	return result, nil
}

// SetOverride implements summary.SummaryService.
func (s *SummaryServiceImpl) SetOverride(ctx context.Context, req summary.SetOverrideRequest) (summary.OverrideResponse, error) {
	if err := req.Validate(); err != nil {
		return summary.OverrideResponse{}, err
	}

	if _, err := s.employeeDirectory.GetByID(ctx, req.EmployeeID); err != nil {
		return summary.OverrideResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	saved, err := s.UpsertOverride(ctx, summary.Override{
		EmployeeID:  req.EmployeeID,
		Month:       req.Month,
		PresentDays: req.PresentDays,
		UpdatedBy:   req.UpdatedBy,
	})
	if err != nil {
		return summary.OverrideResponse{}, fmt.Errorf("failed to save summary override: %w", err)
	}

	slog.Info("monthly summary overridden",
		"employee_id", saved.EmployeeID,
		"month", saved.Month,
		"present_days", saved.PresentDays,
		"updated_by", saved.UpdatedBy,
	)

	return summary.OverrideResponse{
		EmployeeID:  saved.EmployeeID,
		Month:       saved.Month,
		PresentDays: saved.PresentDays,
		UpdatedBy:   saved.UpdatedBy,
		UpdatedAt:   saved.UpdatedAt,
	}, nil
}

// ExportSummary implements summary.SummaryService.
func (s *SummaryServiceImpl) ExportSummary(ctx context.Context, filter summary.SummaryFilter) ([]byte, error) {
	summaries, err := s.summarize(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(summaries))
	for _, m := range summaries {
		overridden := "No"
		if m.Overridden {
			overridden = "Yes"
		}
		rows = append(rows, []interface{}{
			m.EmployeeCode,
			m.EmployeeName,
			m.MonthLabel,
			m.PresentDays,
			m.TotalWorkingDays,
			overridden,
		})
	}

	return export.XLSX(export.Table{
		Sheet:   "Monthly Summary",
		Headers: []string{"Employee Code", "Employee Name", "Month", "Present Days", "Total Working Days", "Overridden"},
		Rows:    rows,
	})
}
