package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/correction"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	employeeDirectory    employee.Directory
	correctionRepository correction.CorrectionRepository
	clock                clock.Clock
	loc                  *time.Location
}

func NewDashboardService(
	repo dashboard.DashboardRepository,
	employeeDirectory employee.Directory,
	correctionRepository correction.CorrectionRepository,
	clk clock.Clock,
	loc *time.Location,
) dashboard.DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardServiceImpl{
		DashboardRepository:  repo,
		employeeDirectory:    employeeDirectory,
		correctionRepository: correctionRepository,
		clock:                clk,
		loc:                  loc,
	}
}

// parseDate parses YYYY-MM-DD format, defaults to today in the reference timezone
func (s *DashboardServiceImpl) parseDate(date string) (time.Time, error) {
	if date == "" {
		return calendar.DateOnly(s.clock.Now(), s.loc), nil
	}

	parsed, ok := validator.IsValidDate(date)
	if !ok {
		return time.Time{}, validator.Field("date", "date must be in YYYY-MM-DD format")
	}
	return parsed, nil
}

// GetSummary returns the admin dashboard totals using parallel goroutines
// 3 goroutines, each with 1 query
func (s *DashboardServiceImpl) GetSummary(ctx context.Context, date string) (*dashboard.SummaryResponse, error) {
	workDate, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}

	resp := &dashboard.SummaryResponse{Date: workDate.Format("2006-01-02")}

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Employee total
	g.Go(func() error {
		total, err := s.employeeDirectory.Count(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count employees: %w", err)
		}
		resp.TotalEmployees = total
		return nil
	})

	// 2. Punch counts for the day
	g.Go(func() error {
		stats, err := s.GetPunchStatsByDay(gCtx, workDate)
		if err != nil {
			return fmt.Errorf("failed to get punch stats: %w", err)
		}
		resp.PunchInCount = stats.PunchIn
		resp.PunchOutCount = stats.PunchOut
		return nil
	})

	// 3. Corrections waiting for review
	g.Go(func() error {
		pending, err := s.correctionRepository.CountPending(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count pending corrections: %w", err)
		}
		resp.PendingCorrections = pending
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resp, nil
}
