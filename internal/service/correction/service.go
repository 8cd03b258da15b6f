package correction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/correction"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
)

type CorrectionServiceImpl struct {
	tx database.Transactor
	correction.CorrectionRepository
	attendanceRepository attendance.AttendanceRepository
	publisher            sse.Publisher
	clock                clock.Clock
	loc                  *time.Location
}

func NewCorrectionService(
	tx database.Transactor,
	correctionRepository correction.CorrectionRepository,
	attendanceRepository attendance.AttendanceRepository,
	publisher sse.Publisher,
	clk clock.Clock,
	loc *time.Location,
) correction.CorrectionService {
	if loc == nil {
		loc = time.UTC
	}
	return &CorrectionServiceImpl{
		tx:                   tx,
		CorrectionRepository: correctionRepository,
		attendanceRepository: attendanceRepository,
		publisher:            publisher,
		clock:                clk,
		loc:                  loc,
	}
}

// Submit implements correction.CorrectionService.
func (s *CorrectionServiceImpl) Submit(ctx context.Context, req correction.SubmitCorrectionRequest) (correction.CorrectionResponse, error) {
	if err := req.Validate(); err != nil {
		return correction.CorrectionResponse{}, err
	}

	day, punchIn, punchOut, err := req.ResolveTimes(s.loc)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	existing, err := s.attendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, day)
	if err != nil {
		return correction.CorrectionResponse{}, fmt.Errorf("failed to get attendance for correction date: %w", err)
	}

	newRequest := correction.CorrectionRequest{
		EmployeeID:        req.EmployeeID,
		EmployeeCode:      req.EmployeeCode,
		CorrectionDate:    day,
		RequestedPunchIn:  punchIn,
		RequestedPunchOut: punchOut,
		Reason:            req.Reason,
		Status:            correction.StatusPending,
	}
	if existing != nil {
		newRequest.OriginalPunchIn = existing.PunchIn
		newRequest.OriginalPunchOut = existing.PunchOut
	}

	created, err := s.Create(ctx, newRequest)
	if err != nil {
		return correction.CorrectionResponse{}, fmt.Errorf("failed to create correction request: %w", err)
	}

	slog.Info("correction request submitted",
		"correction_id", created.ID,
		"employee_id", created.EmployeeID,
		"correction_date", created.CorrectionDate.Format("2006-01-02"),
	)

	resp := correction.NewCorrectionResponse(created)
	s.publisher.Publish(sse.AdminChannel, sse.Event{
		Name:       sse.EventCorrectionSubmitted,
		Data:       resp,
		OccurredAt: s.clock.Now().UTC(),
	})

	return resp, nil
}

// List implements correction.CorrectionService.
func (s *CorrectionServiceImpl) List(ctx context.Context, filter correction.CorrectionFilter) ([]correction.CorrectionResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requests, err := s.CorrectionRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list correction requests: %w", err)
	}

	result := make([]correction.CorrectionResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, correction.NewCorrectionResponse(r))
	}
	return result, nil
}

// Review implements correction.CorrectionService.
func (s *CorrectionServiceImpl) Review(ctx context.Context, req correction.ReviewCorrectionRequest) (correction.CorrectionResponse, error) {
	if err := req.Validate(); err != nil {
		return correction.CorrectionResponse{}, err
	}

	now := s.clock.Now().UTC()
	var reviewed correction.CorrectionRequest

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.GetByIDForUpdate(txCtx, req.ID)
		if err != nil {
			return fmt.Errorf("failed to get correction request: %w", err)
		}
		if !current.IsPending() {
			return correction.ErrAlreadyReviewed
		}

		reviewerID := req.ReviewerID
		current.Status = correction.CorrectionStatus(req.Status)
		current.AdminComment = req.AdminComment
		current.ReviewedBy = &reviewerID
		current.ReviewedAt = &now

		if err := s.UpdateReview(txCtx, current); err != nil {
			return fmt.Errorf("failed to update correction request: %w", err)
		}

		if current.Status == correction.StatusApproved {
			if err := s.applyCorrection(txCtx, current); err != nil {
				return err
			}
		}

		current.UpdatedAt = now
		reviewed = current
		return nil
	})
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	slog.Info("correction request reviewed",
		"correction_id", reviewed.ID,
		"status", reviewed.Status,
		"reviewed_by", req.ReviewerID,
	)

	resp := correction.NewCorrectionResponse(reviewed)
	s.publisher.Publish(reviewed.EmployeeID, sse.Event{
		Name:       sse.EventCorrectionReviewed,
		Data:       resp,
		OccurredAt: now,
	})

	return resp, nil
}

// applyCorrection upserts the day's record, writing only the requested
// fields. Punch rules do not apply to administrator decisions.
func (s *CorrectionServiceImpl) applyCorrection(ctx context.Context, c correction.CorrectionRequest) error {
	if err := s.attendanceRepository.LockDay(ctx, c.EmployeeID, c.CorrectionDate); err != nil {
		return fmt.Errorf("failed to lock attendance day: %w", err)
	}

	existing, err := s.attendanceRepository.GetByEmployeeAndDate(ctx, c.EmployeeID, c.CorrectionDate)
	if err != nil {
		return fmt.Errorf("failed to get attendance for correction date: %w", err)
	}

	if existing == nil {
		_, err := s.attendanceRepository.Create(ctx, attendance.Attendance{
			EmployeeID:   c.EmployeeID,
			EmployeeCode: c.EmployeeCode,
			WorkDate:     c.CorrectionDate,
			PunchIn:      c.RequestedPunchIn,
			PunchOut:     c.RequestedPunchOut,
		})
		if err != nil {
			return fmt.Errorf("failed to create corrected attendance: %w", err)
		}
		return nil
	}

	updated := *existing
	if c.RequestedPunchIn != nil {
		updated.PunchIn = c.RequestedPunchIn
	}
	if c.RequestedPunchOut != nil {
		updated.PunchOut = c.RequestedPunchOut
	}

	if err := s.attendanceRepository.Update(ctx, updated); err != nil {
		return fmt.Errorf("failed to apply correction: %w", err)
	}
	return nil
}
