package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/file"
)

// Options are the punch rules taken from configuration.
type Options struct {
	Location        *time.Location
	MinWorkDuration time.Duration
}

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	predicate   access.Predicate
	fileService file.FileService
	publisher   sse.Publisher
	clock       clock.Clock
	loc         *time.Location
	minWork     time.Duration
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepository attendance.AttendanceRepository,
	predicate access.Predicate,
	fileService file.FileService,
	publisher sse.Publisher,
	clk clock.Clock,
	opts Options,
) attendance.AttendanceService {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	minWork := opts.MinWorkDuration
	if minWork <= 0 {
		minWork = time.Hour
	}

	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepository,
		predicate:            predicate,
		fileService:          fileService,
		publisher:            publisher,
		clock:                clk,
		loc:                  loc,
		minWork:              minWork,
	}
}

// Punch implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Punch(ctx context.Context, req attendance.PunchRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	req.SourceIP = attendance.NormalizeIP(req.SourceIP)
	req.LocalIP = attendance.NormalizeIP(req.LocalIP)

	allowed, err := s.predicate.IsAllowed(ctx, req.EmployeeID, req.SourceIP, req.LocalIP)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to evaluate access: %w", err)
	}
	if !allowed {
		return attendance.PunchResponse{}, attendance.ErrAccessDenied
	}

	now := s.clock.Now().UTC()
	workDate := calendar.DateOnly(now, s.loc)

	var (
		result     attendance.PunchResponse
		uploadedTo string
	)

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.LockDay(txCtx, req.EmployeeID, workDate); err != nil {
			return fmt.Errorf("failed to lock attendance day: %w", err)
		}

		existing, err := s.GetByEmployeeAndDate(txCtx, req.EmployeeID, workDate)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}

		switch {
		case existing == nil:
			if !req.HasPhoto() {
				return attendance.ErrPhotoRequired
			}

			ref, err := s.storePhoto(txCtx, req, workDate, attendance.PunchIn)
			if err != nil {
				return err
			}
			uploadedTo = ref

			punchIn := now
			created, err := s.Create(txCtx, attendance.Attendance{
				EmployeeID:   req.EmployeeID,
				EmployeeCode: req.EmployeeCode,
				WorkDate:     workDate,
				PunchIn:      &punchIn,
				SourceIP:     req.SourceIP,
				PhotoRef:     ref,
			})
			if err != nil {
				return fmt.Errorf("failed to create attendance: %w", err)
			}

			result = attendance.PunchResponse{
				Kind:       attendance.PunchIn,
				Time:       now,
				Attendance: attendance.NewAttendanceResponse(created),
			}
			return nil

		case existing.IsOpen():
			if now.Sub(*existing.PunchIn) < s.minWork {
				return attendance.ErrTooEarlyToPunchOut
			}

			updated := *existing
			if req.HasPhoto() {
				ref, err := s.storePhoto(txCtx, req, workDate, attendance.PunchOut)
				if err != nil {
					return err
				}
				uploadedTo = ref
				updated.PhotoRef = ref
			}

			punchOut := now
			updated.PunchOut = &punchOut
			updated.SourceIP = req.SourceIP
			updated.UpdatedAt = now

			if err := s.Update(txCtx, updated); err != nil {
				return fmt.Errorf("failed to update attendance: %w", err)
			}

			result = attendance.PunchResponse{
				Kind:       attendance.PunchOut,
				Time:       now,
				Attendance: attendance.NewAttendanceResponse(updated),
			}
			return nil

		default:
			return attendance.ErrAlreadyComplete
		}
	})
	if err != nil {
		if uploadedTo != "" {
			if delErr := s.fileService.DeleteAttendancePhoto(context.WithoutCancel(ctx), uploadedTo); delErr != nil {
				slog.Warn("failed to remove photo of aborted punch", "ref", uploadedTo, "error", delErr)
			}
		}
		return attendance.PunchResponse{}, err
	}

	slog.Info("attendance punched",
		"employee_id", req.EmployeeID,
		"kind", result.Kind,
		"work_date", workDate.Format("2006-01-02"),
	)

	s.publisher.Publish(req.EmployeeID, sse.Event{
		Name:       sse.EventAttendancePunched,
		Data:       result,
		OccurredAt: now,
	})

	return result, nil
}

// storePhoto validates and uploads the proof photo; unusable photos are input errors
func (s *AttendanceServiceImpl) storePhoto(ctx context.Context, req attendance.PunchRequest, workDate time.Time, kind attendance.PunchKind) (string, error) {
	if err := req.ValidatePhoto(); err != nil {
		return "", err
	}

	ref, err := s.fileService.UploadAttendancePhoto(ctx, req.EmployeeID, workDate, string(kind), req.Photo, req.PhotoName)
	switch {
	case errors.Is(err, file.ErrInvalidFileType):
		return "", validator.Field("photo", file.ErrInvalidFileType.Error())
	case errors.Is(err, file.ErrInvalidImage):
		return "", validator.Field("photo", file.ErrInvalidImage.Error())
	case err != nil:
		return "", fmt.Errorf("failed to store attendance photo: %w", err)
	}
	return ref, nil
}

// GetStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetStatus(ctx context.Context, employeeID string) (attendance.StatusResponse, error) {
	workDate := calendar.DateOnly(s.clock.Now(), s.loc)
	status := attendance.StatusResponse{Date: workDate.Format("2006-01-02")}

	existing, err := s.GetByEmployeeAndDate(ctx, employeeID, workDate)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing != nil {
		status.PunchIn = existing.PunchIn
		status.PunchOut = existing.PunchOut
	}
	return status, nil
}

// ListMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMyAttendance(ctx context.Context, employeeID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	filter.EmployeeID = &employeeID
	return s.ListRecords(ctx, filter)
}

// ListRecords implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return attendance.NewListAttendanceResponse(records, total, filter), nil
}

// GetPhoto implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetPhoto(ctx context.Context, recordID string) (attendance.Photo, error) {
	record, err := s.GetByID(ctx, recordID)
	if err != nil {
		return attendance.Photo{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if record.PhotoRef == "" {
		return attendance.Photo{}, attendance.ErrPhotoNotFound
	}

	rc, err := s.fileService.OpenAttendancePhoto(ctx, record.PhotoRef)
	if err != nil {
		if errors.Is(err, file.ErrFileNotFound) {
			return attendance.Photo{}, fmt.Errorf("%w: %s", attendance.ErrPhotoNotFound, record.PhotoRef)
		}
		return attendance.Photo{}, fmt.Errorf("failed to open attendance photo: %w", err)
	}

	return attendance.Photo{
		Content:     rc,
		ContentType: "image/jpeg",
		Name:        fmt.Sprintf("%s-%s.jpg", record.EmployeeCode, record.WorkDate.Format("2006-01-02")),
	}, nil
}

// ExportRecords implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportRecords(ctx context.Context, filter attendance.AttendanceFilter) ([]byte, error) {
	filter.Unpaged = true
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, _, err := s.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	rows := make([][]interface{}, 0, len(records))
	for _, a := range records {
		name := ""
		if a.EmployeeName != nil {
			name = *a.EmployeeName
		}
		worked := ""
		if a.IsComplete() {
			worked = fmt.Sprintf("%d", int(a.WorkedDuration().Minutes()))
		}
		rows = append(rows, []interface{}{
			a.WorkDate.Format("2006-01-02"),
			a.EmployeeCode,
			name,
			s.localClock(a.PunchIn),
			s.localClock(a.PunchOut),
			worked,
			a.SourceIP,
		})
	}

	return export.XLSX(export.Table{
		Sheet:   "Attendance",
		Headers: []string{"Date", "Employee Code", "Employee Name", "Punch In", "Punch Out", "Worked Minutes", "Source IP"},
		Rows:    rows,
	})
}

func (s *AttendanceServiceImpl) localClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(s.loc).Format("15:04:05")
}
