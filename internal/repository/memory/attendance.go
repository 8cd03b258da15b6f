package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/google/uuid"
)

type attendanceRepositoryImpl struct {
	*Store
}

func NewAttendanceRepository(s *Store) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{Store: s}
}

func dayKey(employeeID string, workDate time.Time) string {
	return fmt.Sprintf("attendance:%s:%s", employeeID, workDate.Format("2006-01-02"))
}

func (r *attendanceRepositoryImpl) LockDay(ctx context.Context, employeeID string, workDate time.Time) error {
	r.mu.Lock()
	err := r.check("lock attendance day")
	r.mu.Unlock()
	if err != nil {
		return err
	}
	return r.lock(ctx, dayKey(employeeID, workDate))
}

// findDay must be called with r.mu held.
func (r *attendanceRepositoryImpl) findDay(employeeID string, workDate time.Time) (attendance.Attendance, bool) {
	for _, a := range r.attendances {
		if a.EmployeeID == employeeID && a.WorkDate.Equal(workDate) {
			return a, true
		}
	}
	return attendance.Attendance{}, false
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("create attendance"); err != nil {
		return attendance.Attendance{}, err
	}

	if _, exists := r.findDay(a.EmployeeID, a.WorkDate); exists {
		return attendance.Attendance{}, attendance.ErrAttendanceExists
	}

	now := r.clock.Now()
	a.ID = uuid.Must(uuid.NewV7()).String()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.EmployeeName = nil
	r.attendances[a.ID] = a

	id := a.ID
	r.onRollback(ctx, func() { delete(r.attendances, id) })

	return r.withName(a), nil
}

func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("get attendance"); err != nil {
		return attendance.Attendance{}, err
	}

	a, ok := r.attendances[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.withName(a), nil
}

func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (*attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("get attendance by day"); err != nil {
		return nil, err
	}

	a, ok := r.findDay(employeeID, workDate)
	if !ok {
		return nil, nil
	}
	a = r.withName(a)
	return &a, nil
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, a attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("update attendance"); err != nil {
		return err
	}

	prev, ok := r.attendances[a.ID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}

	prev.PunchIn = a.PunchIn
	prev.PunchOut = a.PunchOut
	prev.SourceIP = a.SourceIP
	prev.PhotoRef = a.PhotoRef
	prev.UpdatedAt = r.clock.Now()

	old := r.attendances[a.ID]
	r.attendances[a.ID] = prev
	r.onRollback(ctx, func() { r.attendances[old.ID] = old })
	return nil
}

func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("list attendance"); err != nil {
		return nil, 0, err
	}

	var start, end *time.Time
	if filter.StartDate != nil && *filter.StartDate != "" {
		if t, err := time.Parse("2006-01-02", *filter.StartDate); err == nil {
			start = &t
		}
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		if t, err := time.Parse("2006-01-02", *filter.EndDate); err == nil {
			end = &t
		}
	}

	var matched []attendance.Attendance
	for _, a := range r.attendances {
		if filter.EmployeeID != nil && *filter.EmployeeID != "" && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		if start != nil && a.WorkDate.Before(*start) {
			continue
		}
		if end != nil && a.WorkDate.After(*end) {
			continue
		}
		matched = append(matched, r.withName(a))
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].WorkDate.Equal(matched[j].WorkDate) {
			return matched[i].WorkDate.After(matched[j].WorkDate)
		}
		return matched[i].EmployeeCode < matched[j].EmployeeCode
	})

	total := int64(len(matched))
	if filter.Unpaged || filter.Limit <= 0 {
		return matched, total, nil
	}

	offset := (filter.Page - 1) * filter.Limit
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return []attendance.Attendance{}, total, nil
	}
	stop := offset + filter.Limit
	if stop > len(matched) {
		stop = len(matched)
	}
	return matched[offset:stop], total, nil
}

// withName must be called with r.mu held.
func (r *attendanceRepositoryImpl) withName(a attendance.Attendance) attendance.Attendance {
	if e, ok := r.employees[a.EmployeeID]; ok {
		name := e.FullName
		a.EmployeeName = &name
	}
	return a
}
