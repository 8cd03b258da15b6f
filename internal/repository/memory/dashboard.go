package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
)

type dashboardRepositoryImpl struct {
	*Store
}

func NewDashboardRepository(s *Store) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{Store: s}
}

func (r *dashboardRepositoryImpl) GetPunchStatsByDay(ctx context.Context, workDate time.Time) (*dashboard.PunchStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("get punch stats"); err != nil {
		return nil, err
	}

	stats := &dashboard.PunchStats{}
	for _, a := range r.attendances {
		if !a.WorkDate.Equal(workDate) {
			continue
		}
		if a.PunchIn != nil {
			stats.PunchIn++
		}
		if a.PunchOut != nil {
			stats.PunchOut++
		}
	}
	return stats, nil
}
