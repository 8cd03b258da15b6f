package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
)

// AdminFeed is the part of sse.Hub the dashboard push needs
type AdminFeed interface {
	sse.Publisher
	SubscriberCount(channel string) int
}

// DashboardJobs pushes the admin dashboard over SSE so clients need no polling timer
type DashboardJobs struct {
	dashboardService dashboard.DashboardService
	feed             AdminFeed
}

func NewDashboardJobs(dashboardService dashboard.DashboardService, feed AdminFeed) *DashboardJobs {
	return &DashboardJobs{
		dashboardService: dashboardService,
		feed:             feed,
	}
}

func (j *DashboardJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("push_dashboard_summary", interval, j.PushSummary)
}

// PushSummary publishes today's summary to the admin channel when anyone listens
func (j *DashboardJobs) PushSummary(ctx context.Context) error {
	if j.feed.SubscriberCount(sse.AdminChannel) == 0 {
		return nil
	}

	summary, err := j.dashboardService.GetSummary(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to get dashboard summary: %w", err)
	}

	j.feed.Publish(sse.AdminChannel, sse.Event{
		Name: sse.EventDashboardSummary,
		Data: summary,
	})
	return nil
}
