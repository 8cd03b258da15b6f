package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDashboard struct {
	calls int
	err   error
}

func (s *stubDashboard) GetSummary(ctx context.Context, date string) (*dashboard.SummaryResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &dashboard.SummaryResponse{Date: "2025-08-04", TotalEmployees: 3, PunchInCount: 2}, nil
}

func TestPushSummary_SkipsWithoutAdmins(t *testing.T) {
	svc := &stubDashboard{}
	jobs := NewDashboardJobs(svc, sse.NewHub())

	require.NoError(t, jobs.PushSummary(context.Background()))
	assert.Zero(t, svc.calls)
}

func TestPushSummary_PublishesToAdmins(t *testing.T) {
	hub := sse.NewHub()
	events, cleanup := hub.Subscribe(sse.AdminChannel)
	defer cleanup()

	jobs := NewDashboardJobs(&stubDashboard{}, hub)
	require.NoError(t, jobs.PushSummary(context.Background()))

	event := <-events
	assert.Equal(t, sse.EventDashboardSummary, event.Name)
	summary, ok := event.Data.(*dashboard.SummaryResponse)
	require.True(t, ok)
	assert.Equal(t, int64(2), summary.PunchInCount)
}

func TestPushSummary_PropagatesErrors(t *testing.T) {
	hub := sse.NewHub()
	_, cleanup := hub.Subscribe(sse.AdminChannel)
	defer cleanup()

	boom := errors.New("boom")
	jobs := NewDashboardJobs(&stubDashboard{err: boom}, hub)
	assert.ErrorIs(t, jobs.PushSummary(context.Background()), boom)
}
