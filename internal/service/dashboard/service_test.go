package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/correction"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 00:30 on 5 August locally, still the 4th in UTC
	clk := clock.NewFixed(time.Date(2025, 8, 5, 0, 30, 0, 0, loc))
	store := memory.NewStore(clk)
	for _, e := range []employee.Employee{
		{ID: "emp-1", EmployeeCode: "E001"},
		{ID: "emp-2", EmployeeCode: "E002"},
		{ID: "emp-3", EmployeeCode: "E003"},
	} {
		store.PutEmployee(e)
	}

	attendances := memory.NewAttendanceRepository(store)
	today := time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	in := clk.Now()
	out := in.Add(time.Hour)

	for _, a := range []attendance.Attendance{
		{EmployeeID: "emp-1", WorkDate: today, PunchIn: &in, PunchOut: &out},
		{EmployeeID: "emp-2", WorkDate: today, PunchIn: &in},
		{EmployeeID: "emp-3", WorkDate: yesterday, PunchIn: &in, PunchOut: &out},
	} {
		_, err := attendances.Create(ctx, a)
		require.NoError(t, err)
	}

	corrections := memory.NewCorrectionRepository(store)
	_, err = corrections.Create(ctx, correction.CorrectionRequest{EmployeeID: "emp-1", Status: correction.StatusPending})
	require.NoError(t, err)
	_, err = corrections.Create(ctx, correction.CorrectionRequest{EmployeeID: "emp-2", Status: correction.StatusApproved})
	require.NoError(t, err)

	svc := NewDashboardService(memory.NewDashboardRepository(store), memory.NewEmployeeRepository(store), corrections, clk, loc)

	got, err := svc.GetSummary(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "2025-08-05", got.Date)
	assert.Equal(t, int64(3), got.TotalEmployees)
	assert.Equal(t, int64(2), got.PunchInCount)
	assert.Equal(t, int64(1), got.PunchOutCount)
	assert.Equal(t, int64(1), got.PendingCorrections)

	got, err = svc.GetSummary(ctx, "2025-08-04")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.PunchInCount)
	assert.Equal(t, int64(1), got.PunchOutCount)

	_, err = svc.GetSummary(ctx, "yesterday")
	assert.ErrorIs(t, err, validator.ErrInvalidInput)

	store.SetUnavailable(errors.New("connection refused"))
	_, err = svc.GetSummary(ctx, "")
	assert.ErrorIs(t, err, database.ErrStoreUnavailable)
}
