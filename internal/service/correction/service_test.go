package correction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/correction"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC)

type fixture struct {
	svc         correction.CorrectionService
	store       *memory.Store
	attendances attendance.AttendanceRepository
	clock       *clock.Fixed
	hub         *sse.Hub
	loc         *time.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, nil)
}

// lockFailingRepository fails every day lock, after the request row is already updated.
type lockFailingRepository struct {
	attendance.AttendanceRepository
}

func (r lockFailingRepository) LockDay(ctx context.Context, employeeID string, workDate time.Time) error {
	return database.Unavailable("lock attendance day", errors.New("connection reset"))
}

func newFixtureWith(t *testing.T, wrap func(attendance.AttendanceRepository) attendance.AttendanceRepository) *fixture {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	clk := clock.NewFixed(time.Date(2025, 8, 6, 10, 0, 0, 0, loc))
	store := memory.NewStore(clk)
	attendances := memory.NewAttendanceRepository(store)
	hub := sse.NewHub()

	used := attendances
	if wrap != nil {
		used = wrap(attendances)
	}

	svc := NewCorrectionService(memory.NewTransactor(store), memory.NewCorrectionRepository(store), used, hub, clk, loc)
	return &fixture{svc: svc, store: store, attendances: attendances, clock: clk, hub: hub, loc: loc}
}

func strPtr(s string) *string { return &s }

func (f *fixture) seedRecord(t *testing.T, in, out *time.Time) attendance.Attendance {
	t.Helper()
	created, err := f.attendances.Create(context.Background(), attendance.Attendance{
		EmployeeID:   "emp-1",
		EmployeeCode: "E001",
		WorkDate:     day,
		PunchIn:      in,
		PunchOut:     out,
		SourceIP:     "203.0.113.7",
		PhotoRef:     "attendance/2025-08-04/emp-1-in.jpg",
	})
	require.NoError(t, err)
	return created
}

func (f *fixture) submit(t *testing.T, in, out *string) correction.CorrectionResponse {
	t.Helper()
	resp, err := f.svc.Submit(context.Background(), correction.SubmitCorrectionRequest{
		EmployeeID:        "emp-1",
		EmployeeCode:      "E001",
		CorrectionDate:    "2025-08-04",
		RequestedPunchIn:  in,
		RequestedPunchOut: out,
		Reason:            "forgot to punch",
	})
	require.NoError(t, err)
	return resp
}

func TestSubmit_ConvertsLocalTimesToUTC(t *testing.T) {
	f := newFixture(t)

	resp := f.submit(t, strPtr("09:30"), strPtr("18:15:30"))

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2025-08-04", resp.CorrectionDate)
	require.NotNil(t, resp.RequestedPunchIn)
	require.NotNil(t, resp.RequestedPunchOut)
	assert.Equal(t, time.Date(2025, 8, 4, 4, 0, 0, 0, time.UTC), *resp.RequestedPunchIn)
	assert.Equal(t, time.Date(2025, 8, 4, 12, 45, 30, 0, time.UTC), *resp.RequestedPunchOut)
	assert.Nil(t, resp.OriginalPunchIn)
	assert.Nil(t, resp.OriginalPunchOut)
}

func TestSubmit_SnapshotsOriginals(t *testing.T) {
	f := newFixture(t)
	in := time.Date(2025, 8, 4, 3, 30, 0, 0, time.UTC)
	f.seedRecord(t, &in, nil)

	resp := f.submit(t, nil, strPtr("18:00"))

	require.NotNil(t, resp.OriginalPunchIn)
	assert.True(t, resp.OriginalPunchIn.Equal(in))
	assert.Nil(t, resp.OriginalPunchOut)
	assert.Nil(t, resp.RequestedPunchIn)
}

func TestSubmit_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   correction.SubmitCorrectionRequest
		field string
	}{
		{"missing date", correction.SubmitCorrectionRequest{EmployeeID: "emp-1", RequestedPunchIn: strPtr("09:00"), Reason: "x"}, "correction_date"},
		{"missing reason", correction.SubmitCorrectionRequest{EmployeeID: "emp-1", CorrectionDate: "2025-08-04", RequestedPunchIn: strPtr("09:00")}, "reason"},
		{"no times", correction.SubmitCorrectionRequest{EmployeeID: "emp-1", CorrectionDate: "2025-08-04", Reason: "x"}, "requested_punch_in"},
		{"blank times", correction.SubmitCorrectionRequest{EmployeeID: "emp-1", CorrectionDate: "2025-08-04", RequestedPunchIn: strPtr(" "), Reason: "x"}, "requested_punch_in"},
		{"bad clock", correction.SubmitCorrectionRequest{EmployeeID: "emp-1", CorrectionDate: "2025-08-04", RequestedPunchOut: strPtr("25:99"), Reason: "x"}, "requested_punch_out"},
		{"bad date", correction.SubmitCorrectionRequest{EmployeeID: "emp-1", CorrectionDate: "04/08/2025", RequestedPunchIn: strPtr("09:00"), Reason: "x"}, "correction_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Submit(ctx, tt.req)
			require.ErrorIs(t, err, validator.ErrInvalidInput)

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}

	list, err := f.svc.List(ctx, correction.CorrectionFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSubmit_PublishesToAdmins(t *testing.T) {
	f := newFixture(t)
	events, cleanup := f.hub.Subscribe(sse.AdminChannel)
	defer cleanup()

	resp := f.submit(t, strPtr("09:00"), nil)

	select {
	case ev := <-events:
		assert.Equal(t, sse.EventCorrectionSubmitted, ev.Name)
		assert.Equal(t, resp.ID, ev.Data.(correction.CorrectionResponse).ID)
	case <-time.After(time.Second):
		t.Fatal("no event published")
	}
}

func TestList_NewestFirstAndFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.submit(t, strPtr("09:00"), nil)
	f.clock.Advance(time.Minute)
	second := f.submit(t, nil, strPtr("18:00"))

	_, err := f.svc.Submit(ctx, correction.SubmitCorrectionRequest{
		EmployeeID: "emp-2", EmployeeCode: "E002", CorrectionDate: "2025-08-04", RequestedPunchIn: strPtr("09:00"), Reason: "late bus",
	})
	require.NoError(t, err)

	mine, err := f.svc.List(ctx, correction.CorrectionFilter{EmployeeID: strPtr("emp-1")})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	_, err = f.svc.Review(ctx, correction.ReviewCorrectionRequest{ID: first.ID, Status: "rejected", ReviewerID: "admin-1"})
	require.NoError(t, err)

	pending, err := f.svc.List(ctx, correction.CorrectionFilter{Status: strPtr("PENDING")})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	_, err = f.svc.List(ctx, correction.CorrectionFilter{Status: strPtr("done")})
	assert.ErrorIs(t, err, validator.ErrInvalidInput)
}

func TestReview_ApproveOnlyPunchInOverwritesPunchIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := time.Date(2025, 8, 4, 5, 0, 0, 0, time.UTC)
	out := time.Date(2025, 8, 4, 13, 0, 0, 0, time.UTC)
	seeded := f.seedRecord(t, &in, &out)

	req := f.submit(t, strPtr("09:00"), nil)

	resp, err := f.svc.Review(ctx, correction.ReviewCorrectionRequest{ID: req.ID, Status: "approved", AdminComment: strPtr("ok"), ReviewerID: "admin-1"})
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.ReviewedBy)
	assert.Equal(t, "admin-1", *resp.ReviewedBy)
	require.NotNil(t, resp.ReviewedAt)

	got, err := f.attendances.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PunchIn)
	assert.True(t, got.PunchIn.Equal(time.Date(2025, 8, 4, 3, 30, 0, 0, time.UTC)))
	require.NotNil(t, got.PunchOut)
	assert.True(t, got.PunchOut.Equal(out))
	assert.Equal(t, seeded.SourceIP, got.SourceIP)
	assert.Equal(t, seeded.PhotoRef, got.PhotoRef)
}

func TestReview_ApproveCreatesMissingRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.submit(t, strPtr("09:00"), strPtr("09:20"))

	_, err := f.svc.Review(ctx, correction.ReviewCorrectionRequest{ID: req.ID, Status: "approved", ReviewerID: "admin-1"})
	require.NoError(t, err)

	got, err := f.attendances.GetByEmployeeAndDate(ctx, "emp-1", day)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "E001", got.EmployeeCode)
	assert.True(t, got.IsComplete(), "twenty minute day bypasses the punch minimum")
	assert.Empty(t, got.SourceIP)
	assert.Empty(t, got.PhotoRef)
}

func TestReview_RejectLeavesRecordUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := time.Date(2025, 8, 4, 5, 0, 0, 0, time.UTC)
	seeded := f.seedRecord(t, &in, nil)
	req := f.submit(t, strPtr("09:00"), strPtr("18:00"))

	resp, err := f.svc.Review(ctx, correction.ReviewCorrectionRequest{ID: req.ID, Status: "rejected", AdminComment: strPtr("no evidence"), ReviewerID: "admin-1"})
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)

	got, err := f.attendances.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.True(t, got.PunchIn.Equal(in))
	assert.Nil(t, got.PunchOut)
}

func TestReview_SecondReviewFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.submit(t, strPtr("09:00"), nil)

	_, err := f.svc.Review(ctx, correction.ReviewCorrectionRequest{ID: req.ID, Status: "approved", AdminComment: strPtr("first"), ReviewerID: "admin-1"})
	require.NoError(t, err)

	_, err = f.svc.Review(ctx, correction.ReviewCorrectionRequest{ID: req.ID, Status: "rejected", AdminComment: strPtr("second"), ReviewerID: "admin-2"})
	assert.ErrorIs(t, err, correction.ErrAlreadyReviewed)

	list, err := f.svc.List(ctx, correction.CorrectionFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "approved", list[0].Status)
	require.NotNil(t, list[0].AdminComment)
	assert.Equal(t, "first", *list[0].AdminComment)
	assert.Equal(t, "admin-1", *list[0].ReviewedBy)
}

func TestSubmit_StoreUnavailable(t *testing.T) {
	f := newFixture(t)
	f.store.SetUnavailable(errors.New("connection refused"))

	_, err := f.svc.Submit(context.Background(), correction.SubmitCorrectionRequest{
		EmployeeID: "emp-1", EmployeeCode: "E001", CorrectionDate: "2025-08-04", RequestedPunchIn: strPtr("09:00"), Reason: "x",
	})
	assert.ErrorIs(t, err, database.ErrStoreUnavailable)
}

func TestReview_InvalidStatusAndMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.submit(t, strPtr("09:00"), nil)

	_, err := f.svc.Review(ctx, correction.ReviewCorrectionRequest{ID: req.ID, Status: "pending", ReviewerID: "admin-1"})
	assert.ErrorIs(t, err, validator.ErrInvalidInput)

	_, err = f.svc.Review(ctx, correction.ReviewCorrectionRequest{ID: "nope", Status: "approved", ReviewerID: "admin-1"})
	assert.ErrorIs(t, err, correction.ErrCorrectionNotFound)
}

func TestReview_FailureRollsBackStatus(t *testing.T) {
	f := newFixtureWith(t, func(r attendance.AttendanceRepository) attendance.AttendanceRepository {
		return lockFailingRepository{AttendanceRepository: r}
	})
	ctx := context.Background()
	req := f.submit(t, strPtr("09:00"), nil)

	_, err := f.svc.Review(ctx, correction.ReviewCorrectionRequest{ID: req.ID, Status: "approved", ReviewerID: "admin-1"})
	assert.ErrorIs(t, err, database.ErrStoreUnavailable)

	list, err := f.svc.List(ctx, correction.CorrectionFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "pending", list[0].Status)
}

func TestReview_PublishesToEmployee(t *testing.T) {
	f := newFixture(t)
	events, cleanup := f.hub.Subscribe("emp-1")
	defer cleanup()

	req := f.submit(t, strPtr("09:00"), nil)
	_, err := f.svc.Review(context.Background(), correction.ReviewCorrectionRequest{ID: req.ID, Status: "rejected", ReviewerID: "admin-1"})
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, sse.EventCorrectionReviewed, ev.Name)
	case <-time.After(time.Second):
		t.Fatal("no event published")
	}
}
