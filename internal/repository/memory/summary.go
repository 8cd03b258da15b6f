package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/summary"
)

type summaryRepositoryImpl struct {
	*Store
}

func NewSummaryRepository(s *Store) summary.SummaryRepository {
	return &summaryRepositoryImpl{Store: s}
}

type groupKey struct {
	code  string
	year  int
	month time.Month
}

func (r *summaryRepositoryImpl) AggregatePresentDays(ctx context.Context, loc *time.Location, filter summary.SummaryFilter) ([]summary.PresentDayGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("aggregate present days"); err != nil {
		return nil, err
	}

	counts := make(map[groupKey]int)
	for _, a := range r.attendances {
		if !a.IsComplete() {
			continue
		}
		local := a.PunchIn.In(loc)
		if filter.HasMonth && (local.Year() != filter.Year || local.Month() != filter.MonthNum) {
			continue
		}
		counts[groupKey{code: a.EmployeeCode, year: local.Year(), month: local.Month()}]++
	}

	groups := make([]summary.PresentDayGroup, 0, len(counts))
	for k, n := range counts {
		groups = append(groups, summary.PresentDayGroup{
			EmployeeCode: k.code,
			Year:         k.year,
			Month:        k.month,
			PresentDays:  n,
		})
	}
	return groups, nil
}

func (r *summaryRepositoryImpl) ListOverrides(ctx context.Context, month *string) ([]summary.Override, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("list summary overrides"); err != nil {
		return nil, err
	}

	result := make([]summary.Override, 0, len(r.overrides))
	for _, o := range r.overrides {
		if month != nil && o.Month != *month {
			continue
		}
		result = append(result, o)
	}
	return result, nil
}

func (r *summaryRepositoryImpl) UpsertOverride(ctx context.Context, o summary.Override) (summary.Override, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("upsert summary override"); err != nil {
		return summary.Override{}, err
	}

	key := overrideKey{employeeID: o.EmployeeID, month: o.Month}
	old, existed := r.overrides[key]

	o.UpdatedAt = r.clock.Now()
	r.overrides[key] = o

	r.onRollback(ctx, func() {
		if existed {
			r.overrides[key] = old
		} else {
			delete(r.overrides, key)
		}
	})
	return o, nil
}
