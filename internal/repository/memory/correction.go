package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/correction"
	"github.com/google/uuid"
)

type correctionRepositoryImpl struct {
	*Store
}

func NewCorrectionRepository(s *Store) correction.CorrectionRepository {
	return &correctionRepositoryImpl{Store: s}
}

func (r *correctionRepositoryImpl) Create(ctx context.Context, req correction.CorrectionRequest) (correction.CorrectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("create correction request"); err != nil {
		return correction.CorrectionRequest{}, err
	}

	now := r.clock.Now()
	req.ID = uuid.Must(uuid.NewV7()).String()
	req.CreatedAt = now
	req.UpdatedAt = now
	r.corrections[req.ID] = req
	r.order[req.ID] = r.nextSeq()

	id := req.ID
	r.onRollback(ctx, func() {
		delete(r.corrections, id)
		delete(r.order, id)
	})

	return req, nil
}

func (r *correctionRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (correction.CorrectionRequest, error) {
	r.mu.Lock()
	err := r.check("get correction request")
	r.mu.Unlock()
	if err != nil {
		return correction.CorrectionRequest{}, err
	}

	if err := r.lock(ctx, "correction:"+id); err != nil {
		return correction.CorrectionRequest{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.corrections[id]
	if !ok {
		return correction.CorrectionRequest{}, correction.ErrCorrectionNotFound
	}
	return req, nil
}

func (r *correctionRepositoryImpl) UpdateReview(ctx context.Context, req correction.CorrectionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("update correction review"); err != nil {
		return err
	}

	old, ok := r.corrections[req.ID]
	if !ok {
		return correction.ErrCorrectionNotFound
	}

	updated := old
	updated.Status = req.Status
	updated.AdminComment = req.AdminComment
	updated.ReviewedBy = req.ReviewedBy
	updated.ReviewedAt = req.ReviewedAt
	updated.UpdatedAt = r.clock.Now()
	r.corrections[req.ID] = updated

	r.onRollback(ctx, func() { r.corrections[old.ID] = old })
	return nil
}

func (r *correctionRepositoryImpl) List(ctx context.Context, filter correction.CorrectionFilter) ([]correction.CorrectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("list correction requests"); err != nil {
		return nil, err
	}

	result := make([]correction.CorrectionRequest, 0)
	for _, c := range r.corrections {
		if filter.EmployeeID != nil && *filter.EmployeeID != "" && c.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && *filter.Status != "" && string(c.Status) != *filter.Status {
			continue
		}
		result = append(result, c)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return r.order[result[i].ID] > r.order[result[j].ID]
	})
	return result, nil
}

func (r *correctionRepositoryImpl) CountPending(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("count pending corrections"); err != nil {
		return 0, err
	}

	var n int64
	for _, c := range r.corrections {
		if c.IsPending() {
			n++
		}
	}
	return n, nil
}
