package correction

import "context"

type CorrectionRepository interface {
	Create(ctx context.Context, req CorrectionRequest) (CorrectionRequest, error)

	// GetByIDForUpdate locks the row until the surrounding transaction ends
	GetByIDForUpdate(ctx context.Context, id string) (CorrectionRequest, error)

	// UpdateReview persists status, admin comment, reviewer and review time
	UpdateReview(ctx context.Context, req CorrectionRequest) error

	// List returns requests newest first
	List(ctx context.Context, filter CorrectionFilter) ([]CorrectionRequest, error)

	CountPending(ctx context.Context) (int64, error)
}
