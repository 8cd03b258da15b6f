package correction

import "context"

type CorrectionService interface {
	// Submit snapshots the day's current punches and files a pending request
	Submit(ctx context.Context, req SubmitCorrectionRequest) (CorrectionResponse, error)

	// List returns requests newest first, employees are restricted to their own by the caller
	List(ctx context.Context, filter CorrectionFilter) ([]CorrectionResponse, error)

	// Review approves or rejects a pending request; approval overwrites the requested punch fields
	Review(ctx context.Context, req ReviewCorrectionRequest) (CorrectionResponse, error)
}
