package correction

import "time"

type CorrectionStatus string

const (
	StatusPending  CorrectionStatus = "pending"
	StatusApproved CorrectionStatus = "approved"
	StatusRejected CorrectionStatus = "rejected"
)

func (s CorrectionStatus) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// IsDecision reports a status an administrator may set.
func (s CorrectionStatus) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

// CorrectionRequest asks an administrator to overwrite one day's punch times.
// Requested times are UTC; originals are snapshots taken at submission.
type CorrectionRequest struct {
	ID                string
	EmployeeID        string
	EmployeeCode      string
	CorrectionDate    time.Time // UTC midnight of the local day
	OriginalPunchIn   *time.Time
	OriginalPunchOut  *time.Time
	RequestedPunchIn  *time.Time
	RequestedPunchOut *time.Time
	Reason            string
	Status            CorrectionStatus
	AdminComment      *string
	ReviewedBy        *string
	ReviewedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (c CorrectionRequest) IsPending() bool {
	return c.Status == StatusPending
}
