package employee

import "context"

// Directory resolves employees for the attendance core.
type Directory interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	LookupByCode(ctx context.Context, employeeCode string) (Employee, error)
	Count(ctx context.Context) (int64, error)
}
