package memory

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
)

type employeeRepositoryImpl struct {
	*Store
}

func NewEmployeeRepository(s *Store) employee.Directory {
	return &employeeRepositoryImpl{Store: s}
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("get employee"); err != nil {
		return employee.Employee{}, err
	}

	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepositoryImpl) LookupByCode(ctx context.Context, employeeCode string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("lookup employee by code"); err != nil {
		return employee.Employee{}, err
	}

	for _, e := range r.employees {
		if e.EmployeeCode == employeeCode {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *employeeRepositoryImpl) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("count employees"); err != nil {
		return 0, err
	}
	return int64(len(r.employees)), nil
}
