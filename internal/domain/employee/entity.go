package employee

import "time"

// Employee is the directory view the attendance core reads; it never writes employees.
type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
