package employee

import "context"

// EmployeeRepository is the read-only employee directory.
type EmployeeRepository interface {
	GetActive(ctx context.Context) ([]Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
}
