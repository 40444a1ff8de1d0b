package policy

import "context"

// PolicyRepository reads compensation policies owned by the HR subsystem.
type PolicyRepository interface {
	// GetActive returns active policies keyed by employee id. Employees
	// without an active policy are simply absent from the map.
	GetActive(ctx context.Context) (map[string]CompensationPolicy, error)
	// GetActiveByEmployee returns the active policy for one employee, or
	// ErrPolicyNotFound.
	GetActiveByEmployee(ctx context.Context, employeeID string) (CompensationPolicy, error)
}
