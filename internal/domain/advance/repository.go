package advance

import (
	"context"

	"github.com/shopspring/decimal"
)

// AdvanceRepository reads and settles salary advances.
type AdvanceRepository interface {
	// GetActive returns all active advances keyed by employee id.
	GetActive(ctx context.Context) (map[string][]Record, error)
	// GetActiveByEmployee returns one employee's active advances.
	GetActiveByEmployee(ctx context.Context, employeeID string) ([]Record, error)
	// ApplyRecovery reduces the remaining balance by amount and closes the
	// advance when the balance reaches zero. Called when a payroll record
	// is marked paid, not during computation.
	ApplyRecovery(ctx context.Context, id string, amount decimal.Decimal) error
}
