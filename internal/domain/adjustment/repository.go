package adjustment

import "context"

// AdjustmentRepository reads adjustment records owned by the approvals flow.
type AdjustmentRepository interface {
	// GetByMonth returns all records for the month keyed by employee id.
	GetByMonth(ctx context.Context, month string) (map[string][]Record, error)
}
