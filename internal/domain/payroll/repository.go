package payroll

import "context"

// PayrollRepository persists computed payroll records. Upsert honors the
// per-record lock: a locked row is never overwritten.
type PayrollRepository interface {
	// Upsert creates or updates the record for (employee, month) and
	// reports which effect took place. When the existing row is locked it
	// returns the stored row untouched with ActionSkippedLocked.
	Upsert(ctx context.Context, record PayrollRecord) (PayrollRecord, Action, error)

	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	GetByEmployeeMonth(ctx context.Context, employeeID, month string) (PayrollRecord, error)
	List(ctx context.Context, filter ListFilter) ([]PayrollRecord, int64, error)

	// SetLocked flips the lock flag. Locking also moves draft records to
	// the locked status; unlocking returns them to draft.
	SetLocked(ctx context.Context, id string, locked bool) (PayrollRecord, error)
	// Approve moves a locked record to approved.
	Approve(ctx context.Context, id string) (PayrollRecord, error)
	// MarkPaid moves an approved record to paid.
	MarkPaid(ctx context.Context, id string) (PayrollRecord, error)

	GetSummary(ctx context.Context, month string) (SummaryResponse, error)
}
