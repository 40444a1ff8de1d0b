package payroll

import "context"

// PayrollService is the single authoritative payroll computation engine.
// Both the HTTP handler and the scheduled run call the same implementation;
// all inputs are explicit and the computation itself is pure.
type PayrollService interface {
	// Compute derives each employee's salary for the month and upserts the
	// results. A per-employee failure is reported in its result entry and
	// does not abort the rest of the batch.
	Compute(ctx context.Context, req ComputeRequest) (ComputeResponse, error)

	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	ListRecords(ctx context.Context, filter ListFilter) (ListResponse, error)
	GetSummary(ctx context.Context, month string) (SummaryResponse, error)

	// Workflow actions, external to the computation.
	SetLocked(ctx context.Context, id string, locked bool, actor string) (RecordResponse, error)
	Approve(ctx context.Context, id string, actor string) (RecordResponse, error)
	// MarkPaid finalizes the record and applies the month's advance
	// recovery to the outstanding advance balances.
	MarkPaid(ctx context.Context, id string, actor string) (RecordResponse, error)
}
