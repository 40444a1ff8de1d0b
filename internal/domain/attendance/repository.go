package attendance

import "context"

// AttendanceRepository is the read-only view the payroll engine has over
// attendance capture.
type AttendanceRepository interface {
	// GetByMonth returns all records dated within the month (YYYY-MM),
	// ordered by employee then date ascending.
	GetByMonth(ctx context.Context, month string) ([]Record, error)
	// GetByEmployeeMonth returns the records of one employee within the
	// month, ordered by date ascending.
	GetByEmployeeMonth(ctx context.Context, employeeID, month string) ([]Record, error)
}
