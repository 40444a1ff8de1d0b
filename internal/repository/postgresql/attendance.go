package postgresql

import (
	"context"
	"fmt"

	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/attendance"
	"github.com/teamtrack-hq/teamtrack-backend/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, to_char(date, 'YYYY-MM-DD'), status, check_in, check_out,
	is_late, late_minutes, is_early_checkout, created_at, updated_at
`

func (r *attendanceRepository) GetByMonth(ctx context.Context, month string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE to_char(date, 'YYYY-MM') = $1
		ORDER BY employee_id, date
	`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for month: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.Status, &rec.CheckIn, &rec.CheckOut,
			&rec.IsLate, &rec.LateMinutes, &rec.IsEarlyCheckout, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (r *attendanceRepository) GetByEmployeeMonth(ctx context.Context, employeeID, month string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND to_char(date, 'YYYY-MM') = $2
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for employee: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.Status, &rec.CheckIn, &rec.CheckOut,
			&rec.IsLate, &rec.LateMinutes, &rec.IsEarlyCheckout, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}
