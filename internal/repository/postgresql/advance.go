package postgresql

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/advance"
	"github.com/teamtrack-hq/teamtrack-backend/internal/pkg/database"
)

type advanceRepository struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.AdvanceRepository {
	return &advanceRepository{db: db}
}

const advanceColumns = `
	id, employee_id, installment_amount, remaining_balance,
	recovery_start_month, status, created_at, updated_at
`

func (r *advanceRepository) GetActive(ctx context.Context) (map[string][]advance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + advanceColumns + `
		FROM advance_records
		WHERE status = 'active'
		ORDER BY employee_id, created_at
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active advances: %w", err)
	}
	defer rows.Close()

	advances := make(map[string][]advance.Record)
	for rows.Next() {
		var rec advance.Record
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.InstallmentAmount, &rec.RemainingBalance,
			&rec.RecoveryStartMonth, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan advance record: %w", err)
		}
		advances[rec.EmployeeID] = append(advances[rec.EmployeeID], rec)
	}

	return advances, nil
}

func (r *advanceRepository) GetActiveByEmployee(ctx context.Context, employeeID string) ([]advance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + advanceColumns + `
		FROM advance_records
		WHERE employee_id = $1 AND status = 'active'
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	var advances []advance.Record
	for rows.Next() {
		var rec advance.Record
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.InstallmentAmount, &rec.RemainingBalance,
			&rec.RecoveryStartMonth, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan advance record: %w", err)
		}
		advances = append(advances, rec)
	}

	return advances, nil
}

func (r *advanceRepository) ApplyRecovery(ctx context.Context, id string, amount decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	// The balance floor and auto-close keep the advance consistent even if
	// two paid runs race on the same row.
	query := `
		UPDATE advance_records
		SET remaining_balance = GREATEST(remaining_balance - $2, 0),
			status = CASE WHEN remaining_balance - $2 <= 0 THEN 'closed' ELSE status END,
			updated_at = NOW()
		WHERE id = $1 AND status = 'active'
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id, amount).Scan(&updatedID); err != nil {
		return fmt.Errorf("failed to apply advance recovery: %w", err)
	}

	return nil
}
