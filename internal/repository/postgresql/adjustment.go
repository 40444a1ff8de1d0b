package postgresql

import (
	"context"
	"fmt"

	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/adjustment"
	"github.com/teamtrack-hq/teamtrack-backend/internal/pkg/database"
)

type adjustmentRepository struct {
	db *database.DB
}

func NewAdjustmentRepository(db *database.DB) adjustment.AdjustmentRepository {
	return &adjustmentRepository{db: db}
}

func (r *adjustmentRepository) GetByMonth(ctx context.Context, month string) (map[string][]adjustment.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, month, type, amount, status,
			   to_char(date, 'YYYY-MM-DD'), reason, created_at, updated_at
		FROM adjustment_records
		WHERE month = $1
		ORDER BY employee_id, date
	`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	defer rows.Close()

	adjustments := make(map[string][]adjustment.Record)
	for rows.Next() {
		var rec adjustment.Record
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Month, &rec.Type, &rec.Amount, &rec.Status,
			&rec.Date, &rec.Reason, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan adjustment record: %w", err)
		}
		adjustments[rec.EmployeeID] = append(adjustments[rec.EmployeeID], rec)
	}

	return adjustments, nil
}
