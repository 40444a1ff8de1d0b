package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/policy"
	"github.com/teamtrack-hq/teamtrack-backend/internal/pkg/database"
)

type policyRepository struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) policy.PolicyRepository {
	return &policyRepository{db: db}
}

// Each statutory field is stored as a (mode, value) pair so the
// percentage-or-fixed exclusivity lives in the schema, not in nullable
// sibling columns.
const policyColumns = `
	id, employee_id, basic, hra, travel, children_education,
	fixed_incentive, employer_incentive,
	employee_pf_mode, employee_pf_value,
	employer_pf_mode, employer_pf_value,
	esi_mode, esi_value,
	lwf_mode, lwf_value,
	ex_gratia_mode, ex_gratia_value,
	late_penalty_per_minute, is_active, created_at, updated_at
`

func scanPolicy(row pgx.Row) (policy.CompensationPolicy, error) {
	var p policy.CompensationPolicy
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Basic, &p.HRA, &p.Travel, &p.ChildrenEducation,
		&p.FixedIncentive, &p.EmployerIncentive,
		&p.EmployeePF.Mode, &p.EmployeePF.Value,
		&p.EmployerPF.Mode, &p.EmployerPF.Value,
		&p.ESI.Mode, &p.ESI.Value,
		&p.LWF.Mode, &p.LWF.Value,
		&p.ExGratia.Mode, &p.ExGratia.Value,
		&p.LatePenaltyPerMinute, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *policyRepository) GetActive(ctx context.Context) (map[string]policy.CompensationPolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + policyColumns + `
		FROM compensation_policies
		WHERE is_active = true
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active policies: %w", err)
	}
	defer rows.Close()

	policies := make(map[string]policy.CompensationPolicy)
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan policy: %w", err)
		}
		policies[p.EmployeeID] = p
	}

	return policies, nil
}

func (r *policyRepository) GetActiveByEmployee(ctx context.Context, employeeID string) (policy.CompensationPolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + policyColumns + `
		FROM compensation_policies
		WHERE employee_id = $1 AND is_active = true
	`

	p, err := scanPolicy(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return policy.CompensationPolicy{}, policy.ErrPolicyNotFound
		}
		return policy.CompensationPolicy{}, fmt.Errorf("failed to get policy: %w", err)
	}

	return p, nil
}
