package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/payroll"
	"github.com/teamtrack-hq/teamtrack-backend/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	pr.id, pr.employee_id, pr.month, pr.has_policy,
	pr.days_in_month, pr.present_days, pr.absent_days, pr.unpaid_absent_days,
	pr.half_days, pr.paid_leave_days, pr.weekoff_days, pr.holiday_days,
	pr.late_count, pr.early_checkout_count, pr.not_marked_days, pr.paid_days,
	pr.earned_basic, pr.earned_hra, pr.earned_travel, pr.earned_children_education,
	pr.earned_fixed_incentive, pr.employer_incentive, pr.base_salary,
	pr.employee_pf, pr.employer_pf, pr.esi, pr.lwf, pr.ex_gratia,
	pr.late_penalty, pr.absent_deduction, pr.timesheet_penalty,
	pr.attendance_adjustments, pr.timing_notes,
	pr.adjustment_additions, pr.adjustment_deductions, pr.advance_recovery,
	pr.net_salary, pr.ctc, pr.status, pr.locked, pr.created_at, pr.updated_at,
	e.full_name
`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	var timingNotes []byte

	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Month, &rec.HasPolicy,
		&rec.DaysInMonth, &rec.PresentDays, &rec.AbsentDays, &rec.UnpaidAbsentDays,
		&rec.HalfDays, &rec.PaidLeaveDays, &rec.WeekoffDays, &rec.HolidayDays,
		&rec.LateCount, &rec.EarlyCheckoutCount, &rec.NotMarkedDays, &rec.PaidDays,
		&rec.EarnedBasic, &rec.EarnedHRA, &rec.EarnedTravel, &rec.EarnedChildrenEducation,
		&rec.EarnedFixedIncentive, &rec.EmployerIncentive, &rec.BaseSalary,
		&rec.EmployeePF, &rec.EmployerPF, &rec.ESI, &rec.LWF, &rec.ExGratia,
		&rec.LatePenalty, &rec.AbsentDeduction, &rec.TimesheetPenalty,
		&rec.AttendanceAdjustments, &timingNotes,
		&rec.AdjustmentAdditions, &rec.AdjustmentDeductions, &rec.AdvanceRecovery,
		&rec.NetSalary, &rec.CTC, &rec.Status, &rec.Locked, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName,
	)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	if len(timingNotes) > 0 {
		if err := json.Unmarshal(timingNotes, &rec.TimingNotes); err != nil {
			return payroll.PayrollRecord{}, fmt.Errorf("failed to decode timing notes: %w", err)
		}
	}

	return rec, nil
}

// ========== UPSERT ==========

func (r *payrollRepository) Upsert(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, payroll.Action, error) {
	var result payroll.PayrollRecord
	var action payroll.Action

	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		// Lock the target row for the duration of the transaction so the
		// lock check and the write see the same state.
		var existingID string
		var locked bool
		err := q.QueryRow(txCtx, `
			SELECT id, locked FROM payroll_records
			WHERE employee_id = $1 AND month = $2
			FOR UPDATE
		`, record.EmployeeID, record.Month).Scan(&existingID, &locked)

		switch {
		case err == pgx.ErrNoRows:
			action = payroll.ActionCreated
		case err != nil:
			return fmt.Errorf("failed to check existing payroll record: %w", err)
		case locked:
			stored, err := r.getByID(txCtx, existingID)
			if err != nil {
				return err
			}
			result = stored
			action = payroll.ActionSkippedLocked
			return nil
		default:
			action = payroll.ActionUpdated
		}

		timingNotes, err := json.Marshal(record.TimingNotes)
		if err != nil {
			return fmt.Errorf("failed to encode timing notes: %w", err)
		}
		if record.TimingNotes == nil {
			timingNotes = []byte("[]")
		}

		query := `
			INSERT INTO payroll_records (
				id, employee_id, month, has_policy,
				days_in_month, present_days, absent_days, unpaid_absent_days,
				half_days, paid_leave_days, weekoff_days, holiday_days,
				late_count, early_checkout_count, not_marked_days, paid_days,
				earned_basic, earned_hra, earned_travel, earned_children_education,
				earned_fixed_incentive, employer_incentive, base_salary,
				employee_pf, employer_pf, esi, lwf, ex_gratia,
				late_penalty, absent_deduction, timesheet_penalty,
				attendance_adjustments, timing_notes,
				adjustment_additions, adjustment_deductions, advance_recovery,
				net_salary, ctc, status, locked
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
				$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
				$21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
				$31, $32, $33, $34, $35, $36, $37, $38, 'draft', false
			)
			ON CONFLICT (employee_id, month) DO UPDATE SET
				has_policy = EXCLUDED.has_policy,
				days_in_month = EXCLUDED.days_in_month,
				present_days = EXCLUDED.present_days,
				absent_days = EXCLUDED.absent_days,
				unpaid_absent_days = EXCLUDED.unpaid_absent_days,
				half_days = EXCLUDED.half_days,
				paid_leave_days = EXCLUDED.paid_leave_days,
				weekoff_days = EXCLUDED.weekoff_days,
				holiday_days = EXCLUDED.holiday_days,
				late_count = EXCLUDED.late_count,
				early_checkout_count = EXCLUDED.early_checkout_count,
				not_marked_days = EXCLUDED.not_marked_days,
				paid_days = EXCLUDED.paid_days,
				earned_basic = EXCLUDED.earned_basic,
				earned_hra = EXCLUDED.earned_hra,
				earned_travel = EXCLUDED.earned_travel,
				earned_children_education = EXCLUDED.earned_children_education,
				earned_fixed_incentive = EXCLUDED.earned_fixed_incentive,
				employer_incentive = EXCLUDED.employer_incentive,
				base_salary = EXCLUDED.base_salary,
				employee_pf = EXCLUDED.employee_pf,
				employer_pf = EXCLUDED.employer_pf,
				esi = EXCLUDED.esi,
				lwf = EXCLUDED.lwf,
				ex_gratia = EXCLUDED.ex_gratia,
				late_penalty = EXCLUDED.late_penalty,
				absent_deduction = EXCLUDED.absent_deduction,
				timesheet_penalty = EXCLUDED.timesheet_penalty,
				attendance_adjustments = EXCLUDED.attendance_adjustments,
				timing_notes = EXCLUDED.timing_notes,
				adjustment_additions = EXCLUDED.adjustment_additions,
				adjustment_deductions = EXCLUDED.adjustment_deductions,
				advance_recovery = EXCLUDED.advance_recovery,
				net_salary = EXCLUDED.net_salary,
				ctc = EXCLUDED.ctc,
				status = 'draft',
				updated_at = NOW()
			WHERE payroll_records.locked = false
			RETURNING id
		`

		var id string
		err = q.QueryRow(txCtx, query,
			uuid.New().String(), record.EmployeeID, record.Month, record.HasPolicy,
			record.DaysInMonth, record.PresentDays, record.AbsentDays, record.UnpaidAbsentDays,
			record.HalfDays, record.PaidLeaveDays, record.WeekoffDays, record.HolidayDays,
			record.LateCount, record.EarlyCheckoutCount, record.NotMarkedDays, record.PaidDays,
			record.EarnedBasic, record.EarnedHRA, record.EarnedTravel, record.EarnedChildrenEducation,
			record.EarnedFixedIncentive, record.EmployerIncentive, record.BaseSalary,
			record.EmployeePF, record.EmployerPF, record.ESI, record.LWF, record.ExGratia,
			record.LatePenalty, record.AbsentDeduction, record.TimesheetPenalty,
			record.AttendanceAdjustments, timingNotes,
			record.AdjustmentAdditions, record.AdjustmentDeductions, record.AdvanceRecovery,
			record.NetSalary, record.CTC,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to upsert payroll record: %w", err)
		}

		stored, err := r.getByID(txCtx, id)
		if err != nil {
			return err
		}
		result = stored
		return nil
	})
	if err != nil {
		return payroll.PayrollRecord{}, "", err
	}

	return result, action, nil
}

// ========== READS ==========

func (r *payrollRepository) getByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_records pr
		JOIN employees e ON e.id = pr.employee_id
		WHERE pr.id = $1
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	return r.getByID(ctx, id)
}

func (r *payrollRepository) GetByEmployeeMonth(ctx context.Context, employeeID, month string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_records pr
		JOIN employees e ON e.id = pr.employee_id
		WHERE pr.employee_id = $1 AND pr.month = $2
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.ListFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []any{}
	argNum := 1

	if filter.Month != nil {
		whereClause += fmt.Sprintf(" AND pr.month = $%d", argNum)
		args = append(args, *filter.Month)
		argNum++
	}
	if filter.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND pr.employee_id = $%d", argNum)
		args = append(args, *filter.EmployeeID)
		argNum++
	}
	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND pr.status = $%d", argNum)
		args = append(args, *filter.Status)
		argNum++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM payroll_records pr
		JOIN employees e ON e.id = pr.employee_id
	` + whereClause

	var totalCount int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_records pr
		JOIN employees e ON e.id = pr.employee_id
	` + whereClause + fmt.Sprintf(`
		ORDER BY pr.month DESC, e.full_name
		LIMIT $%d OFFSET $%d
	`, argNum, argNum+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, totalCount, nil
}

// ========== WORKFLOW TRANSITIONS ==========

func (r *payrollRepository) SetLocked(ctx context.Context, id string, locked bool) (payroll.PayrollRecord, error) {
	return r.transition(ctx, id, func(rec payroll.PayrollRecord) (string, error) {
		if locked {
			if rec.Status != payroll.StatusDraft && rec.Status != payroll.StatusLocked {
				return "", payroll.ErrInvalidStatusChange
			}
			return `
				UPDATE payroll_records
				SET locked = true, status = 'locked', updated_at = NOW()
				WHERE id = $1
			`, nil
		}
		if rec.Status == payroll.StatusPaid {
			return "", payroll.ErrRecordAlreadyPaid
		}
		return `
			UPDATE payroll_records
			SET locked = false, status = 'draft', updated_at = NOW()
			WHERE id = $1
		`, nil
	})
}

func (r *payrollRepository) Approve(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	return r.transition(ctx, id, func(rec payroll.PayrollRecord) (string, error) {
		if rec.Status != payroll.StatusLocked {
			return "", payroll.ErrInvalidStatusChange
		}
		return `
			UPDATE payroll_records
			SET status = 'approved', updated_at = NOW()
			WHERE id = $1
		`, nil
	})
}

func (r *payrollRepository) MarkPaid(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	return r.transition(ctx, id, func(rec payroll.PayrollRecord) (string, error) {
		if rec.Status == payroll.StatusPaid {
			return "", payroll.ErrRecordAlreadyPaid
		}
		if rec.Status != payroll.StatusApproved {
			return "", payroll.ErrInvalidStatusChange
		}
		return `
			UPDATE payroll_records
			SET status = 'paid', updated_at = NOW()
			WHERE id = $1
		`, nil
	})
}

// transition runs a guarded status update. The guard sees the row under
// FOR UPDATE so concurrent transitions serialize instead of racing.
func (r *payrollRepository) transition(ctx context.Context, id string, guard func(payroll.PayrollRecord) (string, error)) (payroll.PayrollRecord, error) {
	var result payroll.PayrollRecord

	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		lockQuery := `
			SELECT ` + payrollColumns + `
			FROM payroll_records pr
			JOIN employees e ON e.id = pr.employee_id
			WHERE pr.id = $1
			FOR UPDATE OF pr
		`
		rec, err := scanPayrollRecord(q.QueryRow(txCtx, lockQuery, id))
		if err != nil {
			if err == pgx.ErrNoRows {
				return payroll.ErrRecordNotFound
			}
			return fmt.Errorf("failed to get payroll record: %w", err)
		}

		updateQuery, err := guard(rec)
		if err != nil {
			return err
		}

		if _, err := q.Exec(txCtx, updateQuery, id); err != nil {
			return fmt.Errorf("failed to update payroll record status: %w", err)
		}

		updated, err := r.getByID(txCtx, id)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	return result, nil
}

// ========== SUMMARY ==========

func (r *payrollRepository) GetSummary(ctx context.Context, month string) (payroll.SummaryResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(base_salary), 0),
			COALESCE(SUM(employee_pf + esi + lwf + ex_gratia
				+ late_penalty + absent_deduction + timesheet_penalty
				+ adjustment_deductions - attendance_adjustments), 0),
			COALESCE(SUM(net_salary), 0),
			COUNT(*) FILTER (WHERE status = 'draft'),
			COUNT(*) FILTER (WHERE status = 'locked'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'paid')
		FROM payroll_records
		WHERE month = $1
	`

	summary := payroll.SummaryResponse{Month: month}
	err := q.QueryRow(ctx, query, month).Scan(
		&summary.TotalEmployees,
		&summary.TotalBaseSalary,
		&summary.TotalDeductions,
		&summary.TotalNetSalary,
		&summary.DraftCount,
		&summary.LockedCount,
		&summary.ApprovedCount,
		&summary.PaidCount,
	)
	if err != nil {
		return payroll.SummaryResponse{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}

	return summary, nil
}
