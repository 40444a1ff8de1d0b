package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/adjustment"
	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/advance"
	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/attendance"
	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/employee"
	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/payroll"
	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/policy"
	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/timesheet"
	"github.com/teamtrack-hq/teamtrack-backend/internal/pkg/validator"
)

// computeWorkers caps the per-employee fan-out. Computation is CPU-bound
// and short; the pool is the real bottleneck.
const computeWorkers = 8

type PayrollServiceImpl struct {
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	policyRepo     policy.PolicyRepository
	adjustmentRepo adjustment.AdjustmentRepository
	advanceRepo    advance.AdvanceRepository
	timesheetRepo  timesheet.TimesheetRepository
	now            func() time.Time
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	policyRepo policy.PolicyRepository,
	adjustmentRepo adjustment.AdjustmentRepository,
	advanceRepo advance.AdvanceRepository,
	timesheetRepo timesheet.TimesheetRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		policyRepo:     policyRepo,
		adjustmentRepo: adjustmentRepo,
		advanceRepo:    advanceRepo,
		timesheetRepo:  timesheetRepo,
		now:            time.Now,
	}
}

// monthData is the month's shared read set, fetched once before fan-out.
type monthData struct {
	attendance  map[string][]attendance.Record
	policies    map[string]policy.CompensationPolicy
	adjustments map[string][]adjustment.Record
	advances    map[string][]advance.Record
	tasks       map[string][]timesheet.Task
	entries     map[string][]timesheet.Entry
}

func (s *PayrollServiceImpl) Compute(ctx context.Context, req payroll.ComputeRequest) (payroll.ComputeResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ComputeResponse{}, err
	}

	employees, err := s.targetEmployees(ctx, req.EmployeeID)
	if err != nil {
		return payroll.ComputeResponse{}, err
	}

	var data monthData
	if req.EmployeeID != nil && *req.EmployeeID != "" {
		data, err = s.fetchEmployeeData(ctx, *req.EmployeeID, req.Month)
	} else {
		data, err = s.fetchMonthData(ctx, req.Month)
	}
	if err != nil {
		return payroll.ComputeResponse{}, err
	}

	daysInMonth := validator.DaysInMonth(req.Month)
	now := s.now()

	// Per-employee computation shares no mutable state; each worker writes
	// only its own result slot.
	results := make([]payroll.PayrollResult, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(computeWorkers)

	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			results[i] = s.computeOne(gctx, emp, req.Month, daysInMonth, now, data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.ComputeResponse{}, err
	}

	processed := 0
	for _, res := range results {
		if res.Error == "" {
			processed++
		}
	}

	slog.Info("payroll computed",
		"month", req.Month,
		"actor", req.Actor,
		"employees", len(employees),
		"processed", processed,
	)

	return payroll.ComputeResponse{Results: results, TotalProcessed: processed}, nil
}

// computeOne runs the pure calculation for one employee and persists the
// outcome. Failures are carried in the result entry so one employee cannot
// abort the rest of the batch.
func (s *PayrollServiceImpl) computeOne(ctx context.Context, emp employee.Employee, month string, daysInMonth int, now time.Time, data monthData) payroll.PayrollResult {
	result := payroll.PayrollResult{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		Month:        month,
	}

	var pol *policy.CompensationPolicy
	if p, ok := data.policies[emp.ID]; ok {
		pol = &p
	}

	rec := Calculate(Input{
		EmployeeID:  emp.ID,
		Month:       month,
		DaysInMonth: daysInMonth,
		Now:         now,
		Attendance:  data.attendance[emp.ID],
		Policy:      pol,
		Adjustments: data.adjustments[emp.ID],
		Advances:    data.advances[emp.ID],
		Tasks:       data.tasks[emp.ID],
		Entries:     data.entries[emp.ID],
	})
	result.HasPolicy = rec.HasPolicy

	stored, action, err := s.payrollRepo.Upsert(ctx, rec)
	if err != nil {
		slog.Error("payroll upsert failed", "employee_id", emp.ID, "month", month, "error", err)
		result.Error = err.Error()
		return result
	}

	result.Action = action
	resp := mapToRecordResponse(stored)
	result.Record = &resp
	return result
}

func (s *PayrollServiceImpl) targetEmployees(ctx context.Context, employeeID *string) ([]employee.Employee, error) {
	if employeeID != nil && *employeeID != "" {
		emp, err := s.employeeRepo.GetByID(ctx, *employeeID)
		if err != nil {
			return nil, err
		}
		return []employee.Employee{emp}, nil
	}

	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	if len(employees) == 0 {
		return nil, payroll.ErrNoEmployeesToProcess
	}
	return employees, nil
}

func (s *PayrollServiceImpl) fetchMonthData(ctx context.Context, month string) (monthData, error) {
	var data monthData
	var err error

	records, err := s.attendanceRepo.GetByMonth(ctx, month)
	if err != nil {
		return data, fmt.Errorf("failed to get attendance: %w", err)
	}
	data.attendance = make(map[string][]attendance.Record)
	for _, rec := range records {
		data.attendance[rec.EmployeeID] = append(data.attendance[rec.EmployeeID], rec)
	}

	if data.policies, err = s.policyRepo.GetActive(ctx); err != nil {
		return data, fmt.Errorf("failed to get policies: %w", err)
	}
	if data.adjustments, err = s.adjustmentRepo.GetByMonth(ctx, month); err != nil {
		return data, fmt.Errorf("failed to get adjustments: %w", err)
	}
	if data.advances, err = s.advanceRepo.GetActive(ctx); err != nil {
		return data, fmt.Errorf("failed to get advances: %w", err)
	}
	if data.tasks, err = s.timesheetRepo.GetTasksByMonth(ctx, month); err != nil {
		return data, fmt.Errorf("failed to get tasks: %w", err)
	}
	if data.entries, err = s.timesheetRepo.GetEntriesByMonth(ctx, month); err != nil {
		return data, fmt.Errorf("failed to get timesheet entries: %w", err)
	}

	return data, nil
}

// fetchEmployeeData is the single-employee variant: attendance, policy and
// advances come from the per-employee readers; adjustments and timesheets are
// only indexed by month upstream, so those stay month-wide fetches.
func (s *PayrollServiceImpl) fetchEmployeeData(ctx context.Context, employeeID, month string) (monthData, error) {
	var data monthData
	var err error

	records, err := s.attendanceRepo.GetByEmployeeMonth(ctx, employeeID, month)
	if err != nil {
		return data, fmt.Errorf("failed to get attendance: %w", err)
	}
	data.attendance = map[string][]attendance.Record{employeeID: records}

	data.policies = make(map[string]policy.CompensationPolicy)
	pol, err := s.policyRepo.GetActiveByEmployee(ctx, employeeID)
	switch {
	case err == nil:
		data.policies[employeeID] = pol
	case errors.Is(err, policy.ErrPolicyNotFound):
		// Computed as an attendance-only record.
	default:
		return data, fmt.Errorf("failed to get policy: %w", err)
	}

	advances, err := s.advanceRepo.GetActiveByEmployee(ctx, employeeID)
	if err != nil {
		return data, fmt.Errorf("failed to get advances: %w", err)
	}
	data.advances = map[string][]advance.Record{employeeID: advances}

	if data.adjustments, err = s.adjustmentRepo.GetByMonth(ctx, month); err != nil {
		return data, fmt.Errorf("failed to get adjustments: %w", err)
	}
	if data.tasks, err = s.timesheetRepo.GetTasksByMonth(ctx, month); err != nil {
		return data, fmt.Errorf("failed to get tasks: %w", err)
	}
	if data.entries, err = s.timesheetRepo.GetEntriesByMonth(ctx, month); err != nil {
		return data, fmt.Errorf("failed to get timesheet entries: %w", err)
	}

	return data, nil
}

// ========== RECORD READS ==========

func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error) {
	rec, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(rec), nil
}

func (s *PayrollServiceImpl) ListRecords(ctx context.Context, filter payroll.ListFilter) (payroll.ListResponse, error) {
	records, totalCount, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListResponse{}, err
	}

	data := make([]payroll.RecordResponse, 0, len(records))
	for _, rec := range records {
		data = append(data, mapToRecordResponse(rec))
	}

	return payroll.ListResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) GetSummary(ctx context.Context, month string) (payroll.SummaryResponse, error) {
	if !validator.IsValidMonth(month) {
		return payroll.SummaryResponse{}, payroll.ErrInvalidMonth
	}
	return s.payrollRepo.GetSummary(ctx, month)
}

// ========== WORKFLOW ==========

func (s *PayrollServiceImpl) SetLocked(ctx context.Context, id string, locked bool, actor string) (payroll.RecordResponse, error) {
	rec, err := s.payrollRepo.SetLocked(ctx, id, locked)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	slog.Info("payroll lock changed", "record_id", id, "locked", locked, "actor", actor)
	return mapToRecordResponse(rec), nil
}

func (s *PayrollServiceImpl) Approve(ctx context.Context, id string, actor string) (payroll.RecordResponse, error) {
	rec, err := s.payrollRepo.Approve(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	slog.Info("payroll approved", "record_id", id, "actor", actor)
	return mapToRecordResponse(rec), nil
}

// MarkPaid finalizes the record and settles the month's installment against
// each outstanding advance of the employee.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id string, actor string) (payroll.RecordResponse, error) {
	rec, err := s.payrollRepo.MarkPaid(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	if rec.AdvanceRecovery.IsPositive() {
		advances, err := s.advanceRepo.GetActiveByEmployee(ctx, rec.EmployeeID)
		if err != nil {
			return payroll.RecordResponse{}, fmt.Errorf("failed to get advances: %w", err)
		}
		for _, adv := range advances {
			installment := adv.InstallmentFor(rec.Month)
			if installment.IsZero() {
				continue
			}
			if err := s.advanceRepo.ApplyRecovery(ctx, adv.ID, installment); err != nil {
				return payroll.RecordResponse{}, fmt.Errorf("failed to apply advance recovery: %w", err)
			}
		}
	}

	slog.Info("payroll marked paid", "record_id", id, "actor", actor, "advance_recovery", rec.AdvanceRecovery)
	return mapToRecordResponse(rec), nil
}

// ========== HELPERS ==========

func mapToRecordResponse(r payroll.PayrollRecord) payroll.RecordResponse {
	return payroll.RecordResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Month:      r.Month,
		HasPolicy:  r.HasPolicy,

		DaysInMonth:        r.DaysInMonth,
		PresentDays:        r.PresentDays,
		AbsentDays:         r.AbsentDays,
		UnpaidAbsentDays:   r.UnpaidAbsentDays,
		HalfDays:           r.HalfDays,
		PaidLeaveDays:      r.PaidLeaveDays,
		WeekoffDays:        r.WeekoffDays,
		HolidayDays:        r.HolidayDays,
		LateCount:          r.LateCount,
		EarlyCheckoutCount: r.EarlyCheckoutCount,
		NotMarkedDays:      r.NotMarkedDays,
		PaidDays:           r.PaidDays,

		EarnedBasic:             r.EarnedBasic,
		EarnedHRA:               r.EarnedHRA,
		EarnedTravel:            r.EarnedTravel,
		EarnedChildrenEducation: r.EarnedChildrenEducation,
		EarnedFixedIncentive:    r.EarnedFixedIncentive,
		EmployerIncentive:       r.EmployerIncentive,
		BaseSalary:              r.BaseSalary,

		EmployeePF:            r.EmployeePF,
		EmployerPF:            r.EmployerPF,
		ESI:                   r.ESI,
		LWF:                   r.LWF,
		ExGratia:              r.ExGratia,
		LatePenalty:           r.LatePenalty,
		AbsentDeduction:       r.AbsentDeduction,
		TimesheetPenalty:      r.TimesheetPenalty,
		AttendanceAdjustments: r.AttendanceAdjustments,
		TimingNotes:           r.TimingNotes,

		AdjustmentAdditions:  r.AdjustmentAdditions,
		AdjustmentDeductions: r.AdjustmentDeductions,
		AdvanceRecovery:      r.AdvanceRecovery,

		NetSalary: r.NetSalary,
		CTC:       r.CTC,

		Status: r.Status,
		Locked: r.Locked,
	}
}
