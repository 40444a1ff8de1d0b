package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/teamtrack-hq/teamtrack-backend/internal/pkg/validator"
)

// ComputeRequest drives one engine invocation. Actor is the acting user id,
// passed explicitly rather than read from any ambient request state.
type ComputeRequest struct {
	Month      string  `json:"month"` // YYYY-MM
	EmployeeID *string `json:"employee_id,omitempty"`
	Actor      string  `json:"-"`
}

func (r *ComputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "is required"})
	} else if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PayrollResult - per-employee outcome of a compute invocation.
type PayrollResult struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	Month        string          `json:"month"`
	Action       Action          `json:"action"`
	HasPolicy    bool            `json:"has_policy"`
	Record       *RecordResponse `json:"record,omitempty"`
	Error        string          `json:"error,omitempty"`
}

// ComputeResponse - the invocation contract result.
type ComputeResponse struct {
	Results        []PayrollResult `json:"results"`
	TotalProcessed int             `json:"total_processed"`
}

// RecordResponse carries every computed figure of a payroll record.
type RecordResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Month      string `json:"month"`
	HasPolicy  bool   `json:"has_policy"`

	DaysInMonth        int             `json:"days_in_month"`
	PresentDays        int             `json:"present_days"`
	AbsentDays         int             `json:"absent_days"`
	UnpaidAbsentDays   int             `json:"unpaid_absent_days"`
	HalfDays           int             `json:"half_days"`
	PaidLeaveDays      int             `json:"paid_leave_days"`
	WeekoffDays        int             `json:"weekoff_days"`
	HolidayDays        int             `json:"holiday_days"`
	LateCount          int             `json:"late_count"`
	EarlyCheckoutCount int             `json:"early_checkout_count"`
	NotMarkedDays      int             `json:"not_marked_days"`
	PaidDays           decimal.Decimal `json:"paid_days"`

	EarnedBasic             decimal.Decimal `json:"earned_basic"`
	EarnedHRA               decimal.Decimal `json:"earned_hra"`
	EarnedTravel            decimal.Decimal `json:"earned_travel"`
	EarnedChildrenEducation decimal.Decimal `json:"earned_children_education"`
	EarnedFixedIncentive    decimal.Decimal `json:"earned_fixed_incentive"`
	EmployerIncentive       decimal.Decimal `json:"employer_incentive"`
	BaseSalary              decimal.Decimal `json:"base_salary"`

	EmployeePF            decimal.Decimal `json:"employee_pf"`
	EmployerPF            decimal.Decimal `json:"employer_pf"`
	ESI                   decimal.Decimal `json:"esi"`
	LWF                   decimal.Decimal `json:"lwf"`
	ExGratia              decimal.Decimal `json:"ex_gratia"`
	LatePenalty           decimal.Decimal `json:"late_penalty"`
	AbsentDeduction       decimal.Decimal `json:"absent_deduction"`
	TimesheetPenalty      decimal.Decimal `json:"timesheet_penalty"`
	AttendanceAdjustments decimal.Decimal `json:"attendance_adjustments"`
	TimingNotes           []TimingNote    `json:"timing_notes,omitempty"`

	AdjustmentAdditions  decimal.Decimal `json:"adjustment_additions"`
	AdjustmentDeductions decimal.Decimal `json:"adjustment_deductions"`
	AdvanceRecovery      decimal.Decimal `json:"advance_recovery"`

	NetSalary decimal.Decimal `json:"net_salary"`
	CTC       decimal.Decimal `json:"ctc"`

	Status Status `json:"status"`
	Locked bool   `json:"locked"`
}

// ListFilter - query filter for payroll record listings.
type ListFilter struct {
	Month      *string
	EmployeeID *string
	Status     *string
	Page       int
	Limit      int
}

type ListResponse struct {
	Data       []RecordResponse `json:"data"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}

// SummaryResponse - month-level aggregates for the payroll dashboard.
type SummaryResponse struct {
	Month           string          `json:"month"`
	TotalEmployees  int             `json:"total_employees"`
	TotalBaseSalary decimal.Decimal `json:"total_base_salary"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNetSalary  decimal.Decimal `json:"total_net_salary"`
	DraftCount      int             `json:"draft_count"`
	LockedCount     int             `json:"locked_count"`
	ApprovedCount   int             `json:"approved_count"`
	PaidCount       int             `json:"paid_count"`
}
