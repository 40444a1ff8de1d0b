package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum - workflow state of a payroll record. Computation always
// writes draft; the other states are set by external workflow actions.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusLocked   Status = "locked"
	StatusApproved Status = "approved"
	StatusPaid     Status = "paid"
)

// Action enum - effect of an upsert on the target record.
type Action string

const (
	ActionCreated       Action = "created"
	ActionUpdated       Action = "updated"
	ActionSkippedLocked Action = "skipped_locked"
)

// TimingNote - one day's timing deduction with its human-readable reason.
// Stored alongside the record so the payslip view can explain the total.
type TimingNote struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"` // always <= 0
	Reason string          `json:"reason"`
}

// PayrollRecord - the computed salary of one employee for one month.
// Unique on (employee_id, month). Once Locked is set the engine never
// overwrites the record.
type PayrollRecord struct {
	ID         string
	EmployeeID string
	Month      string // YYYY-MM
	HasPolicy  bool

	// Day counts
	DaysInMonth        int
	PresentDays        int
	AbsentDays         int
	UnpaidAbsentDays   int
	HalfDays           int
	PaidLeaveDays      int
	WeekoffDays        int
	HolidayDays        int
	LateCount          int
	EarlyCheckoutCount int
	NotMarkedDays      int
	PaidDays           decimal.Decimal // fractional: half days count 0.5

	// Earnings
	EarnedBasic             decimal.Decimal
	EarnedHRA               decimal.Decimal
	EarnedTravel            decimal.Decimal
	EarnedChildrenEducation decimal.Decimal
	EarnedFixedIncentive    decimal.Decimal
	EmployerIncentive       decimal.Decimal
	BaseSalary              decimal.Decimal

	// Deductions
	EmployeePF            decimal.Decimal
	EmployerPF            decimal.Decimal
	ESI                   decimal.Decimal
	LWF                   decimal.Decimal
	ExGratia              decimal.Decimal
	LatePenalty           decimal.Decimal
	AbsentDeduction       decimal.Decimal
	TimesheetPenalty      decimal.Decimal
	AttendanceAdjustments decimal.Decimal // sum of timing deductions, <= 0
	TimingNotes           []TimingNote

	// Adjustments and advances
	AdjustmentAdditions  decimal.Decimal
	AdjustmentDeductions decimal.Decimal
	AdvanceRecovery      decimal.Decimal

	NetSalary decimal.Decimal
	CTC       decimal.Decimal

	Status    Status
	Locked    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}

// StatutoryTotal is the employee-side statutory deduction applied to net
// salary. Employer PF is carried on the record for CTC only.
func (r PayrollRecord) StatutoryTotal() decimal.Decimal {
	return r.EmployeePF.Add(r.ESI).Add(r.LWF).Add(r.ExGratia)
}
