package adjustment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type enum - ad-hoc adjustment categories. Additive types raise the net
// salary; every other approved type is deducted by absolute value.
type Type string

const (
	TypeBonus         Type = "bonus"
	TypeIncentive     Type = "incentive"
	TypeReimbursement Type = "reimbursement"
	TypeAllowance     Type = "allowance"
	TypePenalty       Type = "penalty"
	TypeDeduction     Type = "deduction"
	TypePenaltyWaiver Type = "penalty_waiver"
)

// IsAdditive reports whether the type adds to net salary.
func (t Type) IsAdditive() bool {
	switch t {
	case TypeBonus, TypeIncentive, TypeReimbursement, TypeAllowance:
		return true
	}
	return false
}

// Status enum
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Record - an ad-hoc adjustment raised against an employee for a month.
// Only approved records participate in computation. penalty_waiver records
// never alter totals; they nullify timesheet penalties by exact date match.
type Record struct {
	ID         string
	EmployeeID string
	Month      string // YYYY-MM
	Type       Type
	Amount     decimal.Decimal
	Status     Status
	Date       string // YYYY-MM-DD
	Reason     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
