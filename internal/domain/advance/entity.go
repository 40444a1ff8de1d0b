package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// Record - an outstanding salary advance recovered in monthly installments
// starting at RecoveryStartMonth.
type Record struct {
	ID                 string
	EmployeeID         string
	InstallmentAmount  decimal.Decimal
	RemainingBalance   decimal.Decimal
	RecoveryStartMonth string // YYYY-MM
	Status             Status
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DueFor reports whether this advance is recoverable in the given month.
// Lexical comparison is valid because both sides are fixed-width YYYY-MM.
func (r Record) DueFor(month string) bool {
	return r.Status == StatusActive && r.RecoveryStartMonth <= month
}

// InstallmentFor returns the amount to recover this month, capped by the
// remaining balance. Zero when the advance is not yet due.
func (r Record) InstallmentFor(month string) decimal.Decimal {
	if !r.DueFor(month) {
		return decimal.Zero
	}
	if r.InstallmentAmount.GreaterThan(r.RemainingBalance) {
		return r.RemainingBalance
	}
	return r.InstallmentAmount
}
