package policy

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateMode enum - how a statutory figure is expressed.
type RateMode string

const (
	RatePercentage RateMode = "percentage"
	RateFixed      RateMode = "fixed"
)

// StatutoryRate is a tagged variant: either a percentage of a base amount or
// a fixed monthly amount pro-rated by paid days. The two modes are mutually
// exclusive per field.
type StatutoryRate struct {
	Mode  RateMode
	Value decimal.Decimal
}

// Percentage builds a percentage-of-base rate.
func Percentage(rate decimal.Decimal) StatutoryRate {
	return StatutoryRate{Mode: RatePercentage, Value: rate}
}

// Fixed builds a fixed-amount rate.
func Fixed(amount decimal.Decimal) StatutoryRate {
	return StatutoryRate{Mode: RateFixed, Value: amount}
}

// IsZero reports whether the rate contributes nothing.
func (r StatutoryRate) IsZero() bool {
	return r.Value.IsZero()
}

var hundred = decimal.NewFromInt(100)

// Apply resolves the rate against a base amount. Percentage mode takes
// value% of base; fixed mode pro-rates the amount by paidDays/daysInMonth.
func (r StatutoryRate) Apply(base decimal.Decimal, paidDays decimal.Decimal, daysInMonth int) decimal.Decimal {
	if r.Value.IsZero() {
		return decimal.Zero
	}
	switch r.Mode {
	case RatePercentage:
		return base.Mul(r.Value).Div(hundred).Round(2)
	case RateFixed:
		return r.Value.Div(decimal.NewFromInt(int64(daysInMonth))).Mul(paidDays).Round(2)
	}
	return decimal.Zero
}

// CompensationPolicy - monthly component amounts and statutory rates for one
// employee. Exactly one policy is active per employee at computation time.
type CompensationPolicy struct {
	ID                string
	EmployeeID        string
	Basic             decimal.Decimal
	HRA               decimal.Decimal
	Travel            decimal.Decimal
	ChildrenEducation decimal.Decimal
	FixedIncentive    decimal.Decimal
	EmployerIncentive decimal.Decimal

	EmployeePF StatutoryRate
	EmployerPF StatutoryRate
	ESI        StatutoryRate
	LWF        StatutoryRate
	ExGratia   StatutoryRate

	LatePenaltyPerMinute decimal.Decimal
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// MonthlyGross is the full-month value of every component, the base for the
// per-day rate used by timing and absence deductions.
func (p CompensationPolicy) MonthlyGross() decimal.Decimal {
	return p.Basic.
		Add(p.HRA).
		Add(p.Travel).
		Add(p.ChildrenEducation).
		Add(p.FixedIncentive).
		Add(p.EmployerIncentive)
}

// DailyRate is MonthlyGross spread over the calendar days of the month.
func (p CompensationPolicy) DailyRate(daysInMonth int) decimal.Decimal {
	if daysInMonth <= 0 {
		return decimal.Zero
	}
	return p.MonthlyGross().Div(decimal.NewFromInt(int64(daysInMonth)))
}
