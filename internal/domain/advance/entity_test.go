package advance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDueFor(t *testing.T) {
	rec := Record{
		RecoveryStartMonth: "2026-03",
		Status:             StatusActive,
	}

	assert.False(t, rec.DueFor("2026-02"))
	assert.True(t, rec.DueFor("2026-03"))
	assert.True(t, rec.DueFor("2026-12"))

	// Year rollover stays correct under lexical comparison.
	assert.True(t, rec.DueFor("2027-01"))

	rec.Status = StatusClosed
	assert.False(t, rec.DueFor("2026-12"))
}

func TestInstallmentFor(t *testing.T) {
	rec := Record{
		InstallmentAmount:  decimal.NewFromInt(2000),
		RemainingBalance:   decimal.NewFromInt(1500),
		RecoveryStartMonth: "2026-01",
		Status:             StatusActive,
	}

	assert.True(t, decimal.NewFromInt(1500).Equal(rec.InstallmentFor("2026-04")))

	rec.RemainingBalance = decimal.NewFromInt(6000)
	assert.True(t, decimal.NewFromInt(2000).Equal(rec.InstallmentFor("2026-04")))

	assert.True(t, rec.InstallmentFor("2025-12").IsZero())
}
