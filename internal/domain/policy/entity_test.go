package policy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStatutoryRateApply(t *testing.T) {
	paidDays := decimal.NewFromInt(28)

	tests := []struct {
		name     string
		rate     StatutoryRate
		base     string
		expected string
	}{
		{"percentage of base", Percentage(decimal.NewFromInt(12)), "28000", "3360"},
		{"fractional percentage", Percentage(decimal.NewFromFloat(0.75)), "30000", "225"},
		{"fixed pro-rated", Fixed(decimal.NewFromInt(300)), "30000", "280"},
		{"zero percentage", Percentage(decimal.Zero), "30000", "0"},
		{"zero fixed", Fixed(decimal.Zero), "30000", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, _ := decimal.NewFromString(tt.base)
			want, _ := decimal.NewFromString(tt.expected)

			got := tt.rate.Apply(base, paidDays, 30)
			assert.Truef(t, want.Equal(got), "expected %s, got %s", want, got)
		})
	}
}

func TestDailyRate(t *testing.T) {
	p := CompensationPolicy{
		Basic: decimal.NewFromInt(24000),
		HRA:   decimal.NewFromInt(6000),
	}

	assert.True(t, decimal.NewFromInt(30000).Equal(p.MonthlyGross()))
	assert.True(t, decimal.NewFromInt(1000).Equal(p.DailyRate(30)))
	assert.True(t, p.DailyRate(0).IsZero())
}
