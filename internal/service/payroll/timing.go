package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/attendance"
	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/payroll"
)

// Expected office timings, in minutes from midnight.
const (
	expectedCheckIn     = 10 * 60 // 10:00
	checkInTier25End    = 11 * 60 // 11:00
	checkInTier50aEnd   = 12 * 60 // 12:00
	checkInTier50bEnd   = 14 * 60 // 14:00
	checkInTier75End    = 16 * 60 // 16:00
	checkOutFullBefore  = 14 * 60 // 14:00
	checkOutHalfEnd     = 17 * 60 // 17:00
	expectedCheckOutEnd = 18 * 60 // 18:00
)

var percent = map[int]decimal.Decimal{
	25:  decimal.NewFromInt(25),
	50:  decimal.NewFromInt(50),
	75:  decimal.NewFromInt(75),
	100: decimal.NewFromInt(100),
}

// evaluateTiming walks attendance in date order and applies the tiered
// check-in/check-out deduction rules. Streak counters only decorate the
// reason with "(consecutive)"; they never change the deduction magnitude.
// Records without a usable timestamp incur no timing deduction.
func evaluateTiming(records []attendance.Record, dailyRate decimal.Decimal) (decimal.Decimal, []payroll.TimingNote) {
	total := decimal.Zero
	var notes []payroll.TimingNote
	lateStreak := 0
	earlyCheckoutStreak := 0

	for _, rec := range records {
		if !rec.Status.IsWorking() {
			lateStreak = 0
			earlyCheckoutStreak = 0
			continue
		}
		if rec.CheckIn == nil {
			continue
		}

		in := rec.CheckIn.Hour()*60 + rec.CheckIn.Minute()

		if in > expectedCheckIn {
			pct, label := classifyCheckIn(in)
			consecutive := false
			if in <= checkInTier25End {
				lateStreak++
				consecutive = lateStreak > 1
			}
			reason := fmt.Sprintf("Late check-in at %s, %s: %d%% of daily rate deducted",
				rec.CheckIn.Format("15:04"), label, pct)
			if consecutive {
				reason += " (consecutive)"
			}
			amount := deductionOf(dailyRate, pct)
			total = total.Add(amount)
			notes = append(notes, payroll.TimingNote{Date: rec.Date, Amount: amount, Reason: reason})
			continue
		}

		// Timely check-in resets the late streak and makes the check-out
		// rules applicable.
		lateStreak = 0
		if rec.CheckOut == nil {
			continue
		}

		out := rec.CheckOut.Hour()*60 + rec.CheckOut.Minute()
		pct, label := classifyCheckOut(out)
		if pct == 0 {
			earlyCheckoutStreak = 0
			continue
		}
		consecutive := false
		if out > checkOutHalfEnd && out <= expectedCheckOutEnd {
			earlyCheckoutStreak++
			consecutive = earlyCheckoutStreak > 1
		}
		reason := fmt.Sprintf("Early check-out at %s, %s: %d%% of daily rate deducted",
			rec.CheckOut.Format("15:04"), label, pct)
		if consecutive {
			reason += " (consecutive)"
		}
		amount := deductionOf(dailyRate, pct)
		total = total.Add(amount)
		notes = append(notes, payroll.TimingNote{Date: rec.Date, Amount: amount, Reason: reason})
	}

	return total, notes
}

// classifyCheckIn maps a late check-in minute to its deduction tier.
func classifyCheckIn(minute int) (pct int, label string) {
	switch {
	case minute <= checkInTier25End:
		return 25, "between 10:01 and 11:00"
	case minute <= checkInTier50aEnd:
		return 50, "between 11:01 and 12:00"
	case minute <= checkInTier50bEnd:
		return 50, "between 12:01 and 14:00"
	case minute <= checkInTier75End:
		return 75, "between 14:01 and 16:00"
	default:
		return 100, "after 16:00"
	}
}

// classifyCheckOut maps a check-out minute to its deduction tier. Zero means
// the check-out was on time (after the 18:00 window).
func classifyCheckOut(minute int) (pct int, label string) {
	switch {
	case minute < checkOutFullBefore:
		return 100, "before 14:00"
	case minute <= checkOutHalfEnd:
		return 50, "between 14:01 and 17:00"
	case minute <= expectedCheckOutEnd:
		return 25, "between 17:01 and 18:00"
	default:
		return 0, ""
	}
}

// deductionOf returns pct% of dailyRate as a negative amount.
func deductionOf(dailyRate decimal.Decimal, pct int) decimal.Decimal {
	return dailyRate.Mul(percent[pct]).Div(percent[100]).Round(2).Neg()
}
