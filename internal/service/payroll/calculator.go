package payroll

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/adjustment"
	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/advance"
	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/attendance"
	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/payroll"
	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/policy"
	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/timesheet"
)

// Input is everything the engine needs for one employee's month. All inputs
// are explicit records; the computation keeps no other state.
type Input struct {
	EmployeeID  string
	Month       string // YYYY-MM
	DaysInMonth int
	Now         time.Time

	Attendance  []attendance.Record
	Policy      *policy.CompensationPolicy
	Adjustments []adjustment.Record
	Advances    []advance.Record
	Tasks       []timesheet.Task
	Entries     []timesheet.Entry
}

// Calculate derives the payroll record for one employee and month. It is a
// pure function: same inputs, same output, no I/O.
func Calculate(in Input) payroll.PayrollRecord {
	rec := payroll.PayrollRecord{
		EmployeeID:  in.EmployeeID,
		Month:       in.Month,
		DaysInMonth: in.DaysInMonth,
		Status:      payroll.StatusDraft,
	}

	waivers := waiverDates(in.Adjustments)
	penalizedDates := detectTimesheetViolations(in.Tasks, in.Entries, waivers, in.Now)

	// Effective attendance excludes penalized dates, which both removes the
	// day's pay and leaves the day unmarked.
	effective := effectiveAttendance(in.Attendance, penalizedDates)

	counts := aggregate(effective)
	rec.PresentDays = counts.present
	rec.AbsentDays = counts.absent
	rec.HalfDays = counts.halfDay
	rec.PaidLeaveDays = counts.paidLeave
	rec.WeekoffDays = counts.weekoff
	rec.HolidayDays = counts.holiday
	rec.LateCount = counts.late
	rec.EarlyCheckoutCount = counts.earlyCheckout
	rec.NotMarkedDays = in.DaysInMonth - len(effective)

	// First absence is paid; only the rest go unpaid.
	paidAbsent := 0
	if counts.absent > 0 {
		paidAbsent = 1
	}
	rec.UnpaidAbsentDays = counts.absent - paidAbsent

	half := decimal.NewFromFloat(0.5)
	rec.PaidDays = decimal.NewFromInt(int64(counts.present + counts.weekoff + counts.holiday + counts.paidLeave + paidAbsent)).
		Add(half.Mul(decimal.NewFromInt(int64(counts.halfDay))))

	if in.Policy == nil || !in.Policy.IsActive {
		// Attendance-only result; every financial field stays zero so the
		// caller can surface a missing-policy diagnostic.
		zeroFinancials(&rec)
		return rec
	}
	rec.HasPolicy = true

	p := *in.Policy
	days := decimal.NewFromInt(int64(in.DaysInMonth))
	dailyRate := p.DailyRate(in.DaysInMonth)

	rec.AttendanceAdjustments, rec.TimingNotes = evaluateTiming(effective, dailyRate)

	// Earnings, pro-rated by paid days. The employer incentive is added at
	// its full fixed amount regardless of attendance.
	rec.EarnedBasic = prorate(p.Basic, rec.PaidDays, days)
	rec.EarnedHRA = prorate(p.HRA, rec.PaidDays, days)
	rec.EarnedTravel = prorate(p.Travel, rec.PaidDays, days)
	rec.EarnedChildrenEducation = prorate(p.ChildrenEducation, rec.PaidDays, days)
	rec.EarnedFixedIncentive = prorate(p.FixedIncentive, rec.PaidDays, days)
	rec.EmployerIncentive = p.EmployerIncentive
	rec.BaseSalary = rec.EarnedBasic.
		Add(rec.EarnedHRA).
		Add(rec.EarnedTravel).
		Add(rec.EarnedChildrenEducation).
		Add(rec.EarnedFixedIncentive).
		Add(rec.EmployerIncentive)

	// Statutory deductions. PF and ex-gratia are based on earned basic,
	// ESI and LWF on the earned gross.
	rec.EmployeePF = p.EmployeePF.Apply(rec.EarnedBasic, rec.PaidDays, in.DaysInMonth)
	rec.EmployerPF = p.EmployerPF.Apply(rec.EarnedBasic, rec.PaidDays, in.DaysInMonth)
	rec.ESI = p.ESI.Apply(rec.BaseSalary, rec.PaidDays, in.DaysInMonth)
	rec.LWF = p.LWF.Apply(rec.BaseSalary, rec.PaidDays, in.DaysInMonth)
	rec.ExGratia = p.ExGratia.Apply(rec.EarnedBasic, rec.PaidDays, in.DaysInMonth)

	rec.LatePenalty = decimal.NewFromInt(int64(rec.LateCount)).
		Mul(p.LatePenaltyPerMinute).
		Mul(decimal.NewFromInt(10)).
		Round(2)
	rec.AbsentDeduction = dailyRate.Mul(decimal.NewFromInt(int64(rec.UnpaidAbsentDays))).Round(2)
	rec.TimesheetPenalty = dailyRate.Mul(decimal.NewFromInt(int64(len(penalizedDates)))).Round(2)

	rec.AdjustmentAdditions, rec.AdjustmentDeductions = netAdjustments(in.Adjustments)
	rec.AdvanceRecovery = advanceRecovery(in.Advances, in.Month)

	rec.NetSalary = rec.BaseSalary.
		Add(rec.AdjustmentAdditions).
		Add(rec.AttendanceAdjustments).
		Sub(rec.LatePenalty).
		Sub(rec.AbsentDeduction).
		Sub(rec.StatutoryTotal()).
		Sub(rec.AdvanceRecovery).
		Sub(rec.AdjustmentDeductions).
		Sub(rec.TimesheetPenalty).
		Round(2)
	rec.CTC = rec.BaseSalary.Add(rec.EmployerPF).Round(2)

	return rec
}

type statusCounts struct {
	present       int
	absent        int
	halfDay       int
	paidLeave     int
	weekoff       int
	holiday       int
	late          int
	earlyCheckout int
}

func aggregate(records []attendance.Record) statusCounts {
	var c statusCounts
	for _, rec := range records {
		switch {
		case rec.Status.IsWorking():
			c.present++
		case rec.Status == attendance.StatusAbsent:
			c.absent++
		case rec.Status == attendance.StatusHalfDay:
			c.halfDay++
		case rec.Status.IsPaidLeave():
			c.paidLeave++
		case rec.Status == attendance.StatusWeekoff:
			c.weekoff++
		case rec.Status == attendance.StatusHoliday:
			c.holiday++
		}
		if rec.IsLate {
			c.late++
		}
		if rec.IsEarlyCheckout {
			c.earlyCheckout++
		}
	}
	return c
}

// effectiveAttendance drops records on penalized dates and returns the rest
// sorted by date ascending, the order the timing evaluator requires.
func effectiveAttendance(records []attendance.Record, penalizedDates []string) []attendance.Record {
	excluded := make(map[string]bool, len(penalizedDates))
	for _, d := range penalizedDates {
		excluded[d] = true
	}

	effective := make([]attendance.Record, 0, len(records))
	for _, rec := range records {
		if !excluded[rec.Date] {
			effective = append(effective, rec)
		}
	}
	sort.Slice(effective, func(i, j int) bool { return effective[i].Date < effective[j].Date })
	return effective
}

// netAdjustments sums approved adjustments: additive types raise the net,
// every other type lowers it by absolute value. Waivers are informational
// and excluded entirely.
func netAdjustments(records []adjustment.Record) (additions, deductions decimal.Decimal) {
	additions, deductions = decimal.Zero, decimal.Zero
	for _, adj := range records {
		if adj.Status != adjustment.StatusApproved || adj.Type == adjustment.TypePenaltyWaiver {
			continue
		}
		if adj.Type.IsAdditive() {
			additions = additions.Add(adj.Amount)
		} else {
			deductions = deductions.Add(adj.Amount.Abs())
		}
	}
	return additions, deductions
}

func advanceRecovery(advances []advance.Record, month string) decimal.Decimal {
	total := decimal.Zero
	for _, adv := range advances {
		total = total.Add(adv.InstallmentFor(month))
	}
	return total
}

func prorate(monthly decimal.Decimal, paidDays, daysInMonth decimal.Decimal) decimal.Decimal {
	if monthly.IsZero() {
		return decimal.Zero
	}
	return monthly.Div(daysInMonth).Mul(paidDays).Round(2)
}

// zeroFinancials pins every monetary field to decimal zero so a missing
// policy still serializes clean zeroes rather than uninitialized decimals.
func zeroFinancials(rec *payroll.PayrollRecord) {
	rec.EarnedBasic = decimal.Zero
	rec.EarnedHRA = decimal.Zero
	rec.EarnedTravel = decimal.Zero
	rec.EarnedChildrenEducation = decimal.Zero
	rec.EarnedFixedIncentive = decimal.Zero
	rec.EmployerIncentive = decimal.Zero
	rec.BaseSalary = decimal.Zero
	rec.EmployeePF = decimal.Zero
	rec.EmployerPF = decimal.Zero
	rec.ESI = decimal.Zero
	rec.LWF = decimal.Zero
	rec.ExGratia = decimal.Zero
	rec.LatePenalty = decimal.Zero
	rec.AbsentDeduction = decimal.Zero
	rec.TimesheetPenalty = decimal.Zero
	rec.AttendanceAdjustments = decimal.Zero
	rec.AdjustmentAdditions = decimal.Zero
	rec.AdjustmentDeductions = decimal.Zero
	rec.AdvanceRecovery = decimal.Zero
	rec.NetSalary = decimal.Zero
	rec.CTC = decimal.Zero
}
