package payroll

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/adjustment"
	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/advance"
	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/attendance"
	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/policy"
	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/timesheet"
)

const testMonth = "2026-04" // 30 days

func ts(t *testing.T, date, clock string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	require.NoError(t, err)
	return &parsed
}

func workedDay(t *testing.T, date, in, out string) attendance.Record {
	t.Helper()
	return attendance.Record{
		EmployeeID: "emp-1",
		Date:       date,
		Status:     attendance.StatusCheckedOut,
		CheckIn:    ts(t, date, in),
		CheckOut:   ts(t, date, out),
	}
}

func statusDay(date string, status attendance.Status) attendance.Record {
	return attendance.Record{EmployeeID: "emp-1", Date: date, Status: status}
}

// fullMonth builds 30 timely worked days for April 2026.
func fullMonth(t *testing.T) []attendance.Record {
	t.Helper()
	records := make([]attendance.Record, 0, 30)
	for d := 1; d <= 30; d++ {
		date := fmt.Sprintf("2026-04-%02d", d)
		records = append(records, workedDay(t, date, "09:55", "18:30"))
	}
	return records
}

func basicOnlyPolicy() *policy.CompensationPolicy {
	return &policy.CompensationPolicy{
		ID:                   "pol-1",
		EmployeeID:           "emp-1",
		Basic:                decimal.NewFromInt(30000),
		LatePenaltyPerMinute: decimal.NewFromInt(5),
		IsActive:             true,
	}
}

func assertDecimal(t *testing.T, expected string, got decimal.Decimal, field string) {
	t.Helper()
	want, err := decimal.NewFromString(expected)
	require.NoError(t, err)
	assert.Truef(t, want.Equal(got), "%s: expected %s, got %s", field, expected, got)
}

func calcInput(t *testing.T, records []attendance.Record, pol *policy.CompensationPolicy) Input {
	t.Helper()
	return Input{
		EmployeeID:  "emp-1",
		Month:       testMonth,
		DaysInMonth: 30,
		Now:         time.Date(2026, 5, 1, 2, 0, 0, 0, time.UTC),
		Attendance:  records,
		Policy:      pol,
	}
}

func TestCalculateFullMonth(t *testing.T) {
	rec := Calculate(calcInput(t, fullMonth(t), basicOnlyPolicy()))

	assert.True(t, rec.HasPolicy)
	assert.Equal(t, 30, rec.PresentDays)
	assert.Equal(t, 0, rec.AbsentDays)
	assert.Equal(t, 0, rec.NotMarkedDays)
	assertDecimal(t, "30", rec.PaidDays, "paid_days")
	assertDecimal(t, "30000", rec.EarnedBasic, "earned_basic")
	assertDecimal(t, "30000", rec.BaseSalary, "base_salary")
	assertDecimal(t, "0", rec.AttendanceAdjustments, "attendance_adjustments")
	assertDecimal(t, "30000", rec.NetSalary, "net_salary")
	assertDecimal(t, "30000", rec.CTC, "ctc")
}

func TestCalculateIsDeterministic(t *testing.T) {
	in := calcInput(t, fullMonth(t), basicOnlyPolicy())
	in.Adjustments = []adjustment.Record{
		{Type: adjustment.TypeBonus, Amount: decimal.NewFromInt(1000), Status: adjustment.StatusApproved},
	}

	first := Calculate(in)
	second := Calculate(in)
	assert.Equal(t, first, second)
}

func TestCalculateFirstAbsencePaid(t *testing.T) {
	records := fullMonth(t)[:29]
	records = append(records, statusDay("2026-04-30", attendance.StatusAbsent))

	rec := Calculate(calcInput(t, records, basicOnlyPolicy()))

	assert.Equal(t, 1, rec.AbsentDays)
	assert.Equal(t, 0, rec.UnpaidAbsentDays)
	assertDecimal(t, "30", rec.PaidDays, "paid_days")
	assertDecimal(t, "0", rec.AbsentDeduction, "absent_deduction")
	assertDecimal(t, "30000", rec.NetSalary, "net_salary")
}

func TestCalculateMultipleAbsences(t *testing.T) {
	records := fullMonth(t)[:27]
	for d := 28; d <= 30; d++ {
		records = append(records, statusDay(fmt.Sprintf("2026-04-%02d", d), attendance.StatusAbsent))
	}

	rec := Calculate(calcInput(t, records, basicOnlyPolicy()))

	assert.Equal(t, 3, rec.AbsentDays)
	assert.Equal(t, 2, rec.UnpaidAbsentDays)
	assertDecimal(t, "28", rec.PaidDays, "paid_days")
	// Daily rate is 30000/30 = 1000; two unpaid absences.
	assertDecimal(t, "2000", rec.AbsentDeduction, "absent_deduction")
}

func TestCalculateTwoAbsencesOneUnpaid(t *testing.T) {
	records := fullMonth(t)[:28]
	records = append(records,
		statusDay("2026-04-29", attendance.StatusAbsent),
		statusDay("2026-04-30", attendance.StatusAbsent),
	)

	rec := Calculate(calcInput(t, records, basicOnlyPolicy()))

	assert.Equal(t, 1, rec.UnpaidAbsentDays)
	assertDecimal(t, "1000", rec.AbsentDeduction, "absent_deduction")
}

func TestCalculateHalfDays(t *testing.T) {
	records := fullMonth(t)[:28]
	records = append(records,
		statusDay("2026-04-29", attendance.StatusHalfDay),
		statusDay("2026-04-30", attendance.StatusHalfDay),
	)

	rec := Calculate(calcInput(t, records, basicOnlyPolicy()))

	assert.Equal(t, 2, rec.HalfDays)
	assertDecimal(t, "29", rec.PaidDays, "paid_days")
	assertDecimal(t, "29000", rec.EarnedBasic, "earned_basic")
}

func TestCalculatePaidDaysNeverExceedDaysInMonth(t *testing.T) {
	records := fullMonth(t)
	rec := Calculate(calcInput(t, records, basicOnlyPolicy()))

	assert.True(t, rec.PaidDays.LessThanOrEqual(decimal.NewFromInt(int64(rec.DaysInMonth))))
	assert.True(t, rec.PaidDays.GreaterThanOrEqual(decimal.Zero))
}

func TestCalculateNoPolicy(t *testing.T) {
	rec := Calculate(calcInput(t, fullMonth(t), nil))

	assert.False(t, rec.HasPolicy)
	assert.Equal(t, 30, rec.PresentDays)
	assertDecimal(t, "30", rec.PaidDays, "paid_days")
	assertDecimal(t, "0", rec.BaseSalary, "base_salary")
	assertDecimal(t, "0", rec.NetSalary, "net_salary")
	assertDecimal(t, "0", rec.CTC, "ctc")
}

func TestCalculateInactivePolicyTreatedAsMissing(t *testing.T) {
	pol := basicOnlyPolicy()
	pol.IsActive = false

	rec := Calculate(calcInput(t, fullMonth(t), pol))

	assert.False(t, rec.HasPolicy)
	assertDecimal(t, "0", rec.NetSalary, "net_salary")
}

func TestCalculateCheckInBoundary(t *testing.T) {
	records := fullMonth(t)[:28]
	records = append(records,
		workedDay(t, "2026-04-29", "10:00", "18:30"), // on time, no deduction
		workedDay(t, "2026-04-30", "10:01", "18:30"), // 25% tier
	)

	rec := Calculate(calcInput(t, records, basicOnlyPolicy()))

	require.Len(t, rec.TimingNotes, 1)
	assert.Equal(t, "2026-04-30", rec.TimingNotes[0].Date)
	assertDecimal(t, "-250", rec.TimingNotes[0].Amount, "timing note amount")
	assertDecimal(t, "-250", rec.AttendanceAdjustments, "attendance_adjustments")
}

func TestCalculateLateCheckInIgnoresCheckOut(t *testing.T) {
	records := fullMonth(t)[:29]
	// Late check-in at 11:15 is the 50% tier; the 18:30 check-out adds nothing.
	records = append(records, workedDay(t, "2026-04-30", "11:15", "18:30"))

	rec := Calculate(calcInput(t, records, basicOnlyPolicy()))

	require.Len(t, rec.TimingNotes, 1)
	assertDecimal(t, "-500", rec.AttendanceAdjustments, "attendance_adjustments")
	assertDecimal(t, "29500", rec.NetSalary, "net_salary")
}

func TestCalculateLatePenalty(t *testing.T) {
	records := fullMonth(t)
	records[5].IsLate = true
	records[6].IsLate = true

	rec := Calculate(calcInput(t, records, basicOnlyPolicy()))

	assert.Equal(t, 2, rec.LateCount)
	// 2 marks * 5/minute * 10 minutes
	assertDecimal(t, "100", rec.LatePenalty, "late_penalty")
}

func TestCalculateStatutoryDeductions(t *testing.T) {
	pol := basicOnlyPolicy()
	pol.EmployeePF = policy.Percentage(decimal.NewFromInt(12))
	pol.EmployerPF = policy.Percentage(decimal.NewFromInt(12))
	pol.ESI = policy.Percentage(decimal.NewFromFloat(0.75))
	pol.LWF = policy.Fixed(decimal.NewFromInt(300))

	rec := Calculate(calcInput(t, fullMonth(t), pol))

	assertDecimal(t, "3600", rec.EmployeePF, "employee_pf")
	assertDecimal(t, "3600", rec.EmployerPF, "employer_pf")
	assertDecimal(t, "225", rec.ESI, "esi")
	assertDecimal(t, "300", rec.LWF, "lwf")
	// 30000 - (3600 + 225 + 300); employer PF hits CTC only.
	assertDecimal(t, "25875", rec.NetSalary, "net_salary")
	assertDecimal(t, "33600", rec.CTC, "ctc")
}

func TestCalculateAdjustments(t *testing.T) {
	in := calcInput(t, fullMonth(t), basicOnlyPolicy())
	in.Adjustments = []adjustment.Record{
		{Type: adjustment.TypeBonus, Amount: decimal.NewFromInt(1000), Status: adjustment.StatusApproved},
		{Type: adjustment.TypeBonus, Amount: decimal.NewFromInt(5000), Status: adjustment.StatusPending},
		{Type: adjustment.TypePenalty, Amount: decimal.NewFromInt(-200), Status: adjustment.StatusApproved},
		{Type: adjustment.TypeDeduction, Amount: decimal.NewFromInt(300), Status: adjustment.StatusRejected},
		{Type: adjustment.TypePenaltyWaiver, Amount: decimal.NewFromInt(999), Status: adjustment.StatusApproved, Date: "2026-04-10"},
	}

	rec := Calculate(in)

	assertDecimal(t, "1000", rec.AdjustmentAdditions, "adjustment_additions")
	assertDecimal(t, "200", rec.AdjustmentDeductions, "adjustment_deductions")
	assertDecimal(t, "30800", rec.NetSalary, "net_salary")
}

func TestCalculateAdvanceRecovery(t *testing.T) {
	tests := []struct {
		name     string
		advance  advance.Record
		expected string
	}{
		{
			name: "due installment",
			advance: advance.Record{
				InstallmentAmount:  decimal.NewFromInt(2000),
				RemainingBalance:   decimal.NewFromInt(6000),
				RecoveryStartMonth: "2026-03",
				Status:             advance.StatusActive,
			},
			expected: "2000",
		},
		{
			name: "capped by remaining balance",
			advance: advance.Record{
				InstallmentAmount:  decimal.NewFromInt(2000),
				RemainingBalance:   decimal.NewFromInt(1500),
				RecoveryStartMonth: "2026-01",
				Status:             advance.StatusActive,
			},
			expected: "1500",
		},
		{
			name: "not yet due",
			advance: advance.Record{
				InstallmentAmount:  decimal.NewFromInt(2000),
				RemainingBalance:   decimal.NewFromInt(6000),
				RecoveryStartMonth: "2026-05",
				Status:             advance.StatusActive,
			},
			expected: "0",
		},
		{
			name: "closed advance",
			advance: advance.Record{
				InstallmentAmount:  decimal.NewFromInt(2000),
				RemainingBalance:   decimal.NewFromInt(6000),
				RecoveryStartMonth: "2026-01",
				Status:             advance.StatusClosed,
			},
			expected: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := calcInput(t, fullMonth(t), basicOnlyPolicy())
			in.Advances = []advance.Record{tt.advance}

			rec := Calculate(in)
			assertDecimal(t, tt.expected, rec.AdvanceRecovery, "advance_recovery")
		})
	}
}

func TestCalculateTimesheetViolationDoublePenalty(t *testing.T) {
	in := calcInput(t, fullMonth(t), basicOnlyPolicy())
	in.Tasks = []timesheet.Task{
		{ID: "task-1", EmployeeID: "emp-1", Title: "Quarterly report", AssignedAt: time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)},
	}
	in.Now = time.Date(2026, 4, 13, 9, 0, 0, 0, time.UTC)

	rec := Calculate(in)

	// The penalized date is dropped from attendance AND fined a full day.
	assert.Equal(t, 29, rec.PresentDays)
	assert.Equal(t, 1, rec.NotMarkedDays)
	assertDecimal(t, "29", rec.PaidDays, "paid_days")
	assertDecimal(t, "1000", rec.TimesheetPenalty, "timesheet_penalty")
	// 29000 earned minus the 1000 fine.
	assertDecimal(t, "28000", rec.NetSalary, "net_salary")
}

func TestCalculateWaiverNullifiesTimesheetPenalty(t *testing.T) {
	in := calcInput(t, fullMonth(t), basicOnlyPolicy())
	in.Tasks = []timesheet.Task{
		{ID: "task-1", EmployeeID: "emp-1", Title: "Quarterly report", AssignedAt: time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)},
	}
	in.Adjustments = []adjustment.Record{
		{Type: adjustment.TypePenaltyWaiver, Status: adjustment.StatusApproved, Date: "2026-04-10"},
	}
	in.Now = time.Date(2026, 4, 13, 9, 0, 0, 0, time.UTC)

	rec := Calculate(in)

	assert.Equal(t, 30, rec.PresentDays)
	assertDecimal(t, "0", rec.TimesheetPenalty, "timesheet_penalty")
	assertDecimal(t, "30000", rec.NetSalary, "net_salary")
}
