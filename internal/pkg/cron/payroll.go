package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/payroll"
	"github.com/teamtrack-hq/teamtrack-backend/internal/pkg/validator"
)

type PayrollJobs struct {
	payrollService payroll.PayrollService

	mu           sync.Mutex
	lastRunMonth string
}

func NewPayrollJobs(payrollService payroll.PayrollService) *PayrollJobs {
	return &PayrollJobs{payrollService: payrollService}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("monthly_payroll_run", 1*time.Hour, j.RunMonthlyPayroll)
}

// RunMonthlyPayroll computes the previous month's payroll for all active
// employees on the first day of each month. The upsert honors per-record
// locks, so an extra run after a restart is harmless.
func (j *PayrollJobs) RunMonthlyPayroll(ctx context.Context) error {
	now := time.Now().UTC()

	// Only run in the early hours of the 1st (02:00-02:59 UTC)
	if now.Day() != 1 || now.Hour() != 2 {
		return nil
	}

	targetMonth := validator.PreviousMonth(now)

	j.mu.Lock()
	if j.lastRunMonth == targetMonth {
		j.mu.Unlock()
		return nil
	}
	j.lastRunMonth = targetMonth
	j.mu.Unlock()

	slog.Info("Cron: Starting monthly payroll run", "month", targetMonth)

	result, err := j.payrollService.Compute(ctx, payroll.ComputeRequest{
		Month: targetMonth,
		Actor: "scheduler",
	})
	if err != nil {
		return fmt.Errorf("monthly payroll run failed: %w", err)
	}

	failed := 0
	for _, r := range result.Results {
		if r.Error != "" {
			failed++
		}
	}

	slog.Info("Cron: Monthly payroll run completed",
		"month", targetMonth,
		"processed", result.TotalProcessed,
		"failed", failed)
	return nil
}
