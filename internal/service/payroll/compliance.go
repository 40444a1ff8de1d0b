package payroll

import (
	"sort"
	"time"

	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/adjustment"
	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/timesheet"
)

// submissionGrace is how long an employee has to file a timesheet entry for
// an assigned task before the day is penalized.
const submissionGrace = 24 * time.Hour

// detectTimesheetViolations cross-references task assignments against
// submitted timesheet entries. A task past the grace window with no entry
// referencing it (by task id, or by title on the assignment date) and no
// approved waiver for that exact date marks the date as penalized.
//
// A penalized date costs a full day's rate AND drops that date's attendance
// record from the effective set, so the day's pay is lost as well. The
// double effect is deliberate.
func detectTimesheetViolations(tasks []timesheet.Task, entries []timesheet.Entry, waivers map[string]bool, now time.Time) []string {
	penalized := make(map[string]bool)

	for _, task := range tasks {
		if now.Sub(task.AssignedAt) <= submissionGrace {
			continue
		}
		date := task.AssignedAt.Format("2006-01-02")
		if hasSubmission(task, date, entries) {
			continue
		}
		if waivers[date] {
			continue
		}
		penalized[date] = true
	}

	if len(penalized) == 0 {
		return nil
	}
	dates := make([]string, 0, len(penalized))
	for d := range penalized {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

func hasSubmission(task timesheet.Task, date string, entries []timesheet.Entry) bool {
	for _, e := range entries {
		if e.TaskID != nil && *e.TaskID == task.ID {
			return true
		}
		if e.Title == task.Title && e.Date == date {
			return true
		}
	}
	return false
}

// waiverDates collects the dates of approved penalty_waiver adjustments.
// Waivers nullify detected penalties by exact date match and never alter
// totals themselves.
func waiverDates(adjustments []adjustment.Record) map[string]bool {
	waivers := make(map[string]bool)
	for _, adj := range adjustments {
		if adj.Status == adjustment.StatusApproved && adj.Type == adjustment.TypePenaltyWaiver {
			waivers[adj.Date] = true
		}
	}
	return waivers
}
