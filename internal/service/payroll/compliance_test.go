package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/adjustment"
	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/timesheet"
)

var complianceNow = time.Date(2026, 4, 13, 9, 0, 0, 0, time.UTC)

func reportTask(id, date string) timesheet.Task {
	assigned, _ := time.Parse("2006-01-02 15:04", date+" 09:00")
	return timesheet.Task{ID: id, EmployeeID: "emp-1", Title: "Quarterly report", AssignedAt: assigned}
}

func TestDetectTimesheetViolations(t *testing.T) {
	taskID := "task-1"

	tests := []struct {
		name     string
		tasks    []timesheet.Task
		entries  []timesheet.Entry
		waivers  map[string]bool
		expected []string
	}{
		{
			name:     "no tasks yields nil",
			expected: nil,
		},
		{
			name:     "no submission past grace",
			tasks:    []timesheet.Task{reportTask(taskID, "2026-04-10")},
			expected: []string{"2026-04-10"},
		},
		{
			name:  "entry by task id",
			tasks: []timesheet.Task{reportTask(taskID, "2026-04-10")},
			entries: []timesheet.Entry{
				{TaskID: &taskID, Title: "something else", Date: "2026-04-11", Minutes: 120},
			},
			expected: nil,
		},
		{
			name:  "entry by title on assignment date",
			tasks: []timesheet.Task{reportTask(taskID, "2026-04-10")},
			entries: []timesheet.Entry{
				{Title: "Quarterly report", Date: "2026-04-10", Minutes: 60},
			},
			expected: nil,
		},
		{
			name:  "title match on wrong date does not count",
			tasks: []timesheet.Task{reportTask(taskID, "2026-04-10")},
			entries: []timesheet.Entry{
				{Title: "Quarterly report", Date: "2026-04-11", Minutes: 60},
			},
			expected: []string{"2026-04-10"},
		},
		{
			name:     "within grace window",
			tasks:    []timesheet.Task{reportTask(taskID, "2026-04-12")},
			expected: nil,
		},
		{
			name:     "waiver on exact date",
			tasks:    []timesheet.Task{reportTask(taskID, "2026-04-10")},
			waivers:  map[string]bool{"2026-04-10": true},
			expected: nil,
		},
		{
			name:     "waiver on different date",
			tasks:    []timesheet.Task{reportTask(taskID, "2026-04-10")},
			waivers:  map[string]bool{"2026-04-09": true},
			expected: []string{"2026-04-10"},
		},
		{
			name: "duplicate dates collapse",
			tasks: []timesheet.Task{
				reportTask("task-1", "2026-04-10"),
				reportTask("task-2", "2026-04-10"),
				reportTask("task-3", "2026-04-08"),
			},
			expected: []string{"2026-04-08", "2026-04-10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectTimesheetViolations(tt.tasks, tt.entries, tt.waivers, complianceNow)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWaiverDates(t *testing.T) {
	adjustments := []adjustment.Record{
		{Type: adjustment.TypePenaltyWaiver, Status: adjustment.StatusApproved, Date: "2026-04-10"},
		{Type: adjustment.TypePenaltyWaiver, Status: adjustment.StatusPending, Date: "2026-04-11"},
		{Type: adjustment.TypeBonus, Status: adjustment.StatusApproved, Date: "2026-04-12"},
	}

	waivers := waiverDates(adjustments)

	assert.Equal(t, map[string]bool{"2026-04-10": true}, waivers)
}
