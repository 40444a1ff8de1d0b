package timesheet

import "context"

// TimesheetRepository reads task assignments and timesheet entries owned by
// the task-tracking subsystem.
type TimesheetRepository interface {
	// GetTasksByMonth returns tasks assigned within the month keyed by
	// employee id.
	GetTasksByMonth(ctx context.Context, month string) (map[string][]Task, error)
	// GetEntriesByMonth returns timesheet entries dated within the month
	// keyed by employee id.
	GetEntriesByMonth(ctx context.Context, month string) (map[string][]Entry, error)
}
