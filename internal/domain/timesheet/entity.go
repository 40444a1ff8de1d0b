package timesheet

import "time"

// Task - a work assignment created for an employee. Submission is expected
// within 24 hours of assignment.
type Task struct {
	ID         string
	EmployeeID string
	Title      string
	AssignedAt time.Time
	CreatedAt  time.Time
}

// Entry - a submitted timesheet line. It satisfies a task either by task id
// or by matching title on the same date.
type Entry struct {
	ID         string
	EmployeeID string
	TaskID     *string
	Title      string
	Date       string // YYYY-MM-DD
	Minutes    int
	CreatedAt  time.Time
}
