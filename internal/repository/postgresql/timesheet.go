package postgresql

import (
	"context"
	"fmt"

	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/timesheet"
	"github.com/teamtrack-hq/teamtrack-backend/internal/pkg/database"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepository{db: db}
}

func (r *timesheetRepository) GetTasksByMonth(ctx context.Context, month string) (map[string][]timesheet.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, title, assigned_at, created_at
		FROM tasks
		WHERE to_char(assigned_at, 'YYYY-MM') = $1
		ORDER BY employee_id, assigned_at
	`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make(map[string][]timesheet.Task)
	for rows.Next() {
		var t timesheet.Task
		if err := rows.Scan(&t.ID, &t.EmployeeID, &t.Title, &t.AssignedAt, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks[t.EmployeeID] = append(tasks[t.EmployeeID], t)
	}

	return tasks, nil
}

func (r *timesheetRepository) GetEntriesByMonth(ctx context.Context, month string) (map[string][]timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, task_id, title, to_char(date, 'YYYY-MM-DD'), minutes, created_at
		FROM timesheet_entries
		WHERE to_char(date, 'YYYY-MM') = $1
		ORDER BY employee_id, date
	`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheet entries: %w", err)
	}
	defer rows.Close()

	entries := make(map[string][]timesheet.Entry)
	for rows.Next() {
		var e timesheet.Entry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.TaskID, &e.Title, &e.Date, &e.Minutes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan timesheet entry: %w", err)
		}
		entries[e.EmployeeID] = append(entries[e.EmployeeID], e)
	}

	return entries, nil
}
