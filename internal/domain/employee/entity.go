package employee

import "time"

// Employee - directory entry. Payroll reads it for display names and the
// active roster only; employee CRUD lives in the directory subsystem.
type Employee struct {
	ID        string
	FullName  string
	Email     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
