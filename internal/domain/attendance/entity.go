package attendance

import "time"

// Status enum - attendance statuses as captured by the attendance subsystem.
type Status string

const (
	StatusPresent      Status = "present"
	StatusCheckedOut   Status = "checked_out"
	StatusWorkFromHome Status = "work_from_home"
	StatusAbsent       Status = "absent"
	StatusHalfDay      Status = "half_day"
	StatusLeave        Status = "leave"
	StatusSickLeave    Status = "sick_leave"
	StatusCasualLeave  Status = "casual_leave"
	StatusWeekoff      Status = "weekoff"
	StatusHoliday      Status = "holiday"
)

// IsWorking reports whether the status counts as a worked day for
// check-in/check-out timing evaluation.
func (s Status) IsWorking() bool {
	return s == StatusPresent || s == StatusCheckedOut || s == StatusWorkFromHome
}

// IsPaidLeave reports whether the status is a paid leave bucket.
func (s Status) IsPaidLeave() bool {
	return s == StatusLeave || s == StatusSickLeave || s == StatusCasualLeave
}

// Record - one attendance record per employee per date. The payroll engine
// only reads these; capture and de-duplication happen upstream.
type Record struct {
	ID              string
	EmployeeID      string
	Date            string // YYYY-MM-DD
	Status          Status
	CheckIn         *time.Time
	CheckOut        *time.Time
	IsLate          bool
	LateMinutes     int
	IsEarlyCheckout bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
