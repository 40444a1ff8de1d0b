package payroll

import "errors"

var (
	ErrInvalidMonth         = errors.New("month must be in YYYY-MM format")
	ErrRecordNotFound       = errors.New("payroll record not found")
	ErrRecordLocked         = errors.New("payroll record is locked")
	ErrRecordAlreadyPaid    = errors.New("payroll record already paid, cannot modify")
	ErrRecordConflict       = errors.New("payroll record already exists for this month")
	ErrInvalidStatusChange  = errors.New("invalid payroll status transition")
	ErrNoEmployeesToProcess = errors.New("no active employees to process")
)
