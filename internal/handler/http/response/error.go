package response

import (
	"errors"
	"net/http"

	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/employee"
	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/payroll"
	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/policy"
	"github.com/teamtrack-hq/teamtrack-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidMonth):
		BadRequest(w, "Month must be in YYYY-MM format", nil)
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrRecordLocked):
		Conflict(w, "Payroll record is locked")
	case errors.Is(err, payroll.ErrRecordAlreadyPaid):
		Conflict(w, "Payroll record is already paid")
	case errors.Is(err, payroll.ErrInvalidStatusChange):
		Conflict(w, "Status change not allowed from the record's current status")
	case errors.Is(err, payroll.ErrRecordConflict):
		Conflict(w, "Payroll record was modified concurrently")
	case errors.Is(err, payroll.ErrNoEmployeesToProcess):
		BadRequest(w, "No active employees to process", nil)

	// Policy domain errors
	case errors.Is(err, policy.ErrPolicyNotFound):
		NotFound(w, "Compensation policy not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
