package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/teamtrack-hq/teamtrack-backend/internal/domain/payroll"
	"github.com/teamtrack-hq/teamtrack-backend/internal/handler/http/response"
	"github.com/teamtrack-hq/teamtrack-backend/internal/pkg/validator"
)

type PayrollHandler interface {
	Compute(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)

	Lock(w http.ResponseWriter, r *http.Request)
	Unlock(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)

	// TriggerScheduledRun computes the previous month for all employees.
	// Reached only through the internal-token route.
	TriggerScheduledRun(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// actorFromRequest reads the acting user id from the verified token claims.
// The engine itself never touches request state; the id is passed explicitly.
func actorFromRequest(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	userID, _ := claims["user_id"].(string)
	return userID
}

// ========== COMPUTATION ==========

func (h *payrollHandlerImpl) Compute(w http.ResponseWriter, r *http.Request) {
	var req payroll.ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.Actor = actorFromRequest(r)

	result, err := h.payrollService.Compute(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) TriggerScheduledRun(w http.ResponseWriter, r *http.Request) {
	req := payroll.ComputeRequest{
		Month: validator.PreviousMonth(time.Now()),
		Actor: "scheduler",
	}

	result, err := h.payrollService.Compute(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Scheduled payroll run completed", result)
}

// ========== RECORDS ==========

func (h *payrollHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	result, err := h.payrollService.GetRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	filter := payroll.ListFilter{
		Page:  1,
		Limit: 20,
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}
	if month := r.URL.Query().Get("month"); month != "" {
		if !validator.IsValidMonth(month) {
			response.BadRequest(w, "Month must be in YYYY-MM format", nil)
			return
		}
		filter.Month = &month
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}

	result, err := h.payrollService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int((result.TotalCount + int64(filter.Limit) - 1) / int64(filter.Limit))
	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}

func (h *payrollHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" || !validator.IsValidMonth(month) {
		response.BadRequest(w, "month is required in YYYY-MM format", nil)
		return
	}

	result, err := h.payrollService.GetSummary(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== WORKFLOW ==========

func (h *payrollHandlerImpl) Lock(w http.ResponseWriter, r *http.Request) {
	h.setLocked(w, r, true, "Payroll record locked")
}

func (h *payrollHandlerImpl) Unlock(w http.ResponseWriter, r *http.Request) {
	h.setLocked(w, r, false, "Payroll record unlocked")
}

func (h *payrollHandlerImpl) setLocked(w http.ResponseWriter, r *http.Request, locked bool, message string) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	result, err := h.payrollService.SetLocked(r.Context(), id, locked, actorFromRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

func (h *payrollHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	result, err := h.payrollService.Approve(r.Context(), id, actorFromRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record approved", result)
}

func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	result, err := h.payrollService.MarkPaid(r.Context(), id, actorFromRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record marked as paid", result)
}
