package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/payroll"
	"github.com/nexo-seguridad/nexo-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	ComputeEmployerCost(w http.ResponseWriter, r *http.Request)
	SimulatePayslip(w http.ResponseWriter, r *http.Request)
	GetSimulation(w http.ResponseWriter, r *http.Request)
	ListSimulations(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	engine payroll.PayrollEngine
}

func NewPayrollHandler(engine payroll.PayrollEngine) PayrollHandler {
	return &payrollHandlerImpl{engine: engine}
}

func (h *payrollHandlerImpl) ComputeEmployerCost(w http.ResponseWriter, r *http.Request) {
	var req payroll.EmployerCostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.engine.ComputeEmployerCost(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) SimulatePayslip(w http.ResponseWriter, r *http.Request) {
	var req payroll.PayslipSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.engine.SimulatePayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetSimulation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Simulation ID is required", nil)
		return
	}

	result, err := h.engine.GetSimulation(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListSimulations(w http.ResponseWriter, r *http.Request) {
	filter := payroll.SimulationFilter{
		Page:  1,
		Limit: 20,
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if simType := r.URL.Query().Get("type"); simType != "" {
		filter.Type = &simType
	}

	result, err := h.engine.ListSimulations(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}
