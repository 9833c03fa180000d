package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/legalparams"
	"github.com/nexo-seguridad/nexo-backend-go/internal/handler/http/response"
	"github.com/nexo-seguridad/nexo-backend-go/internal/pkg/validator"
)

type LegalParamsHandler interface {
	GetActiveVersion(w http.ResponseWriter, r *http.Request)
	GetVersion(w http.ResponseWriter, r *http.Request)
	GetVersionByDate(w http.ResponseWriter, r *http.Request)
	ListVersions(w http.ResponseWriter, r *http.Request)
	GetCurrentIndexes(w http.ResponseWriter, r *http.Request)
}

type legalParamsHandlerImpl struct {
	service legalparams.LegalParamsService
}

func NewLegalParamsHandler(service legalparams.LegalParamsService) LegalParamsHandler {
	return &legalParamsHandlerImpl{service: service}
}

func (h *legalParamsHandlerImpl) GetActiveVersion(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetActiveVersion(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *legalParamsHandlerImpl) GetVersion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Version ID is required", nil)
		return
	}

	result, err := h.service.GetVersion(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *legalParamsHandlerImpl) GetVersionByDate(w http.ResponseWriter, r *http.Request) {
	date, ok := validator.IsValidDate(r.URL.Query().Get("date"))
	if !ok {
		response.BadRequest(w, "Query parameter 'date' must be a YYYY-MM-DD date", nil)
		return
	}

	result, err := h.service.GetVersionByDate(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *legalParamsHandlerImpl) ListVersions(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListVersions(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *legalParamsHandlerImpl) GetCurrentIndexes(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetCurrentIndexes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
