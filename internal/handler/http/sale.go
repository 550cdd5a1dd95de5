package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/salesverse/salesverse-backend-go/internal/domain/sale"
	"github.com/salesverse/salesverse-backend-go/internal/handler/http/middleware"
	"github.com/salesverse/salesverse-backend-go/internal/handler/http/response"
)

type SaleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Edit(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListByDate(w http.ResponseWriter, r *http.Request)
}

type SaleHandlerImpl struct {
	saleService sale.SaleService
}

// Create implements SaleHandler.
func (h *SaleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustSession(r)

	var req sale.CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create sale decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = session.EmployeeID
	req.Timezone = session.Timezone

	result, err := h.saleService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create sale service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, mutationMessage(result, "Sale created"), result)
}

// Edit implements SaleHandler.
func (h *SaleHandlerImpl) Edit(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustSession(r)

	var req sale.EditSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Edit sale decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.EmployeeID = session.EmployeeID

	result, err := h.saleService.Edit(r.Context(), req)
	if err != nil {
		slog.Error("Edit sale service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, mutationMessage(result, "Sale updated"), result)
}

// Delete implements SaleHandler.
func (h *SaleHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustSession(r)

	req := sale.DeleteSaleRequest{
		ID:         chi.URLParam(r, "id"),
		EmployeeID: session.EmployeeID,
		EntryDate:  r.URL.Query().Get("entry_date"),
	}

	result, err := h.saleService.Delete(r.Context(), req)
	if err != nil {
		slog.Error("Delete sale service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, mutationMessage(result, "Sale deleted"), result)
}

// Get implements SaleHandler.
func (h *SaleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustSession(r)

	result, err := h.saleService.Get(r.Context(), chi.URLParam(r, "id"), session.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListMine implements SaleHandler.
func (h *SaleHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustSession(r)

	result, err := h.saleService.ListMine(r.Context(), session.EmployeeID)
	if err != nil {
		slog.Error("List sales service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessList(w, result)
}

// ListByDate implements SaleHandler.
func (h *SaleHandlerImpl) ListByDate(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustSession(r)

	result, err := h.saleService.ListByDate(r.Context(), session.EmployeeID, chi.URLParam(r, "date"))
	if err != nil {
		slog.Error("List sales by date service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessList(w, result)
}

// mutationMessage surfaces a stale-metrics warning in place of the usual message.
func mutationMessage(result sale.MutationResponse, fallback string) string {
	if result.MetricsStale {
		return result.Warning
	}
	return fallback
}

func NewSaleHandler(saleService sale.SaleService) SaleHandler {
	return &SaleHandlerImpl{
		saleService: saleService,
	}
}
