package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/sales-weather/internal/dto"
	"github.com/GregMSThompson/sales-weather/internal/response"
)

type explorerService interface {
	GetDashboard(ctx context.Context, q dto.ExplorerQuery) (dto.DashboardView, error)
	GetChart(ctx context.Context, q dto.ExplorerQuery) (dto.ChartSpec, error)
}

type explorerHandlers struct {
	ResponseHandler response.ResponseHandler
	ExplorerSvc     explorerService
}

func NewExplorerHandlers(deps *Deps) *explorerHandlers {
	return &explorerHandlers{
		ResponseHandler: deps.ResponseHandler,
		ExplorerSvc:     deps.ExplorerSvc,
	}
}

func (h *explorerHandlers) ExplorerRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/dashboard", h.GetDashboard)
	r.Get("/chart", h.GetChart)
	return r
}

func (h *explorerHandlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	q, err := parseExplorerQuery(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	view, err := h.ExplorerSvc.GetDashboard(r.Context(), q)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

// GetChart returns only the Vega-Lite spec. An empty selection is a 404.
func (h *explorerHandlers) GetChart(w http.ResponseWriter, r *http.Request) {
	q, err := parseExplorerQuery(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	spec, err := h.ExplorerSvc.GetChart(r.Context(), q)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, spec)
}
