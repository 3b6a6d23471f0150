package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/sales-weather/internal/dto"
	"github.com/GregMSThompson/sales-weather/internal/response"
)

type tokyoService interface {
	GetDashboard(ctx context.Context, q dto.TokyoQuery) (dto.DashboardView, error)
	GetChart(ctx context.Context, q dto.TokyoQuery) (dto.ChartSpec, error)
}

type tokyoHandlers struct {
	ResponseHandler response.ResponseHandler
	TokyoSvc        tokyoService
}

func NewTokyoHandlers(deps *Deps) *tokyoHandlers {
	return &tokyoHandlers{
		ResponseHandler: deps.ResponseHandler,
		TokyoSvc:        deps.TokyoSvc,
	}
}

func (h *tokyoHandlers) TokyoRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/dashboard", h.GetDashboard)
	r.Get("/chart", h.GetChart)
	return r
}

func (h *tokyoHandlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	q, err := parseTokyoQuery(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	view, err := h.TokyoSvc.GetDashboard(r.Context(), q)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *tokyoHandlers) GetChart(w http.ResponseWriter, r *http.Request) {
	q, err := parseTokyoQuery(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	spec, err := h.TokyoSvc.GetChart(r.Context(), q)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, spec)
}
