package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/GregMSThompson/sales-weather/internal/dto"
	"github.com/GregMSThompson/sales-weather/internal/response"
	"github.com/GregMSThompson/sales-weather/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"isSelected": func(f dto.FilterControl, o dto.Option) bool {
			return f.Selected == o.Value
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

type navLink struct {
	Path   string
	Label  string
	Active bool
}

type pageError struct {
	Status  int
	Message string
}

type pageData struct {
	Path  string
	Nav   []navLink
	View  *dto.DashboardView
	Error *pageError
}

type pageHandlers struct {
	tmpl        *template.Template
	ExplorerSvc explorerService
	TokyoSvc    tokyoService
}

func NewPageHandlers(deps *Deps) *pageHandlers {
	return &pageHandlers{
		tmpl:        newTemplates(),
		ExplorerSvc: deps.ExplorerSvc,
		TokyoSvc:    deps.TokyoSvc,
	}
}

func (h *pageHandlers) Explorer(w http.ResponseWriter, r *http.Request) {
	var view dto.DashboardView
	q, err := parseExplorerQuery(r)
	if err == nil {
		view, err = h.ExplorerSvc.GetDashboard(r.Context(), q)
	}
	h.render(w, r, "/apac", view, err)
}

func (h *pageHandlers) Tokyo(w http.ResponseWriter, r *http.Request) {
	var view dto.DashboardView
	q, err := parseTokyoQuery(r)
	if err == nil {
		view, err = h.TokyoSvc.GetDashboard(r.Context(), q)
	}
	h.render(w, r, "/tokyo", view, err)
}

// render writes the dashboard page. A failed pipeline run renders an error
// banner with the classified status and never a chart.
func (h *pageHandlers) render(w http.ResponseWriter, r *http.Request, path string, view dto.DashboardView, err error) {
	data := pageData{
		Path: path,
		Nav: []navLink{
			{Path: "/apac", Label: "🌏 APAC Explorer", Active: path == "/apac"},
			{Path: "/tokyo", Label: "🗼 Tokyo 2022-02", Active: path == "/tokyo"},
		},
	}
	status := http.StatusOK
	if err != nil {
		c := response.Classify(err)
		response.LogError(r, c, err)
		status = c.Status
		data.Error = &pageError{Status: c.Status, Message: c.Message}
	} else {
		data.View = &view
		logger.FromContext(r.Context()).Debug("dashboard built",
			"path", path,
			"runId", view.RunID,
			"menuItem", view.Selected(dto.FilterMenuItem),
			"metric", view.Selected(dto.FilterMetric),
			"empty", view.Notice != "")
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "dashboard.html", data); err != nil {
		logger.FromContext(r.Context()).Error("failed to render page", "error", err, "path", path)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
