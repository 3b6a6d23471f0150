package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GregMSThompson/sales-weather/internal/errs"
	"github.com/GregMSThompson/sales-weather/internal/handlers"
	"github.com/GregMSThompson/sales-weather/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.MetricsMiddleware)

	pages := handlers.NewPageHandlers(deps)
	exh := handlers.NewExplorerHandlers(deps)
	tkh := handlers.NewTokyoHandlers(deps)
	hh := handlers.NewHealthHandlers(deps)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/apac", http.StatusFound)
	})
	r.Get("/apac", pages.Explorer)
	r.Get("/tokyo", pages.Tokyo)

	r.Mount("/api/apac", exh.ExplorerRoutes())
	r.Mount("/api/tokyo", tkh.TokyoRoutes())

	r.Get("/health", hh.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		deps.ResponseHandler.HandleError(w, r, errs.NewNotFoundError("no route for "+r.URL.Path))
	})
	return r
}
