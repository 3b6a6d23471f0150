package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/sales-weather/internal/bootstrap"
	"github.com/GregMSThompson/sales-weather/internal/config"
	"github.com/GregMSThompson/sales-weather/internal/handlers"
	"github.com/GregMSThompson/sales-weather/internal/response"
	"github.com/GregMSThompson/sales-weather/internal/router"
	"github.com/GregMSThompson/sales-weather/internal/services"
	"github.com/GregMSThompson/sales-weather/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	cached := store.NewCachedSource(bs.Source, bs.Queries)

	// services
	exserv := services.NewExplorerService(cached, cfg.DefaultCountry)
	tkserv := services.NewTokyoService(cached, cfg.WeatherCity, cfg.WeatherCountry)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.ExplorerSvc = exserv
	deps.TokyoSvc = tkserv

	// router
	r := router.NewRouter(deps)
	bs.Log.Info("listening", "port", cfg.Port, "source", cfg.Source)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
