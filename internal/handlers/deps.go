package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/sales-weather/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	ExplorerSvc     explorerService
	TokyoSvc        tokyoService
}
