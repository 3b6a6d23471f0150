package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/sales-weather/internal/errs"
	"github.com/GregMSThompson/sales-weather/pkg/logger"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeDataSourceUnavailable = "data_source_unavailable"
	CodeEmptySelection        = "empty_selection"
	CodeInvalidInput          = "invalid_input"
	CodeNotFound              = "not_found"
	CodeInternal              = "internal_error"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Classification is how an error is presented to a client, whether as JSON
// or as an HTML error banner.
type Classification struct {
	Status  int
	Code    string
	Message string
	Level   slog.Level
}

// Classify maps an error onto its status code, public code and message.
// Wrapped errors are unwrapped; anything unrecognised is an internal error.
func Classify(err error) Classification {
	var (
		dsErr    *errs.DataSourceError
		emptyErr *errs.EmptySelectionError
		valErr   *errs.ValidationError
		nfErr    *errs.NotFoundError
	)
	switch {
	case errors.As(err, &dsErr):
		return Classification{http.StatusBadGateway, CodeDataSourceUnavailable,
			"The data source is currently unavailable", slog.LevelError}
	case errors.As(err, &emptyErr):
		return Classification{http.StatusNotFound, CodeEmptySelection, emptyErr.Message, slog.LevelWarn}
	case errors.As(err, &valErr):
		return Classification{http.StatusBadRequest, CodeInvalidInput, valErr.Message, slog.LevelWarn}
	case errors.As(err, &nfErr):
		return Classification{http.StatusNotFound, CodeNotFound, nfErr.Message, slog.LevelWarn}
	default:
		return Classification{http.StatusInternalServerError, CodeInternal,
			"An unexpected error occurred", slog.LevelError}
	}
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Code:    code,
		Message: message,
	}); err != nil {
		// Use context logger if encoding fails
		log := logger.FromContext(r.Context())
		log.Error("failed to encode error response", "error", err, "status", status, "code", code)
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	c := Classify(err)
	LogError(r, c, err)
	h.WriteError(w, r, c.Status, c.Code, c.Message)
}

// LogError logs err at the level its classification calls for.
func LogError(r *http.Request, c Classification, err error) {
	log := logger.FromContext(r.Context())
	attrs := []any{"error", err, "code", c.Code, "status", c.Status}

	var dsErr *errs.DataSourceError
	if errors.As(err, &dsErr) {
		attrs = append(attrs, "source", dsErr.Source, "query", dsErr.Query)
	}
	if c.Code == CodeInternal {
		attrs = append(attrs, "type", fmt.Sprintf("%T", err))
	}
	log.Log(r.Context(), c.Level, "request failed", attrs...)
}
