package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/GregMSThompson/sales-weather/internal/errs"
	"github.com/GregMSThompson/sales-weather/internal/metrics"
	"github.com/GregMSThompson/sales-weather/pkg/logger"
)

// startRun tags the request logger with a fresh run id and the variant.
func startRun(ctx context.Context, variant string) (*slog.Logger, context.Context, string) {
	runID := uuid.NewString()
	log, ctx := logger.With(ctx, "run_id", runID, "variant", variant)
	return log, ctx, runID
}

// finishRun records the outcome of a pipeline run.
func finishRun(log *slog.Logger, variant string, err error) {
	var empty *errs.EmptySelectionError
	switch {
	case err == nil:
		metrics.PipelineRunsTotal.WithLabelValues(variant, "ok").Inc()
		log.Info("pipeline run completed")
	case errors.As(err, &empty):
		metrics.PipelineRunsTotal.WithLabelValues(variant, "empty").Inc()
		log.Info("pipeline run produced no rows", "stage", empty.Stage)
	default:
		metrics.PipelineRunsTotal.WithLabelValues(variant, "error").Inc()
		log.Warn("pipeline run failed", "error", err)
	}
}

func isEmptySelection(err error) bool {
	var empty *errs.EmptySelectionError
	return errors.As(err, &empty)
}
