package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/GregMSThompson/sales-weather/internal/errs"
	"github.com/GregMSThompson/sales-weather/internal/metrics"
	"github.com/GregMSThompson/sales-weather/pkg/logger"
)

// observe records latency and outcome for one warehouse query and logs failures.
func observe(ctx context.Context, source, query string, start time.Time, rows int, err error) {
	metrics.SourceQueryLatency.WithLabelValues(query).Observe(time.Since(start).Seconds())
	log := logger.FromContext(ctx)
	if err != nil {
		metrics.SourceQueriesTotal.WithLabelValues(query, "error").Inc()
		log.Error("warehouse query failed", "source", source, "query", query, "error", err)
		return
	}
	metrics.SourceQueriesTotal.WithLabelValues(query, "ok").Inc()
	log.Debug("warehouse query complete", "source", source, "query", query, "rows", rows,
		"elapsed_ms", time.Since(start).Milliseconds())
}

func sourceErr(source, query string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewDataSourceError(source, query, err)
}

// dateOf accepts the shapes drivers hand back for a DATE column.
func dateOf(v any) (civil.Date, error) {
	switch d := v.(type) {
	case time.Time:
		return civil.DateOf(d.UTC()), nil
	case string:
		return parseDate(d)
	case []byte:
		return parseDate(string(d))
	default:
		return civil.Date{}, fmt.Errorf("unsupported date value %T", v)
	}
}

func parseDate(s string) (civil.Date, error) {
	if len(s) > 10 {
		s = s[:10]
	}
	return civil.ParseDate(s)
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
