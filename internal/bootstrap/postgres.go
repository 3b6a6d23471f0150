package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pingTimeout = 30 * time.Second

// InitPostgres opens a pool and waits for the warehouse to answer a ping.
func InitPostgres(ctx context.Context, dsn string, log *slog.Logger) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse warehouse dsn: %w", err)
	}
	pcfg.ConnConfig.RuntimeParams["application_name"] = "sales-weather"

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("open warehouse pool: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = pingTimeout
	notify := func(err error, wait time.Duration) {
		log.Warn("warehouse not reachable, retrying", "error", err, "wait", wait)
	}
	if err := backoff.RetryNotify(func() error { return pool.Ping(ctx) }, backoff.WithContext(bo, ctx), notify); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping warehouse: %w", err)
	}
	return pool, nil
}
