package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GregMSThompson/sales-weather/internal/config"
	"github.com/GregMSThompson/sales-weather/internal/models"
	"github.com/GregMSThompson/sales-weather/internal/store"
	"github.com/GregMSThompson/sales-weather/pkg/logger"
)

// Source is the uncached warehouse backend chosen by configuration.
type Source interface {
	SalesWeather(ctx context.Context) ([]models.SalesWeatherRecord, error)
	JapanSales(ctx context.Context) ([]models.SalesRecord, error)
	TokyoWeather(ctx context.Context) ([]models.WeatherRecord, error)
}

type Bootstrap struct {
	Log     *slog.Logger
	Queries store.Queries
	Source  Source

	closers []func()
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	slog.SetDefault(bs.Log)

	bs.Queries = QueriesFromConfig(cfg)
	if err := bs.Queries.Validate(); err != nil {
		return bs, fmt.Errorf("query configuration: %w", err)
	}

	switch cfg.Source {
	case config.SourcePostgres:
		dsn, err := warehouseDSN(applicationCtx, cfg)
		if err != nil {
			return bs, err
		}
		pool, err := InitPostgres(applicationCtx, dsn, bs.Log)
		if err != nil {
			return bs, err
		}
		bs.closers = append(bs.closers, pool.Close)
		bs.Source = store.NewPostgresSource(pool, bs.Queries)
	case config.SourceFirestore:
		client, err := InitFirestore(applicationCtx, cfg.ProjectID, cfg.FirestoreDatabase)
		if err != nil {
			return bs, err
		}
		bs.closers = append(bs.closers, func() { client.Close() })
		bs.Source = store.NewFirestoreSource(client, bs.Queries,
			cfg.FirestoreSalesWeatherCollection, cfg.FirestoreJapanSalesCollection)
	default:
		db, err := InitSQLite(cfg.SQLitePath, bs.Log)
		if err != nil {
			return bs, err
		}
		bs.closers = append(bs.closers, func() { db.Close() })
		bs.Source = store.NewSQLiteSource(db, bs.Queries)
	}

	bs.Log.Info("warehouse source ready", "source", cfg.Source)
	return bs, nil
}

func QueriesFromConfig(cfg *config.Config) store.Queries {
	return store.Queries{
		SalesWeatherView: cfg.SalesWeatherView,
		JapanSalesTable:  cfg.JapanSalesTable,
		Cities:           cfg.Cities,
		Years:            cfg.Years,
		WeatherCity:      cfg.WeatherCity,
		WeatherYear:      cfg.WeatherYear,
		WeatherMonth:     cfg.WeatherMonth,
	}
}

// Close releases backend connections in reverse order of acquisition.
func (bs *Bootstrap) Close() {
	for i := len(bs.closers) - 1; i >= 0; i-- {
		bs.closers[i]()
	}
	bs.closers = nil
}

func warehouseDSN(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.WarehouseDSN != "" {
		return cfg.WarehouseDSN, nil
	}
	if cfg.WarehouseDSNSecret == "" {
		return "", fmt.Errorf("postgres source needs WAREHOUSE_DSN or WAREHOUSE_DSN_SECRET")
	}
	return AccessSecret(ctx, cfg.ProjectID, cfg.WarehouseDSNSecret)
}
