package store

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5"

	"github.com/GregMSThompson/sales-weather/internal/models"
)

const sourcePostgres = "postgres"

// pgxQuerier is the slice of *pgxpool.Pool the source needs.
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads the dashboard tables from a Postgres-compatible warehouse.
type PostgresSource struct {
	db pgxQuerier
	q  Queries
}

func NewPostgresSource(db pgxQuerier, q Queries) *PostgresSource {
	return &PostgresSource{db: db, q: q}
}

func (s *PostgresSource) SalesWeather(ctx context.Context) (out []models.SalesWeatherRecord, err error) {
	start := time.Now()
	defer func() { observe(ctx, sourcePostgres, QuerySalesWeather, start, len(out), err) }()

	rows, err := s.db.Query(ctx, s.q.salesWeatherPostgres(), s.q.Cities, s.q.Years)
	if err != nil {
		return nil, sourceErr(sourcePostgres, QuerySalesWeather, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec  models.SalesWeatherRecord
			date time.Time
		)
		if err := rows.Scan(&date, &rec.City, &rec.Country, &rec.DailySales, &rec.MenuItem,
			&rec.AvgTempF, &rec.AvgPrecipIn, &rec.AvgSnowdepthIn, &rec.MaxWindMPH); err != nil {
			return nil, sourceErr(sourcePostgres, QuerySalesWeather, err)
		}
		rec.Date = civil.DateOf(date.UTC())
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, sourceErr(sourcePostgres, QuerySalesWeather, err)
	}
	return out, nil
}

func (s *PostgresSource) JapanSales(ctx context.Context) (out []models.SalesRecord, err error) {
	start := time.Now()
	defer func() { observe(ctx, sourcePostgres, QueryJapanSales, start, len(out), err) }()

	rows, err := s.db.Query(ctx, s.q.japanSalesPostgres())
	if err != nil {
		return nil, sourceErr(sourcePostgres, QueryJapanSales, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec  models.SalesRecord
			date time.Time
		)
		if err := rows.Scan(&date, &rec.MenuItem, &rec.OrderTotal); err != nil {
			return nil, sourceErr(sourcePostgres, QueryJapanSales, err)
		}
		rec.Date = civil.DateOf(date.UTC())
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, sourceErr(sourcePostgres, QueryJapanSales, err)
	}
	return out, nil
}

func (s *PostgresSource) TokyoWeather(ctx context.Context) (out []models.WeatherRecord, err error) {
	start := time.Now()
	defer func() { observe(ctx, sourcePostgres, QueryTokyoWeather, start, len(out), err) }()

	rows, err := s.db.Query(ctx, s.q.tokyoWeatherPostgres(), s.q.WeatherCity, s.q.WeatherYear, s.q.WeatherMonth)
	if err != nil {
		return nil, sourceErr(sourcePostgres, QueryTokyoWeather, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec  models.WeatherRecord
			date time.Time
		)
		if err := rows.Scan(&date, &rec.AvgTempF, &rec.AvgPrecipIn, &rec.AvgSnowdepthIn, &rec.MaxWindMPH); err != nil {
			return nil, sourceErr(sourcePostgres, QueryTokyoWeather, err)
		}
		rec.Date = civil.DateOf(date.UTC())
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, sourceErr(sourcePostgres, QueryTokyoWeather, err)
	}
	return out, nil
}
