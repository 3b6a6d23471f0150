package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/GregMSThompson/sales-weather/internal/models"
)

const sourceSQLite = "sqlite"

// SQLiteSource reads the dashboard tables from a local SQLite warehouse file.
// Dates are stored as YYYY-MM-DD text.
type SQLiteSource struct {
	db *sql.DB
	q  Queries
}

func NewSQLiteSource(db *sql.DB, q Queries) *SQLiteSource {
	return &SQLiteSource{db: db, q: q}
}

func (s *SQLiteSource) SalesWeather(ctx context.Context) (out []models.SalesWeatherRecord, err error) {
	start := time.Now()
	defer func() { observe(ctx, sourceSQLite, QuerySalesWeather, start, len(out), err) }()

	query, args := s.q.salesWeatherSQLite()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, sourceErr(sourceSQLite, QuerySalesWeather, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec                      models.SalesWeatherRecord
			date                     any
			temp, precip, snow, wind sql.NullFloat64
		)
		if err := rows.Scan(&date, &rec.City, &rec.Country, &rec.DailySales, &rec.MenuItem,
			&temp, &precip, &snow, &wind); err != nil {
			return nil, sourceErr(sourceSQLite, QuerySalesWeather, err)
		}
		if rec.Date, err = dateOf(date); err != nil {
			return nil, sourceErr(sourceSQLite, QuerySalesWeather, err)
		}
		rec.AvgTempF = nullable(temp)
		rec.AvgPrecipIn = nullable(precip)
		rec.AvgSnowdepthIn = nullable(snow)
		rec.MaxWindMPH = nullable(wind)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, sourceErr(sourceSQLite, QuerySalesWeather, err)
	}
	return out, nil
}

func (s *SQLiteSource) JapanSales(ctx context.Context) (out []models.SalesRecord, err error) {
	start := time.Now()
	defer func() { observe(ctx, sourceSQLite, QueryJapanSales, start, len(out), err) }()

	rows, err := s.db.QueryContext(ctx, s.q.japanSalesSQLite())
	if err != nil {
		return nil, sourceErr(sourceSQLite, QueryJapanSales, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec  models.SalesRecord
			date any
		)
		if err := rows.Scan(&date, &rec.MenuItem, &rec.OrderTotal); err != nil {
			return nil, sourceErr(sourceSQLite, QueryJapanSales, err)
		}
		if rec.Date, err = dateOf(date); err != nil {
			return nil, sourceErr(sourceSQLite, QueryJapanSales, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, sourceErr(sourceSQLite, QueryJapanSales, err)
	}
	return out, nil
}

func (s *SQLiteSource) TokyoWeather(ctx context.Context) (out []models.WeatherRecord, err error) {
	start := time.Now()
	defer func() { observe(ctx, sourceSQLite, QueryTokyoWeather, start, len(out), err) }()

	query, args := s.q.tokyoWeatherSQLite()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, sourceErr(sourceSQLite, QueryTokyoWeather, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec                      models.WeatherRecord
			date                     any
			temp, precip, snow, wind sql.NullFloat64
		)
		if err := rows.Scan(&date, &temp, &precip, &snow, &wind); err != nil {
			return nil, sourceErr(sourceSQLite, QueryTokyoWeather, err)
		}
		if rec.Date, err = dateOf(date); err != nil {
			return nil, sourceErr(sourceSQLite, QueryTokyoWeather, err)
		}
		rec.AvgTempF = nullable(temp)
		rec.AvgPrecipIn = nullable(precip)
		rec.AvgSnowdepthIn = nullable(snow)
		rec.MaxWindMPH = nullable(wind)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, sourceErr(sourceSQLite, QueryTokyoWeather, err)
	}
	return out, nil
}
