package store

import (
	"fmt"
	"regexp"
	"strings"
)

// Query names, used for cache keys, metrics labels and DataSourceError.
const (
	QuerySalesWeather = "sales_weather"
	QueryJapanSales   = "japan_sales"
	QueryTokyoWeather = "tokyo_weather"
)

const salesWeatherColumns = `date, city_name, country_desc, daily_sales, menu_item_name,
	avg_temp_fahrenheit, avg_precipitation_inches, avg_snowdepth_inches, max_wind_speed_mph`

const weatherAverages = `AVG(avg_temp_fahrenheit), AVG(avg_precipitation_inches),
	AVG(avg_snowdepth_inches), AVG(max_wind_speed_mph)`

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// Queries holds the fixed parameters of the two dashboard query shapes.
// Table names are interpolated, so they are checked against identPattern.
type Queries struct {
	SalesWeatherView string
	JapanSalesTable  string

	Cities []string
	Years  []int

	WeatherCity  string
	WeatherYear  int
	WeatherMonth int
}

func (q Queries) Validate() error {
	for _, name := range []string{q.SalesWeatherView, q.JapanSalesTable} {
		if !identPattern.MatchString(name) {
			return fmt.Errorf("invalid table name %q", name)
		}
	}
	if len(q.Cities) == 0 {
		return fmt.Errorf("at least one city is required")
	}
	if len(q.Years) == 0 {
		return fmt.Errorf("at least one year is required")
	}
	if q.WeatherMonth < 1 || q.WeatherMonth > 12 {
		return fmt.Errorf("invalid weather month %d", q.WeatherMonth)
	}
	return nil
}

// params returns every value a query depends on, in a stable order.
func (q Queries) params(query string) []any {
	switch query {
	case QuerySalesWeather:
		return []any{q.SalesWeatherView, q.Cities, q.Years}
	case QueryJapanSales:
		return []any{q.JapanSalesTable}
	case QueryTokyoWeather:
		return []any{q.SalesWeatherView, q.WeatherCity, q.WeatherYear, q.WeatherMonth}
	default:
		return nil
	}
}

// ---- Postgres dialect ----

func (q Queries) salesWeatherPostgres() string {
	return fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE city_name = ANY($1)
		  AND EXTRACT(YEAR FROM date)::int = ANY($2)
		  AND daily_sales > 0`, salesWeatherColumns, q.SalesWeatherView)
}

func (q Queries) japanSalesPostgres() string {
	return fmt.Sprintf(`SELECT date, menu_item_name, order_total FROM %s`, q.JapanSalesTable)
}

func (q Queries) tokyoWeatherPostgres() string {
	return fmt.Sprintf(`
		SELECT date, %s
		FROM %s
		WHERE city_name = $1
		  AND EXTRACT(YEAR FROM date)::int = $2
		  AND EXTRACT(MONTH FROM date)::int = $3
		GROUP BY date
		ORDER BY date`, weatherAverages, q.SalesWeatherView)
}

// ---- SQLite dialect ----

func (q Queries) salesWeatherSQLite() (string, []any) {
	args := make([]any, 0, len(q.Cities)+len(q.Years))
	for _, c := range q.Cities {
		args = append(args, c)
	}
	for _, y := range q.Years {
		args = append(args, y)
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE city_name IN (%s)
		  AND CAST(strftime('%%Y', date) AS INTEGER) IN (%s)
		  AND daily_sales > 0`,
		salesWeatherColumns, q.SalesWeatherView, placeholders(len(q.Cities)), placeholders(len(q.Years)))
	return query, args
}

func (q Queries) japanSalesSQLite() string {
	return fmt.Sprintf(`SELECT date, menu_item_name, order_total FROM %s`, q.JapanSalesTable)
}

func (q Queries) tokyoWeatherSQLite() (string, []any) {
	query := fmt.Sprintf(`
		SELECT date, %s
		FROM %s
		WHERE city_name = ?
		  AND CAST(strftime('%%Y', date) AS INTEGER) = ?
		  AND CAST(strftime('%%m', date) AS INTEGER) = ?
		GROUP BY date
		ORDER BY date`, weatherAverages, q.SalesWeatherView)
	return query, []any{q.WeatherCity, q.WeatherYear, q.WeatherMonth}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
