package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GregMSThompson/sales-weather/internal/errs"
	"github.com/GregMSThompson/sales-weather/pkg/helpers"
)

type failingQuerier struct {
	lastSQL  string
	lastArgs []any
}

func (f *failingQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.lastSQL = sql
	f.lastArgs = args
	return nil, errors.New("connection refused")
}

func TestPostgresSourceWrapsQueryErrors(t *testing.T) {
	db := &failingQuerier{}
	src := NewPostgresSource(db, testQueries)

	_, err := src.TokyoWeather(helpers.TestCtx())

	var dsErr *errs.DataSourceError
	if !errors.As(err, &dsErr) {
		t.Fatalf("expected DataSourceError, got %T", err)
	}
	if dsErr.Source != "postgres" || dsErr.Query != QueryTokyoWeather {
		t.Fatalf("error metadata mismatch: %+v", dsErr)
	}
	if len(db.lastArgs) != 3 || db.lastArgs[0] != "Tokyo" || db.lastArgs[1] != 2022 || db.lastArgs[2] != 2 {
		t.Fatalf("args mismatch: %v", db.lastArgs)
	}
}

// stubRows serves JapanSales rows from memory.
type stubRows struct {
	dates []time.Time
	i     int
}

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return nil }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Values() ([]any, error)                       { return nil, nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func (r *stubRows) Next() bool {
	r.i++
	return r.i <= len(r.dates)
}

func (r *stubRows) Scan(dest ...any) error {
	*dest[0].(*time.Time) = r.dates[r.i-1]
	*dest[1].(*string) = "Ramen"
	*dest[2].(*float64) = 12.5
	return nil
}

type rowsQuerier struct{ rows pgx.Rows }

func (q rowsQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return q.rows, nil
}

func TestPostgresSourceConvertsDatesInUTC(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	rows := &stubRows{dates: []time.Time{
		time.Date(2022, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 3, 5, 23, 0, 0, 0, time.UTC).In(jst),
	}}
	src := NewPostgresSource(rowsQuerier{rows: rows}, testQueries)

	got, err := src.JapanSales(helpers.TestCtx())
	if err != nil {
		t.Fatalf("JapanSales error: %v", err)
	}
	want := []civil.Date{{Year: 2022, Month: 3, Day: 4}, {Year: 2022, Month: 3, Day: 5}}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Date != w {
			t.Errorf("row %d: expected %s, got %s", i, w, got[i].Date)
		}
	}
}

// Runs against a real warehouse when DATABASE_URL is set.
func TestPostgresSourceIntegration(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}
	ctx := helpers.TestCtx()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	q := testQueries
	q.SalesWeatherView = os.Getenv("SALES_WEATHER_VIEW")
	if q.SalesWeatherView == "" {
		t.Skip("SALES_WEATHER_VIEW not set")
	}
	rows, err := NewPostgresSource(pool, q).SalesWeather(ctx)
	if err != nil {
		t.Fatalf("SalesWeather error: %v", err)
	}
	for _, r := range rows {
		if r.DailySales <= 0 {
			t.Fatalf("non-positive sales row: %+v", r)
		}
	}
}
