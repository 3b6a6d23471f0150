package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/GregMSThompson/sales-weather/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		LogLevel:         "error",
		Source:           config.SourceSQLite,
		SQLitePath:       filepath.Join(t.TempDir(), "warehouse.db"),
		SalesWeatherView: "daily_sales_by_weather_v",
		JapanSalesTable:  "japan_sales",
		Cities:           []string{"Tokyo"},
		Years:            []int{2022},
		WeatherCity:      "Tokyo",
		WeatherYear:      2022,
		WeatherMonth:     2,
	}
}

func TestRunSQLite(t *testing.T) {
	bs, err := Run(testConfig(t))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	defer bs.Close()

	if bs.Source == nil || bs.Log == nil {
		t.Fatalf("bootstrap incomplete: %+v", bs)
	}
	// empty database: the query fails but the source is wired
	if _, err := bs.Source.JapanSales(context.Background()); err == nil {
		t.Fatal("expected missing table error")
	}
}

func TestRunRejectsBadQueries(t *testing.T) {
	cfg := testConfig(t)
	cfg.SalesWeatherView = "sales; drop table x"

	bs, err := Run(cfg)
	if err == nil {
		bs.Close()
		t.Fatal("expected invalid table name error")
	}
	if bs.Log == nil {
		t.Fatal("logger must be set even when bootstrap fails")
	}
}

func TestPostgresNeedsDSN(t *testing.T) {
	cfg := testConfig(t)
	cfg.Source = config.SourcePostgres

	if _, err := Run(cfg); err == nil {
		t.Fatal("expected missing dsn error")
	}
}

func TestSecretVersionName(t *testing.T) {
	tests := []struct {
		secret string
		want   string
	}{
		{"warehouse-dsn", "projects/p1/secrets/warehouse-dsn/versions/latest"},
		{"projects/p2/secrets/x/versions/3", "projects/p2/secrets/x/versions/3"},
	}
	for _, tt := range tests {
		if got := secretVersionName("p1", tt.secret); got != tt.want {
			t.Errorf("secretVersionName(%q) = %q, want %q", tt.secret, got, tt.want)
		}
	}
}
