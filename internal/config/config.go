package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Source backends understood by bootstrap.
const (
	SourcePostgres  = "postgres"
	SourceSQLite    = "sqlite"
	SourceFirestore = "firestore"
)

type Config struct {
	Port      string
	LogLevel  string
	ProjectID string

	Source             string
	WarehouseDSN       string
	WarehouseDSNSecret string
	SQLitePath         string

	SalesWeatherView string
	JapanSalesTable  string

	FirestoreDatabase               string
	FirestoreSalesWeatherCollection string
	FirestoreJapanSalesCollection   string

	Cities         []string
	Years          []int
	WeatherCity    string
	WeatherCountry string
	WeatherYear    int
	WeatherMonth   int
	DefaultCountry string
}

func New() *Config {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env", "error", err)
	}

	return &Config{
		Port:      getenvDefault("PORT", "8080"),
		LogLevel:  os.Getenv("LOGLEVEL"),
		ProjectID: os.Getenv("PROJECTID"),

		Source:             getSource(os.Getenv("SOURCE")),
		WarehouseDSN:       os.Getenv("WAREHOUSE_DSN"),
		WarehouseDSNSecret: os.Getenv("WAREHOUSE_DSN_SECRET"),
		SQLitePath:         getenvDefault("SQLITE_PATH", "data/warehouse.db"),

		SalesWeatherView: getenvDefault("SALES_WEATHER_VIEW", "analytics.daily_sales_by_weather_v"),
		JapanSalesTable:  getenvDefault("JAPAN_SALES_TABLE", "analytics.japan_menu_item_sales_feb_2022"),

		FirestoreDatabase:               os.Getenv("FIRESTORE_DATABASE"),
		FirestoreSalesWeatherCollection: getenvDefault("FIRESTORE_SALES_WEATHER_COLLECTION", "daily_sales_by_weather"),
		FirestoreJapanSalesCollection:   getenvDefault("FIRESTORE_JAPAN_SALES_COLLECTION", "japan_menu_item_sales_feb_2022"),

		Cities:         getenvList("CITIES", []string{"Mumbai", "Delhi", "Tokyo", "Seoul", "Sydney", "Melbourne"}),
		Years:          getenvInts("YEARS", []int{2022, 2023}),
		WeatherCity:    getenvDefault("WEATHER_CITY", "Tokyo"),
		WeatherCountry: getenvDefault("WEATHER_COUNTRY", "Japan"),
		WeatherYear:    getenvInt("WEATHER_YEAR", 2022),
		WeatherMonth:   getenvInt("WEATHER_MONTH", 2),
		DefaultCountry: getenvDefault("DEFAULT_COUNTRY", "Japan"),
	}
}

func getSource(src string) string {
	switch strings.ToLower(src) {
	case SourcePostgres:
		return SourcePostgres
	case SourceFirestore:
		return SourceFirestore
	default: // "sqlite"
		return SourceSQLite
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func getenvInts(key string, def []int) []int {
	parts := getenvList(key, nil)
	if parts == nil {
		return def
	}
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return def
		}
		out = append(out, n)
	}
	return out
}
