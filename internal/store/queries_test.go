package store

import (
	"strings"
	"testing"

	"cloud.google.com/go/civil"

	"github.com/GregMSThompson/sales-weather/internal/models"
	"github.com/GregMSThompson/sales-weather/pkg/helpers"
)

func TestQueriesValidate(t *testing.T) {
	if err := testQueries.Validate(); err != nil {
		t.Fatalf("expected valid queries, got %v", err)
	}

	bad := testQueries
	bad.SalesWeatherView = "view; DROP TABLE x"
	if err := bad.Validate(); err == nil {
		t.Fatal("expected injection-shaped table name to be rejected")
	}

	bad = testQueries
	bad.Cities = nil
	if err := bad.Validate(); err == nil {
		t.Fatal("expected empty city list to be rejected")
	}

	bad = testQueries
	bad.WeatherMonth = 13
	if err := bad.Validate(); err == nil {
		t.Fatal("expected invalid month to be rejected")
	}
}

func TestSalesWeatherSQLitePlaceholders(t *testing.T) {
	query, args := testQueries.salesWeatherSQLite()

	if !strings.Contains(query, "city_name IN (?,?)") {
		t.Fatalf("expected one placeholder per city: %s", query)
	}
	if len(args) != 4 {
		t.Fatalf("expected cities then years as args, got %v", args)
	}
	if !strings.Contains(query, "daily_sales > 0") {
		t.Fatal("expected positive-sales predicate")
	}
}

func TestWeatherMeansByDate(t *testing.T) {
	d1 := civil.Date{Year: 2022, Month: 2, Day: 1}
	d2 := civil.Date{Year: 2022, Month: 2, Day: 2}
	rows := []models.SalesWeatherRecord{
		{Date: d2, AvgTempF: helpers.Ptr(30.0)},
		{Date: d1, AvgTempF: helpers.Ptr(40.0), MaxWindMPH: helpers.Ptr(10.0)},
		{Date: d1, AvgTempF: helpers.Ptr(50.0)},
	}

	got := weatherMeansByDate(rows)

	if len(got) != 2 {
		t.Fatalf("expected two dates, got %d", len(got))
	}
	if got[0].Date != d1 || got[1].Date != d2 {
		t.Fatalf("expected chronological order, got %v, %v", got[0].Date, got[1].Date)
	}
	if *got[0].AvgTempF != 45 {
		t.Fatalf("mean mismatch: %v", *got[0].AvgTempF)
	}
	if got[0].MaxWindMPH == nil || *got[0].MaxWindMPH != 10 {
		t.Fatalf("wind should average only present values: %v", got[0].MaxWindMPH)
	}
	if got[1].AvgPrecipIn != nil {
		t.Fatalf("expected nil precipitation when no row has it")
	}
}
