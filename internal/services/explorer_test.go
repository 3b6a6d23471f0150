package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/GregMSThompson/sales-weather/internal/dto"
	"github.com/GregMSThompson/sales-weather/internal/errs"
	"github.com/GregMSThompson/sales-weather/internal/models"
	"github.com/GregMSThompson/sales-weather/pkg/helpers"
)

type fakeSalesWeatherStore struct {
	rows  []models.SalesWeatherRecord
	err   error
	calls int
}

func (f *fakeSalesWeatherStore) SalesWeather(ctx context.Context) ([]models.SalesWeatherRecord, error) {
	f.calls++
	return f.rows, f.err
}

// januaryRamen adds a month of Tokyo ramen sales around January 2022.
func januaryRamen() []models.SalesWeatherRecord {
	rows := apacRows()
	for d := 1; d <= 31; d++ {
		rows = append(rows,
			sw(day(2022, 1, d), "Japan", "Tokyo", "Ramen", float64(10*d), helpers.Ptr(float64(30+d%7))),
			sw(day(2022, 1, d), "Japan", "Tokyo", "Ramen", 5, helpers.Ptr(float64(32+d%5))),
		)
	}
	rows = append(rows, sw(day(2021, 12, 31), "Japan", "Tokyo", "Ramen", 999, helpers.Ptr(30.0)))
	return rows
}

func TestExplorerEndToEndJanuaryRamen(t *testing.T) {
	rows := januaryRamen()
	svc := NewExplorerService(&fakeSalesWeatherStore{rows: rows}, "Japan")
	q := dto.ExplorerQuery{
		Country:  "Japan",
		City:     "Tokyo",
		MenuItem: "Ramen",
		Metric:   "avg_temp_f",
		From:     "2022-01-01",
		To:       "2022-01-31",
	}

	view, err := svc.GetDashboard(helpers.TestCtx(), q)
	if err != nil {
		t.Fatalf("GetDashboard error: %v", err)
	}

	var want float64
	for _, r := range rows {
		if r.Country == "Japan" && r.City == "Tokyo" && r.MenuItem == "Ramen" &&
			r.Date.Year == 2022 && r.Date.Month == 1 {
			want += r.DailySales
		}
	}

	if view.Notice != "" {
		t.Fatalf("unexpected notice: %q", view.Notice)
	}
	if view.Summary == nil || view.Summary.Days > 31 {
		t.Fatalf("expected at most 31 date points: %+v", view.Summary)
	}
	if math.Abs(view.Summary.TotalSales-want) > 1e-9 {
		t.Fatalf("total sales mismatch: got %v want %v", view.Summary.TotalSales, want)
	}
	if view.Chart == nil || len(view.Chart.Layer) != 2 || view.Chart.Resolve.Scale["y"] != "independent" {
		t.Fatalf("expected an independently scaled two-layer chart: %+v", view.Chart)
	}
	if view.Chart.Title != "Tokyo, Japan - Ramen" {
		t.Fatalf("title mismatch: %q", view.Chart.Title)
	}
	if len(view.Table.Rows) != view.Summary.Days || len(view.Legend) != 2 {
		t.Fatalf("table/legend mismatch: %d rows, %d legend", len(view.Table.Rows), len(view.Legend))
	}
	if view.DateRange == nil || view.DateRange.Min != day(2021, 12, 31) || view.DateRange.To != day(2022, 1, 31) {
		t.Fatalf("date range mismatch: %+v", view.DateRange)
	}
	if view.LoadedRows != len(rows) {
		t.Fatalf("loaded rows mismatch: %d", view.LoadedRows)
	}
	if view.Selected(dto.FilterCity) != "Tokyo" || view.Selected(dto.FilterMetric) != "avg_temp_f" {
		t.Fatalf("selection mismatch: %+v", view.Filters)
	}
	if view.RunID == "" {
		t.Fatal("expected a run id")
	}
}

func TestExplorerEmptySelectionShowsNotice(t *testing.T) {
	// Ramen has rows on Jan 1, 2 and 15 and Feb 3; nothing in Jan 20..31.
	store := &fakeSalesWeatherStore{rows: apacRows()}
	svc := NewExplorerService(store, "Japan")
	q := dto.ExplorerQuery{Country: "Japan", City: "Tokyo", MenuItem: "Ramen", From: "2022-01-20", To: "2022-01-31"}

	view, err := svc.GetDashboard(helpers.TestCtx(), q)
	if err != nil {
		t.Fatalf("GetDashboard error: %v", err)
	}
	if view.Notice != dto.EmptySelectionNotice {
		t.Fatalf("expected empty notice, got %q", view.Notice)
	}
	if view.Chart != nil || view.Summary != nil || view.Table != nil {
		t.Fatal("expected no chart, summary or table")
	}
	if len(view.Filters) != 4 || view.DateRange == nil {
		t.Fatal("sidebar should be kept on an empty selection")
	}

	_, err = svc.GetChart(helpers.TestCtx(), q)
	var empty *errs.EmptySelectionError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptySelectionError from GetChart, got %v", err)
	}
}

func TestExplorerDataSourceErrorPropagates(t *testing.T) {
	dsErr := errs.NewDataSourceError("postgres", "sales_weather", errors.New("connection refused"))
	svc := NewExplorerService(&fakeSalesWeatherStore{err: dsErr}, "Japan")

	_, err := svc.GetDashboard(helpers.TestCtx(), dto.ExplorerQuery{})
	var got *errs.DataSourceError
	if !errors.As(err, &got) {
		t.Fatalf("expected DataSourceError, got %v", err)
	}

	_, err = svc.GetChart(helpers.TestCtx(), dto.ExplorerQuery{})
	if !errors.As(err, &got) {
		t.Fatalf("expected DataSourceError from GetChart, got %v", err)
	}
}

func TestExplorerValidationError(t *testing.T) {
	svc := NewExplorerService(&fakeSalesWeatherStore{rows: apacRows()}, "Japan")

	_, err := svc.GetDashboard(helpers.TestCtx(), dto.ExplorerQuery{From: "2022-03-01", To: "2022-01-01"})
	var vErr *errs.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestExplorerGetChartRepeatable(t *testing.T) {
	store := &fakeSalesWeatherStore{rows: apacRows()}
	svc := NewExplorerService(store, "Japan")
	q := dto.ExplorerQuery{Country: "Australia", City: "Melbourne", MenuItem: "Pie", Metric: "max_wind_mph"}

	first, err := svc.GetChart(helpers.TestCtx(), q)
	if err != nil {
		t.Fatalf("GetChart error: %v", err)
	}
	second, err := svc.GetChart(helpers.TestCtx(), q)
	if err != nil {
		t.Fatalf("GetChart error: %v", err)
	}
	if first.Title != "Melbourne, Australia - Pie" || first.Title != second.Title {
		t.Fatalf("title mismatch: %q / %q", first.Title, second.Title)
	}
	if len(first.Data.Values) != 1 || len(second.Data.Values) != 1 {
		t.Fatalf("expected one data point per run")
	}
	if store.calls != 2 {
		t.Fatalf("expected each run to read the source, got %d reads", store.calls)
	}
}
