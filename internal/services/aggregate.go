package services

import (
	"maps"
	"slices"

	"cloud.google.com/go/civil"

	"github.com/GregMSThompson/sales-weather/internal/errs"
	"github.com/GregMSThompson/sales-weather/internal/models"
	"github.com/GregMSThompson/sales-weather/pkg/helpers"
)

// Stages reported on EmptySelectionError.
const (
	stageFilter = "filter"
	stageJoin   = "join"
)

type dailyBucket struct {
	sales   float64
	weather helpers.Mean
}

// aggregateDaily groups rows by date, summing sales and averaging the chosen
// weather metric. The result is in chronological order.
func aggregateDaily(rows []models.SalesWeatherRecord, metric models.WeatherMetric) ([]models.DailyAggregate, error) {
	if len(rows) == 0 {
		return nil, errs.NewEmptySelectionError(stageFilter)
	}

	buckets := make(map[civil.Date]*dailyBucket)
	for _, r := range rows {
		b, ok := buckets[r.Date]
		if !ok {
			b = &dailyBucket{}
			buckets[r.Date] = b
		}
		b.sales += r.DailySales
		b.weather.Add(r.Weather(metric))
	}

	out := make([]models.DailyAggregate, 0, len(buckets))
	for _, d := range slices.SortedFunc(maps.Keys(buckets), helpers.CompareDates) {
		b := buckets[d]
		out = append(out, models.DailyAggregate{
			Date:        d,
			TotalSales:  b.sales,
			MeanWeather: b.weather.Value(),
		})
	}
	return out, nil
}

type dailySales struct {
	Date  civil.Date
	Total float64
}

// sumSalesByDate totals order lines per date, chronologically.
func sumSalesByDate(rows []models.SalesRecord) []dailySales {
	totals := make(map[civil.Date]float64)
	for _, r := range rows {
		totals[r.Date] += r.OrderTotal
	}
	out := make([]dailySales, 0, len(totals))
	for _, d := range slices.SortedFunc(maps.Keys(totals), helpers.CompareDates) {
		out = append(out, dailySales{Date: d, Total: totals[d]})
	}
	return out
}

// joinWeather inner-joins daily sales with per-date weather on exact date
// equality. Dates present on only one side are dropped.
func joinWeather(sales []dailySales, weather []models.WeatherRecord, metric models.WeatherMetric) ([]models.DailyAggregate, error) {
	byDate := make(map[civil.Date]models.WeatherRecord, len(weather))
	for _, w := range weather {
		byDate[w.Date] = w
	}

	out := make([]models.DailyAggregate, 0, min(len(sales), len(byDate)))
	for _, s := range sales {
		w, ok := byDate[s.Date]
		if !ok {
			continue
		}
		out = append(out, models.DailyAggregate{
			Date:        s.Date,
			TotalSales:  s.Total,
			MeanWeather: w.Weather(metric),
		})
	}
	if len(out) == 0 {
		return nil, errs.NewEmptySelectionError(stageJoin)
	}
	return out, nil
}

type dailySummary struct {
	TotalSales  float64
	MeanWeather *float64
	Days        int
}

// summarize computes the card figures. The weather figure is the mean of the
// daily means, not of the underlying rows.
func summarize(daily []models.DailyAggregate) dailySummary {
	var s dailySummary
	var w helpers.Mean
	for _, d := range daily {
		s.TotalSales += d.TotalSales
		w.Add(d.MeanWeather)
	}
	s.MeanWeather = w.Value()
	s.Days = len(daily)
	return s
}
