package store

import (
	"maps"
	"slices"

	"cloud.google.com/go/civil"

	"github.com/GregMSThompson/sales-weather/internal/models"
	"github.com/GregMSThompson/sales-weather/pkg/helpers"
)

// weatherMeansByDate collapses per-row weather readings into one record per
// date, averaging each field over its non-null values like SQL AVG does.
func weatherMeansByDate(rows []models.SalesWeatherRecord) []models.WeatherRecord {
	type acc struct {
		temp, precip, snow, wind helpers.Mean
	}
	byDate := make(map[civil.Date]*acc)
	for _, r := range rows {
		a, ok := byDate[r.Date]
		if !ok {
			a = &acc{}
			byDate[r.Date] = a
		}
		a.temp.Add(r.AvgTempF)
		a.precip.Add(r.AvgPrecipIn)
		a.snow.Add(r.AvgSnowdepthIn)
		a.wind.Add(r.MaxWindMPH)
	}

	out := make([]models.WeatherRecord, 0, len(byDate))
	for _, date := range slices.SortedFunc(maps.Keys(byDate), helpers.CompareDates) {
		a := byDate[date]
		out = append(out, models.WeatherRecord{
			Date:           date,
			AvgTempF:       a.temp.Value(),
			AvgPrecipIn:    a.precip.Value(),
			AvgSnowdepthIn: a.snow.Value(),
			MaxWindMPH:     a.wind.Value(),
		})
	}
	return out
}
