package models

import "cloud.google.com/go/civil"

// SalesWeatherRecord is one row of the daily sales-by-weather view: a menu
// item's sales in a city on a date, joined with that city's weather.
type SalesWeatherRecord struct {
	Date           civil.Date `json:"date"`
	City           string     `json:"city"`
	Country        string     `json:"country"`
	MenuItem       string     `json:"menuItem"`
	DailySales     float64    `json:"dailySales"`
	AvgTempF       *float64   `json:"avgTempF,omitempty"`
	AvgPrecipIn    *float64   `json:"avgPrecipIn,omitempty"`
	AvgSnowdepthIn *float64   `json:"avgSnowdepthIn,omitempty"`
	MaxWindMPH     *float64   `json:"maxWindMph,omitempty"`
}

// Weather returns the value of the given metric, or nil when the warehouse had none.
func (r SalesWeatherRecord) Weather(m WeatherMetric) *float64 {
	return pickMetric(m, r.AvgTempF, r.AvgPrecipIn, r.AvgSnowdepthIn, r.MaxWindMPH)
}

// SalesRecord is one order line from the Japan sales table.
type SalesRecord struct {
	Date       civil.Date `json:"date"`
	MenuItem   string     `json:"menuItem"`
	OrderTotal float64    `json:"orderTotal"`
}

// WeatherRecord holds the per-date weather means for a single city.
type WeatherRecord struct {
	Date           civil.Date `json:"date"`
	AvgTempF       *float64   `json:"avgTempF,omitempty"`
	AvgPrecipIn    *float64   `json:"avgPrecipIn,omitempty"`
	AvgSnowdepthIn *float64   `json:"avgSnowdepthIn,omitempty"`
	MaxWindMPH     *float64   `json:"maxWindMph,omitempty"`
}

func (r WeatherRecord) Weather(m WeatherMetric) *float64 {
	return pickMetric(m, r.AvgTempF, r.AvgPrecipIn, r.AvgSnowdepthIn, r.MaxWindMPH)
}

// DailyAggregate is one charted point: total sales and the mean of the selected
// weather metric for a date. MeanWeather is nil when no source row had a value.
type DailyAggregate struct {
	Date        civil.Date `json:"date"`
	TotalSales  float64    `json:"totalSales"`
	MeanWeather *float64   `json:"meanWeather"`
}

func pickMetric(m WeatherMetric, temp, precip, snow, wind *float64) *float64 {
	switch m {
	case MetricAvgTempF:
		return temp
	case MetricAvgPrecipIn:
		return precip
	case MetricAvgSnowdepthIn:
		return snow
	case MetricMaxWindMPH:
		return wind
	default:
		return nil
	}
}
