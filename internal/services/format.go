package services

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/GregMSThompson/sales-weather/internal/dto"
	"github.com/GregMSThompson/sales-weather/internal/models"
)

var printer = message.NewPrinter(language.English)

func formatCurrency(v float64) string {
	return printer.Sprintf("$%.0f", v)
}

func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// formatWeather renders a metric value with one decimal, or "-" when missing.
func formatWeather(v *float64) string {
	if v == nil {
		return "-"
	}
	return printer.Sprintf("%.1f", *v)
}

func loadedMessage(n int) string {
	return fmt.Sprintf(dto.LoadedMessageFormat, formatCount(n))
}

func summaryCards(s dailySummary, metric models.WeatherMetric) []dto.SummaryCard {
	return []dto.SummaryCard{
		{Label: "💰 総売上", Value: formatCurrency(s.TotalSales)},
		{Label: "平均 " + metric.Label(), Value: formatWeather(s.MeanWeather)},
		{Label: "📊 データポイント数", Value: fmt.Sprintf("%d 日", s.Days)},
	}
}

func dataTable(daily []models.DailyAggregate, metric models.WeatherMetric) *dto.Table {
	t := &dto.Table{
		Headers: []string{dto.HeaderDate, dto.HeaderSales, metric.Label()},
		Rows:    make([]dto.TableRow, 0, len(daily)),
	}
	for _, d := range daily {
		t.Rows = append(t.Rows, dto.TableRow{
			Date:    d.Date.String(),
			Sales:   formatCurrency(d.TotalSales),
			Weather: formatWeather(d.MeanWeather),
		})
	}
	return t
}

func subheading(menuItem string, metric models.WeatherMetric) string {
	return fmt.Sprintf("📈 %s の売上と%sの推移", menuItem, metric.Label())
}
