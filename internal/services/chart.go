package services

import (
	"fmt"

	"github.com/GregMSThompson/sales-weather/internal/dto"
	"github.com/GregMSThompson/sales-weather/internal/models"
)

const (
	salesColor   = "#1f77b4"
	weatherColor = "#ff7f0e"

	fieldDate  = "date"
	fieldSales = "total_sales"

	chartHeight = 450
	dateFormat  = "%Y-%m-%d"
)

func chartTitle(city, country, menuItem string) string {
	return fmt.Sprintf("%s, %s - %s", city, country, menuItem)
}

// buildChart renders daily aggregates as a layered Vega-Lite spec: sales on
// the left axis, the weather metric dashed on the right. The two y scales
// are resolved independently and neither declares a domain.
func buildChart(daily []models.DailyAggregate, metric models.WeatherMetric, title string) dto.ChartSpec {
	weatherField := string(metric)
	label := metric.Label()

	values := make([]map[string]any, 0, len(daily))
	for _, d := range daily {
		var w any
		if d.MeanWeather != nil {
			w = *d.MeanWeather
		}
		values = append(values, map[string]any{
			fieldDate:    d.Date.String(),
			fieldSales:   d.TotalSales,
			weatherField: w,
		})
	}

	tooltip := func() []dto.FieldDef {
		return []dto.FieldDef{
			{Field: fieldDate, Type: "temporal", Title: dto.HeaderDate, Format: dateFormat},
			{Field: fieldSales, Type: "quantitative", Title: "売上", Format: "$,.0f"},
			{Field: weatherField, Type: "quantitative", Title: label, Format: ".1f"},
		}
	}

	sales := dto.Layer{Layer: []dto.Layer{
		{
			Mark: &dto.Mark{Type: "line", Color: salesColor, StrokeWidth: 2},
			Encoding: &dto.Encoding{Y: &dto.FieldDef{
				Field: fieldSales,
				Type:  "quantitative",
				Title: dto.HeaderSales,
				Axis:  &dto.Axis{Title: dto.HeaderSales, TitleColor: salesColor, Orient: "left"},
			}},
		},
		{
			Mark: &dto.Mark{Type: "circle", Color: salesColor, Size: 50},
			Encoding: &dto.Encoding{
				Y:       &dto.FieldDef{Field: fieldSales, Type: "quantitative"},
				Tooltip: tooltip(),
			},
		},
	}}

	weather := dto.Layer{Layer: []dto.Layer{
		{
			Mark: &dto.Mark{Type: "line", Color: weatherColor, StrokeWidth: 2, StrokeDash: []float64{5, 5}},
			Encoding: &dto.Encoding{Y: &dto.FieldDef{
				Field: weatherField,
				Type:  "quantitative",
				Title: label,
				Axis:  &dto.Axis{Title: label, TitleColor: weatherColor, Orient: "right"},
			}},
		},
		{
			Mark: &dto.Mark{Type: "circle", Color: weatherColor, Size: 50},
			Encoding: &dto.Encoding{
				Y:       &dto.FieldDef{Field: weatherField, Type: "quantitative"},
				Tooltip: tooltip(),
			},
		},
	}}

	return dto.ChartSpec{
		Schema: dto.VegaLiteSchema,
		Title:  title,
		Width:  "container",
		Height: chartHeight,
		Data:   dto.ChartData{Values: values},
		Encoding: &dto.Encoding{X: &dto.FieldDef{
			Field: fieldDate,
			Type:  "temporal",
			Title: dto.HeaderDate,
			Axis:  &dto.Axis{Title: dto.HeaderDate, Format: dateFormat},
		}},
		Layer:   []dto.Layer{sales, weather},
		Resolve: &dto.Resolve{Scale: map[string]string{"y": "independent"}},
	}
}

// legend describes the two series drawn by buildChart.
func legend() []dto.LegendEntry {
	return []dto.LegendEntry{
		{Swatch: salesColor, Label: "青色の実線", Series: dto.HeaderSales},
		{Swatch: weatherColor, Label: "オレンジの破線", Series: "天気指標"},
	}
}
