package dto

import (
	"cloud.google.com/go/civil"

	"github.com/GregMSThompson/sales-weather/internal/models"
)

// Filter control names. They double as query string keys.
const (
	FilterCountry  = "country"
	FilterCity     = "city"
	FilterMenuItem = "menu_item"
	FilterMetric   = "metric"
)

// ExplorerSelection is the effective APAC explorer selection after defaults
// and clamping. From/To are nil when the narrowed table is empty.
type ExplorerSelection struct {
	Country  string               `json:"country"`
	City     string               `json:"city"`
	MenuItem string               `json:"menuItem"`
	Metric   models.WeatherMetric `json:"metric"`
	From     *civil.Date          `json:"from,omitempty"`
	To       *civil.Date          `json:"to,omitempty"`
}

type TokyoSelection struct {
	MenuItem string               `json:"menuItem"`
	Metric   models.WeatherMetric `json:"metric"`
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterControl is one sidebar dropdown: its valid options and the chosen value.
type FilterControl struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Options  []Option `json:"options"`
	Selected string   `json:"selected"`
}

// DateRange is the observed date span of the narrowed rows and the chosen window inside it.
type DateRange struct {
	Label string     `json:"label"`
	Min   civil.Date `json:"min"`
	Max   civil.Date `json:"max"`
	From  civil.Date `json:"from"`
	To    civil.Date `json:"to"`
}

// PlainOptions turns raw values into options labelled with themselves.
func PlainOptions(values []string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Value: v, Label: v})
	}
	return out
}

// MetricOptions lists every weather metric with its display label.
func MetricOptions() []Option {
	out := make([]Option, 0, len(models.WeatherMetrics))
	for _, m := range models.WeatherMetrics {
		out = append(out, Option{Value: string(m), Label: m.Label()})
	}
	return out
}
