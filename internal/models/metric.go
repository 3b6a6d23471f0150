package models

// WeatherMetric identifies one of the weather columns that can be charted
// against sales. The value doubles as the field name in chart data.
type WeatherMetric string

const (
	MetricAvgTempF       WeatherMetric = "avg_temp_f"
	MetricAvgPrecipIn    WeatherMetric = "avg_precip_in"
	MetricAvgSnowdepthIn WeatherMetric = "avg_snowdepth_in"
	MetricMaxWindMPH     WeatherMetric = "max_wind_mph"
)

// WeatherMetrics lists the selectable metrics in display order. The first is the default.
var WeatherMetrics = []WeatherMetric{
	MetricAvgTempF,
	MetricAvgPrecipIn,
	MetricAvgSnowdepthIn,
	MetricMaxWindMPH,
}

var metricLabels = map[WeatherMetric]string{
	MetricAvgTempF:       "🌡️ 気温 (°F)",
	MetricAvgPrecipIn:    "🌧️ 降水量 (inches)",
	MetricAvgSnowdepthIn: "❄️ 積雪深 (inches)",
	MetricMaxWindMPH:     "💨 最大風速 (mph)",
}

// Label is the localized display label for the metric.
func (m WeatherMetric) Label() string {
	if l, ok := metricLabels[m]; ok {
		return l
	}
	return string(m)
}

func (m WeatherMetric) Valid() bool {
	_, ok := metricLabels[m]
	return ok
}
