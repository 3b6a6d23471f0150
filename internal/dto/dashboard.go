package dto

// Fixed display strings.
const (
	EmptySelectionNotice = "選択した条件に該当するデータがありません。フィルター条件を変更してください。"
	LoadedMessageFormat  = "✅ %s 件のデータを読み込みました"

	HeaderDate  = "日付"
	HeaderSales = "売上 ($)"
)

type SummaryCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Summary holds the raw figures behind the three metric cards.
// MeanWeather is nil when no charted date had a value for the metric.
type Summary struct {
	TotalSales  float64       `json:"totalSales"`
	MeanWeather *float64      `json:"meanWeather"`
	Days        int           `json:"days"`
	Cards       []SummaryCard `json:"cards"`
}

type LegendEntry struct {
	Swatch string `json:"swatch"`
	Label  string `json:"label"`
	Series string `json:"series"`
}

type TableRow struct {
	Date    string `json:"date"`
	Sales   string `json:"sales"`
	Weather string `json:"weather"`
}

type Table struct {
	Headers []string   `json:"headers"`
	Rows    []TableRow `json:"rows"`
}

// DashboardView is everything one dashboard page shows. When the selection
// is empty Notice is set and Summary, Chart, Legend and Table are nil.
type DashboardView struct {
	Variant       string          `json:"variant"`
	RunID         string          `json:"runId"`
	Heading       string          `json:"heading"`
	LoadedRows    int             `json:"loadedRows"`
	LoadedMessage string          `json:"loadedMessage"`
	Filters       []FilterControl `json:"filters"`
	DateRange     *DateRange      `json:"dateRange,omitempty"`
	Info          []string        `json:"info"`
	Notice        string          `json:"notice,omitempty"`
	Subheading    string          `json:"subheading,omitempty"`
	Summary       *Summary        `json:"summary,omitempty"`
	Chart         *ChartSpec      `json:"chart,omitempty"`
	Legend        []LegendEntry   `json:"legend,omitempty"`
	Table         *Table          `json:"table,omitempty"`
}

// Selected returns the chosen value of the named filter, or "" when absent.
func (v DashboardView) Selected(name string) string {
	for _, f := range v.Filters {
		if f.Name == name {
			return f.Selected
		}
	}
	return ""
}
