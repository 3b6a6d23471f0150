package dto

// Variant names, used as log attributes and metric labels.
const (
	VariantExplorer = "apac"
	VariantTokyo    = "tokyo"
)

// ExplorerQuery is the raw APAC explorer selection as sent in the query string.
// Empty fields fall back to defaults during resolution.
type ExplorerQuery struct {
	Country  string `query:"country" validate:"omitempty,max=100"`
	City     string `query:"city" validate:"omitempty,max=100"`
	MenuItem string `query:"menu_item" validate:"omitempty,max=200"`
	Metric   string `query:"metric" validate:"omitempty,oneof=avg_temp_f avg_precip_in avg_snowdepth_in max_wind_mph"`
	From     string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To       string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

type TokyoQuery struct {
	MenuItem string `query:"menu_item" validate:"omitempty,max=200"`
	Metric   string `query:"metric" validate:"omitempty,oneof=avg_temp_f avg_precip_in avg_snowdepth_in max_wind_mph"`
}
