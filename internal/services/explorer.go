package services

import (
	"context"

	"github.com/GregMSThompson/sales-weather/internal/dto"
	"github.com/GregMSThompson/sales-weather/internal/models"
)

type salesWeatherStore interface {
	SalesWeather(ctx context.Context) ([]models.SalesWeatherRecord, error)
}

type explorerService struct {
	src            salesWeatherStore
	defaultCountry string
}

func NewExplorerService(src salesWeatherStore, defaultCountry string) *explorerService {
	return &explorerService{src: src, defaultCountry: defaultCountry}
}

type explorerRun struct {
	loaded int
	res    explorerResolution
	daily  []models.DailyAggregate
}

func (s *explorerService) run(ctx context.Context, q dto.ExplorerQuery) (explorerRun, error) {
	var r explorerRun
	rows, err := s.src.SalesWeather(ctx)
	if err != nil {
		return r, err
	}
	r.loaded = len(rows)

	r.res, err = resolveExplorer(rows, q, s.defaultCountry)
	if err != nil {
		return r, err
	}
	r.daily, err = aggregateDaily(r.res.rows, r.res.selection.Metric)
	return r, err
}

// GetDashboard runs the APAC pipeline and assembles the full page view. An
// empty selection is not an error here: the view carries a notice instead of
// a chart.
func (s *explorerService) GetDashboard(ctx context.Context, q dto.ExplorerQuery) (dto.DashboardView, error) {
	log, ctx, runID := startRun(ctx, dto.VariantExplorer)

	r, err := s.run(ctx, q)
	finishRun(log, dto.VariantExplorer, err)
	if err != nil && !isEmptySelection(err) {
		return dto.DashboardView{}, err
	}

	sel := r.res.selection
	view := dto.DashboardView{
		Variant:       dto.VariantExplorer,
		RunID:         runID,
		Heading:       "📊 Daily Sales & Weather Analysis",
		LoadedRows:    r.loaded,
		LoadedMessage: loadedMessage(r.loaded),
		Filters: []dto.FilterControl{
			{Name: dto.FilterCountry, Label: "🌍 国を選択", Options: dto.PlainOptions(r.res.countries), Selected: sel.Country},
			{Name: dto.FilterCity, Label: "🏙️ 都市を選択", Options: dto.PlainOptions(r.res.cities), Selected: sel.City},
			{Name: dto.FilterMenuItem, Label: "🍽️ メニューアイテムを選択", Options: dto.PlainOptions(r.res.menuItems), Selected: sel.MenuItem},
			{Name: dto.FilterMetric, Label: "🌤️ 天気指標を選択", Options: dto.MetricOptions(), Selected: string(sel.Metric)},
		},
		Info: []string{"📍 " + sel.Country + " - " + sel.City, "🍽️ " + sel.MenuItem},
	}
	if r.res.minDate != nil {
		view.DateRange = &dto.DateRange{
			Label: "📅 期間を選択",
			Min:   *r.res.minDate,
			Max:   *r.res.maxDate,
			From:  *sel.From,
			To:    *sel.To,
		}
	}
	if err != nil {
		view.Notice = dto.EmptySelectionNotice
		return view, nil
	}

	fillResults(&view, r.daily, sel.Metric, sel.MenuItem, chartTitle(sel.City, sel.Country, sel.MenuItem))
	return view, nil
}

// GetChart runs the APAC pipeline and returns only the chart spec. An empty
// selection is returned as *errs.EmptySelectionError.
func (s *explorerService) GetChart(ctx context.Context, q dto.ExplorerQuery) (dto.ChartSpec, error) {
	log, ctx, _ := startRun(ctx, dto.VariantExplorer)

	r, err := s.run(ctx, q)
	finishRun(log, dto.VariantExplorer, err)
	if err != nil {
		return dto.ChartSpec{}, err
	}
	sel := r.res.selection
	return buildChart(r.daily, sel.Metric, chartTitle(sel.City, sel.Country, sel.MenuItem)), nil
}

func fillResults(view *dto.DashboardView, daily []models.DailyAggregate, metric models.WeatherMetric, menuItem, title string) {
	sum := summarize(daily)
	chart := buildChart(daily, metric, title)

	view.Subheading = subheading(menuItem, metric)
	view.Summary = &dto.Summary{
		TotalSales:  sum.TotalSales,
		MeanWeather: sum.MeanWeather,
		Days:        sum.Days,
		Cards:       summaryCards(sum, metric),
	}
	view.Chart = &chart
	view.Legend = legend()
	view.Table = dataTable(daily, metric)
}
