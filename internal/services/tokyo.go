package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/sales-weather/internal/dto"
	"github.com/GregMSThompson/sales-weather/internal/errs"
	"github.com/GregMSThompson/sales-weather/internal/models"
)

type tokyoStore interface {
	JapanSales(ctx context.Context) ([]models.SalesRecord, error)
	TokyoWeather(ctx context.Context) ([]models.WeatherRecord, error)
}

type tokyoService struct {
	src     tokyoStore
	city    string
	country string
}

// NewTokyoService builds the single-city pipeline. city and country only
// label the chart; the queries themselves are fixed by the store.
func NewTokyoService(src tokyoStore, city, country string) *tokyoService {
	return &tokyoService{src: src, city: city, country: country}
}

type tokyoRun struct {
	loaded int
	res    tokyoResolution
	daily  []models.DailyAggregate
}

func (s *tokyoService) run(ctx context.Context, q dto.TokyoQuery) (tokyoRun, error) {
	var r tokyoRun
	var sales []models.SalesRecord
	var weather []models.WeatherRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sales, err = s.src.JapanSales(gctx)
		return err
	})
	g.Go(func() (err error) {
		weather, err = s.src.TokyoWeather(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return r, err
	}
	r.loaded = len(sales)

	r.res = resolveTokyo(sales, q)
	if len(r.res.rows) == 0 {
		return r, errs.NewEmptySelectionError(stageFilter)
	}
	var err error
	r.daily, err = joinWeather(sumSalesByDate(r.res.rows), weather, r.res.selection.Metric)
	return r, err
}

func (s *tokyoService) title(menuItem string) string {
	return chartTitle(s.city, s.country, menuItem)
}

// GetDashboard runs the Tokyo pipeline: menu item sales summed per date and
// inner-joined with the city's daily weather.
func (s *tokyoService) GetDashboard(ctx context.Context, q dto.TokyoQuery) (dto.DashboardView, error) {
	log, ctx, runID := startRun(ctx, dto.VariantTokyo)

	r, err := s.run(ctx, q)
	finishRun(log, dto.VariantTokyo, err)
	if err != nil && !isEmptySelection(err) {
		return dto.DashboardView{}, err
	}

	sel := r.res.selection
	view := dto.DashboardView{
		Variant:       dto.VariantTokyo,
		RunID:         runID,
		Heading:       "📊 " + s.city + " Sales & Weather",
		LoadedRows:    r.loaded,
		LoadedMessage: loadedMessage(r.loaded),
		Filters: []dto.FilterControl{
			{Name: dto.FilterMenuItem, Label: "🍽️ メニューアイテムを選択", Options: dto.PlainOptions(r.res.menuItems), Selected: sel.MenuItem},
			{Name: dto.FilterMetric, Label: "🌤️ 天気指標を選択", Options: dto.MetricOptions(), Selected: string(sel.Metric)},
		},
		Info: []string{"📍 " + s.country + " - " + s.city, "🍽️ " + sel.MenuItem},
	}
	if err != nil {
		view.Notice = dto.EmptySelectionNotice
		return view, nil
	}

	fillResults(&view, r.daily, sel.Metric, sel.MenuItem, s.title(sel.MenuItem))
	return view, nil
}

func (s *tokyoService) GetChart(ctx context.Context, q dto.TokyoQuery) (dto.ChartSpec, error) {
	log, ctx, _ := startRun(ctx, dto.VariantTokyo)

	r, err := s.run(ctx, q)
	finishRun(log, dto.VariantTokyo, err)
	if err != nil {
		return dto.ChartSpec{}, err
	}
	return buildChart(r.daily, r.res.selection.Metric, s.title(r.res.selection.MenuItem)), nil
}
