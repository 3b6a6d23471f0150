package services

import (
	"fmt"
	"slices"

	"cloud.google.com/go/civil"

	"github.com/GregMSThompson/sales-weather/internal/dto"
	"github.com/GregMSThompson/sales-weather/internal/errs"
	"github.com/GregMSThompson/sales-weather/internal/models"
)

// distinctSorted returns the distinct non-empty values of field, ascending.
func distinctSorted[T any](rows []T, field func(T) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range rows {
		v := field(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// choose picks requested when it is a valid option, then fallback, then the
// first option. It returns "" only when there are no options at all.
func choose(options []string, requested, fallback string) string {
	if requested != "" && slices.Contains(options, requested) {
		return requested
	}
	if fallback != "" && slices.Contains(options, fallback) {
		return fallback
	}
	if len(options) > 0 {
		return options[0]
	}
	return ""
}

func chooseMetric(requested string) models.WeatherMetric {
	m := models.WeatherMetric(requested)
	if m.Valid() {
		return m
	}
	return models.WeatherMetrics[0]
}

// matches reports whether a row's field equals the chosen value. Nothing
// matches an empty choice, so a level without options empties the cascade.
func matches(value, chosen string) bool {
	return chosen != "" && value == chosen
}

func filterRows[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// dateBounds is the observed [min, max] of the rows' dates; ok is false when rows is empty.
func dateBounds(rows []models.SalesWeatherRecord) (lo, hi civil.Date, ok bool) {
	for i, r := range rows {
		if i == 0 || r.Date.Before(lo) {
			lo = r.Date
		}
		if i == 0 || r.Date.After(hi) {
			hi = r.Date
		}
	}
	return lo, hi, len(rows) > 0
}

func clampDate(d, lo, hi civil.Date) civil.Date {
	if d.Before(lo) {
		return lo
	}
	if d.After(hi) {
		return hi
	}
	return d
}

// filterDateRange keeps rows whose date lies in the closed range [from, to].
func filterDateRange(rows []models.SalesWeatherRecord, from, to civil.Date) []models.SalesWeatherRecord {
	return filterRows(rows, func(r models.SalesWeatherRecord) bool {
		return !r.Date.Before(from) && !r.Date.After(to)
	})
}

// parseRequestedRange parses the optional from/to strings of a query.
func parseRequestedRange(from, to string) (*civil.Date, *civil.Date, error) {
	parse := func(name, s string) (*civil.Date, error) {
		if s == "" {
			return nil, nil
		}
		d, err := civil.ParseDate(s)
		if err != nil {
			return nil, errs.NewValidationError(fmt.Sprintf("%s must be a YYYY-MM-DD date", name))
		}
		return &d, nil
	}
	f, err := parse("from", from)
	if err != nil {
		return nil, nil, err
	}
	t, err := parse("to", to)
	if err != nil {
		return nil, nil, err
	}
	if f != nil && t != nil && f.After(*t) {
		return nil, nil, errs.NewValidationError("from must not be after to")
	}
	return f, t, nil
}

type explorerResolution struct {
	selection dto.ExplorerSelection
	countries []string
	cities    []string
	menuItems []string
	// observed bounds of the menu-item-narrowed rows; nil when that table is empty
	minDate *civil.Date
	maxDate *civil.Date
	rows    []models.SalesWeatherRecord
}

// resolveExplorer runs the country, city, menu item, date cascade. Each level's
// options come from the rows matching every earlier choice.
func resolveExplorer(rows []models.SalesWeatherRecord, q dto.ExplorerQuery, defaultCountry string) (explorerResolution, error) {
	var res explorerResolution

	reqFrom, reqTo, err := parseRequestedRange(q.From, q.To)
	if err != nil {
		return res, err
	}
	res.selection.Metric = chooseMetric(q.Metric)

	res.countries = distinctSorted(rows, func(r models.SalesWeatherRecord) string { return r.Country })
	res.selection.Country = choose(res.countries, q.Country, defaultCountry)
	narrowed := filterRows(rows, func(r models.SalesWeatherRecord) bool { return matches(r.Country, res.selection.Country) })

	res.cities = distinctSorted(narrowed, func(r models.SalesWeatherRecord) string { return r.City })
	res.selection.City = choose(res.cities, q.City, "")
	narrowed = filterRows(narrowed, func(r models.SalesWeatherRecord) bool { return matches(r.City, res.selection.City) })

	res.menuItems = distinctSorted(narrowed, func(r models.SalesWeatherRecord) string { return r.MenuItem })
	res.selection.MenuItem = choose(res.menuItems, q.MenuItem, "")
	narrowed = filterRows(narrowed, func(r models.SalesWeatherRecord) bool { return matches(r.MenuItem, res.selection.MenuItem) })

	lo, hi, ok := dateBounds(narrowed)
	if !ok {
		res.rows = narrowed
		return res, nil
	}
	from, to := lo, hi
	if reqFrom != nil {
		from = clampDate(*reqFrom, lo, hi)
	}
	if reqTo != nil {
		to = clampDate(*reqTo, lo, hi)
	}
	res.minDate, res.maxDate = &lo, &hi
	res.selection.From, res.selection.To = &from, &to
	res.rows = filterDateRange(narrowed, from, to)
	return res, nil
}

type tokyoResolution struct {
	selection dto.TokyoSelection
	menuItems []string
	rows      []models.SalesRecord
}

func resolveTokyo(sales []models.SalesRecord, q dto.TokyoQuery) tokyoResolution {
	var res tokyoResolution
	res.selection.Metric = chooseMetric(q.Metric)
	res.menuItems = distinctSorted(sales, func(r models.SalesRecord) string { return r.MenuItem })
	res.selection.MenuItem = choose(res.menuItems, q.MenuItem, "")
	res.rows = filterRows(sales, func(r models.SalesRecord) bool { return matches(r.MenuItem, res.selection.MenuItem) })
	return res
}
