package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/GregMSThompson/sales-weather/internal/models"
	"github.com/GregMSThompson/sales-weather/pkg/helpers"
)

type countingSource struct {
	salesWeatherCalls atomic.Int32
	japanCalls        atomic.Int32
	weatherCalls      atomic.Int32
	err               error
	delay             time.Duration
}

func (s *countingSource) SalesWeather(ctx context.Context) ([]models.SalesWeatherRecord, error) {
	s.salesWeatherCalls.Add(1)
	time.Sleep(s.delay)
	if s.err != nil {
		return nil, s.err
	}
	return []models.SalesWeatherRecord{{Date: civil.Date{Year: 2022, Month: 1, Day: 1}, City: "Tokyo", DailySales: 10}}, nil
}

func (s *countingSource) JapanSales(ctx context.Context) ([]models.SalesRecord, error) {
	s.japanCalls.Add(1)
	return []models.SalesRecord{{MenuItem: "Ramen", OrderTotal: 5}}, s.err
}

func (s *countingSource) TokyoWeather(ctx context.Context) ([]models.WeatherRecord, error) {
	s.weatherCalls.Add(1)
	return []models.WeatherRecord{{Date: civil.Date{Year: 2022, Month: 2, Day: 1}}}, s.err
}

func TestCachedSourceMemoizes(t *testing.T) {
	up := &countingSource{}
	c := NewCachedSource(up, testQueries)
	ctx := helpers.TestCtx()

	for i := 0; i < 3; i++ {
		rows, err := c.SalesWeather(ctx)
		if err != nil {
			t.Fatalf("SalesWeather error: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("row count mismatch: %d", len(rows))
		}
	}
	if got := up.salesWeatherCalls.Load(); got != 1 {
		t.Fatalf("expected one upstream call, got %d", got)
	}

	if _, err := c.JapanSales(ctx); err != nil {
		t.Fatalf("JapanSales error: %v", err)
	}
	if _, err := c.JapanSales(ctx); err != nil {
		t.Fatalf("JapanSales error: %v", err)
	}
	if got := up.japanCalls.Load(); got != 1 {
		t.Fatalf("expected one upstream japan call, got %d", got)
	}
}

func TestCachedSourceDoesNotCacheErrors(t *testing.T) {
	up := &countingSource{err: errors.New("warehouse down")}
	c := NewCachedSource(up, testQueries)
	ctx := helpers.TestCtx()

	if _, err := c.TokyoWeather(ctx); err == nil {
		t.Fatal("expected error")
	}
	up.err = nil
	rows, err := c.TokyoWeather(ctx)
	if err != nil {
		t.Fatalf("expected recovery after failure, got %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("row count mismatch: %d", len(rows))
	}
	if got := up.weatherCalls.Load(); got != 2 {
		t.Fatalf("expected two upstream calls, got %d", got)
	}
}

func TestCachedSourceInvalidate(t *testing.T) {
	up := &countingSource{}
	c := NewCachedSource(up, testQueries)
	ctx := helpers.TestCtx()

	c.SalesWeather(ctx)
	c.JapanSales(ctx)
	c.Invalidate(QuerySalesWeather)
	c.SalesWeather(ctx)
	c.JapanSales(ctx)

	if got := up.salesWeatherCalls.Load(); got != 2 {
		t.Fatalf("expected refetch after invalidate, got %d calls", got)
	}
	if got := up.japanCalls.Load(); got != 1 {
		t.Fatalf("invalidate should not touch other queries, got %d calls", got)
	}

	c.InvalidateAll()
	c.JapanSales(ctx)
	if got := up.japanCalls.Load(); got != 2 {
		t.Fatalf("expected refetch after InvalidateAll, got %d calls", got)
	}
}

func TestCachedSourceCollapsesConcurrentMisses(t *testing.T) {
	up := &countingSource{delay: 50 * time.Millisecond}
	c := NewCachedSource(up, testQueries)
	ctx := helpers.TestCtx()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.SalesWeather(ctx); err != nil {
				t.Errorf("SalesWeather error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := up.salesWeatherCalls.Load(); got != 1 {
		t.Fatalf("expected concurrent misses to share one call, got %d", got)
	}
}

func TestCacheKeyIncludesParameters(t *testing.T) {
	a := NewCachedSource(&countingSource{}, testQueries)
	q := testQueries
	q.Years = []int{2023}
	b := NewCachedSource(&countingSource{}, q)

	if a.CacheKey(QuerySalesWeather) == b.CacheKey(QuerySalesWeather) {
		t.Fatal("expected differing parameters to produce differing keys")
	}
	if a.CacheKey(QueryJapanSales) != b.CacheKey(QueryJapanSales) {
		t.Fatal("japan sales key should not depend on the year list")
	}
}

// gatedSource blocks SalesWeather until released, numbering each load by day.
type gatedSource struct {
	countingSource
	started chan struct{}
	release chan struct{}
}

func newGatedSource() *gatedSource {
	return &gatedSource{
		started: make(chan struct{}, 8),
		release: make(chan struct{}),
	}
}

func (s *gatedSource) SalesWeather(ctx context.Context) ([]models.SalesWeatherRecord, error) {
	n := s.salesWeatherCalls.Add(1)
	s.started <- struct{}{}
	select {
	case <-s.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return []models.SalesWeatherRecord{{Date: civil.Date{Year: 2022, Month: 1, Day: int(n)}, City: "Tokyo", DailySales: 10}}, nil
}

func TestCachedSourceSharedLoadSurvivesCallerCancel(t *testing.T) {
	up := newGatedSource()
	c := NewCachedSource(up, testQueries)

	first, cancel := context.WithCancel(helpers.TestCtx())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.SalesWeather(first)
		firstErr <- err
	}()
	<-up.started

	secondErr := make(chan error, 1)
	go func() {
		_, err := c.SalesWeather(helpers.TestCtx())
		secondErr <- err
	}()

	cancel()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled caller should see its own cancellation, got %v", err)
	}

	close(up.release)
	if err := <-secondErr; err != nil {
		t.Fatalf("other caller must not inherit the cancellation, got %v", err)
	}
	if got := up.salesWeatherCalls.Load(); got != 1 {
		t.Fatalf("expected one upstream call, got %d", got)
	}
	if _, err := c.SalesWeather(helpers.TestCtx()); err != nil {
		t.Fatalf("cached read error: %v", err)
	}
}

func TestCachedSourceInvalidateDuringLoad(t *testing.T) {
	tests := []struct {
		name       string
		invalidate func(c *CachedSource)
	}{
		{"Invalidate", func(c *CachedSource) { c.Invalidate(QuerySalesWeather) }},
		{"InvalidateAll", func(c *CachedSource) { c.InvalidateAll() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := newGatedSource()
			c := NewCachedSource(up, testQueries)
			ctx := helpers.TestCtx()

			load := func() []models.SalesWeatherRecord {
				rows, err := c.SalesWeather(ctx)
				if err != nil {
					t.Errorf("SalesWeather error: %v", err)
				}
				return rows
			}

			inFlight := make(chan []models.SalesWeatherRecord, 1)
			go func() { inFlight <- load() }()
			<-up.started
			tt.invalidate(c)
			up.release <- struct{}{}
			if rows := <-inFlight; len(rows) != 1 || rows[0].Date.Day != 1 {
				t.Fatalf("in-flight caller should get its own load: %+v", rows)
			}

			reloaded := make(chan []models.SalesWeatherRecord, 1)
			go func() { reloaded <- load() }()
			<-up.started
			up.release <- struct{}{}
			if rows := <-reloaded; len(rows) != 1 || rows[0].Date.Day != 2 {
				t.Fatalf("expected a fresh load after invalidation, got %+v", rows)
			}
			if got := up.salesWeatherCalls.Load(); got != 2 {
				t.Fatalf("expected two upstream calls, got %d", got)
			}
		})
	}
}
