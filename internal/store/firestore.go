package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/sales-weather/internal/models"
)

const sourceFirestore = "firestore"

// FirestoreSource reads a document export of the warehouse tables.
// Firestore cannot express every filter of the SQL shapes, so the year list,
// the positive-sales predicate and the per-date weather means are applied here.
type FirestoreSource struct {
	client           *firestore.Client
	q                Queries
	salesWeatherColl string
	japanSalesColl   string
}

func NewFirestoreSource(client *firestore.Client, q Queries, salesWeatherColl, japanSalesColl string) *FirestoreSource {
	return &FirestoreSource{
		client:           client,
		q:                q,
		salesWeatherColl: salesWeatherColl,
		japanSalesColl:   japanSalesColl,
	}
}

type salesWeatherDoc struct {
	Date           time.Time `firestore:"date"`
	City           string    `firestore:"city_name"`
	Country        string    `firestore:"country_desc"`
	MenuItem       string    `firestore:"menu_item_name"`
	DailySales     float64   `firestore:"daily_sales"`
	AvgTempF       *float64  `firestore:"avg_temp_fahrenheit"`
	AvgPrecipIn    *float64  `firestore:"avg_precipitation_inches"`
	AvgSnowdepthIn *float64  `firestore:"avg_snowdepth_inches"`
	MaxWindMPH     *float64  `firestore:"max_wind_speed_mph"`
}

type salesDoc struct {
	Date       time.Time `firestore:"date"`
	MenuItem   string    `firestore:"menu_item_name"`
	OrderTotal float64   `firestore:"order_total"`
}

func (d salesWeatherDoc) record() models.SalesWeatherRecord {
	return models.SalesWeatherRecord{
		Date:           civil.DateOf(d.Date.UTC()),
		City:           d.City,
		Country:        d.Country,
		MenuItem:       d.MenuItem,
		DailySales:     d.DailySales,
		AvgTempF:       d.AvgTempF,
		AvgPrecipIn:    d.AvgPrecipIn,
		AvgSnowdepthIn: d.AvgSnowdepthIn,
		MaxWindMPH:     d.MaxWindMPH,
	}
}

func (s *FirestoreSource) SalesWeather(ctx context.Context) (out []models.SalesWeatherRecord, err error) {
	start := time.Now()
	defer func() { observe(ctx, sourceFirestore, QuerySalesWeather, start, len(out), err) }()

	from := time.Date(slices.Min(s.q.Years), time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(slices.Max(s.q.Years)+1, time.January, 1, 0, 0, 0, 0, time.UTC)

	query := s.client.Collection(s.salesWeatherColl).
		Where("city_name", "in", s.q.Cities).
		Where("date", ">=", from).
		Where("date", "<", to)

	rows, err := readSalesWeather(ctx, query)
	if err != nil {
		return nil, firestoreErr(QuerySalesWeather, err)
	}
	for _, r := range rows {
		if r.DailySales <= 0 || !slices.Contains(s.q.Years, r.Date.Year) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func readSalesWeather(ctx context.Context, query firestore.Query) ([]models.SalesWeatherRecord, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var out []models.SalesWeatherRecord
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var d salesWeatherDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, err
		}
		out = append(out, d.record())
	}
	return out, nil
}

func (s *FirestoreSource) JapanSales(ctx context.Context) (out []models.SalesRecord, err error) {
	start := time.Now()
	defer func() { observe(ctx, sourceFirestore, QueryJapanSales, start, len(out), err) }()

	docs, err := s.client.Collection(s.japanSalesColl).Documents(ctx).GetAll()
	if err != nil {
		return nil, firestoreErr(QueryJapanSales, err)
	}

	out = make([]models.SalesRecord, 0, len(docs))
	for _, snap := range docs {
		var d salesDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, firestoreErr(QueryJapanSales, err)
		}
		out = append(out, models.SalesRecord{
			Date:       civil.DateOf(d.Date.UTC()),
			MenuItem:   d.MenuItem,
			OrderTotal: d.OrderTotal,
		})
	}
	return out, nil
}

func (s *FirestoreSource) TokyoWeather(ctx context.Context) (out []models.WeatherRecord, err error) {
	start := time.Now()
	defer func() { observe(ctx, sourceFirestore, QueryTokyoWeather, start, len(out), err) }()

	from := time.Date(s.q.WeatherYear, time.Month(s.q.WeatherMonth), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	query := s.client.Collection(s.salesWeatherColl).
		Where("city_name", "==", s.q.WeatherCity).
		Where("date", ">=", from).
		Where("date", "<", to)

	rows, err := readSalesWeather(ctx, query)
	if err != nil {
		return nil, firestoreErr(QueryTokyoWeather, err)
	}
	return weatherMeansByDate(rows), nil
}

// firestoreErr keeps the gRPC status code visible in the wrapped error.
func firestoreErr(query string, err error) error {
	if st, ok := status.FromError(err); ok {
		err = fmt.Errorf("%s: %w", st.Code(), err)
	}
	return sourceErr(sourceFirestore, query, err)
}
