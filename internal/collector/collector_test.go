package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"StockSage/internal/model"
	"StockSage/internal/predictor"
	"StockSage/internal/store"
)

type fakeSource struct {
	resp  *model.PredictionResponse
	err   error
	calls int
}

func (f *fakeSource) FetchPrediction(_ context.Context, _ string, _ model.Timeframe) (*model.PredictionResponse, error) {
	f.calls++
	return f.resp, f.err
}

type countingFetcher struct {
	MockFetcher
	historyCalls int
}

func (c *countingFetcher) FetchHistory(ctx context.Context, symbol string, days int) ([]model.HistoricalPoint, error) {
	c.historyCalls++
	return c.MockFetcher.FetchHistory(ctx, symbol, days)
}

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }

// series returns n daily points ending 2024-03-08, listed newest first.
func series(n int) []model.HistoricalPoint {
	end := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	out := make([]model.HistoricalPoint, n)
	for i := 0; i < n; i++ {
		out[i] = model.HistoricalPoint{
			Date:  model.FormatDate(end.AddDate(0, 0, -i)),
			Price: 150 - float64(i)*0.5,
		}
	}
	return out
}

var fixedNow = time.Date(2024, 3, 8, 18, 0, 0, 0, time.UTC)

func newTestCollector(f Fetcher, src PredictionSource, cache store.Store) *Collector {
	c := NewCollector(f, src, cache, time.Hour)
	c.Predictor = predictor.NewSeeded(1)
	c.Now = func() time.Time { return fixedNow }
	return c
}

func TestCollect_FullReport(t *testing.T) {
	src := &fakeSource{resp: &model.PredictionResponse{
		Confidence:     f64(0.8),
		PredictedPrice: f64(165),
		Analysis:       &model.AnalysisDetail{PostsAnalyzed: intp(40)},
	}}
	c := newTestCollector(&MockFetcher{Price: 151, History: series(40)}, src, nil)

	r, err := c.Collect(context.Background(), " aapl ", "1W")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if r.Symbol != "AAPL" || r.Timeframe != model.Timeframe1W || r.Source != "mock" {
		t.Errorf("unexpected header: %s %s %s", r.Symbol, r.Timeframe, r.Source)
	}
	if r.History[0].Date > r.History[len(r.History)-1].Date {
		t.Error("history not sorted ascending")
	}
	if r.Quote == nil || *r.Quote != 151 {
		t.Errorf("expected quote 151, got %v", r.Quote)
	}
	if r.Stats == nil || r.Stats.CurrentPrice != 151 || r.Stats.PredictedPrice != 165 {
		t.Errorf("unexpected stats: %+v", r.Stats)
	}
	if !r.Usable {
		t.Error("expected usable prediction")
	}
	if len(r.Chart) != 41 {
		t.Errorf("expected 41 chart points, got %d", len(r.Chart))
	}
	if last := r.Chart[len(r.Chart)-1]; last.Kind != model.KindPrediction || last.Date != "2024-03-15" {
		t.Errorf("unexpected prediction point %+v", last)
	}
	if len(r.Forecast) != predictor.Horizon {
		t.Errorf("expected %d forecast points, got %d", predictor.Horizon, len(r.Forecast))
	}
	if r.PeriodHigh != 150 || r.PeriodLow != 130.5 {
		t.Errorf("expected range 150/130.5, got %f/%f", r.PeriodHigh, r.PeriodLow)
	}
	if r.LocalTrend != model.TrendUp {
		t.Errorf("expected up trend, got %s", r.LocalTrend)
	}
}

func TestCollect_PredictionFailureIsNotFatal(t *testing.T) {
	src := &fakeSource{err: errors.New("service down")}
	c := newTestCollector(&MockFetcher{History: series(10)}, src, nil)

	r, err := c.Collect(context.Background(), "MSFT", model.Timeframe1D)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if r.Prediction != nil || r.Usable {
		t.Error("expected no prediction")
	}
	if r.Stats == nil || r.Stats.Change != 0 || r.Stats.Direction != "hold" {
		t.Errorf("expected neutral stats, got %+v", r.Stats)
	}
	if len(r.Forecast) != 0 {
		t.Errorf("expected no forecast with 10 points, got %d", len(r.Forecast))
	}
	for _, p := range r.Chart {
		if p.Kind != model.KindHistorical {
			t.Errorf("unexpected %s point", p.Kind)
		}
	}
}

func TestCollect_Errors(t *testing.T) {
	c := newTestCollector(&MockFetcher{History: series(40)}, nil, nil)
	if _, err := c.Collect(context.Background(), "AAPL", "2y"); !errors.Is(err, model.ErrInvalidTimeframe) {
		t.Errorf("expected ErrInvalidTimeframe, got %v", err)
	}
	if _, err := c.Collect(context.Background(), "  ", model.Timeframe1D); err == nil {
		t.Error("expected error for empty symbol")
	}

	empty := newTestCollector(&MockFetcher{History: []model.HistoricalPoint{}}, nil, nil)
	if _, err := empty.Collect(context.Background(), "AAPL", model.Timeframe1D); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}

	failing := newTestCollector(&MockFetcher{Err: errors.New("boom")}, nil, nil)
	if _, err := failing.Collect(context.Background(), "AAPL", model.Timeframe1D); err == nil {
		t.Error("expected fetch error")
	}
}

func TestCollect_UsesCache(t *testing.T) {
	f := &countingFetcher{MockFetcher: MockFetcher{History: series(35)}}
	c := newTestCollector(f, nil, store.NewMemoryStore(time.Minute))

	for i := 0; i < 3; i++ {
		if _, err := c.Collect(context.Background(), "NVDA", model.Timeframe1M); err != nil {
			t.Fatalf("collect %d: %v", i, err)
		}
	}
	if f.historyCalls != 1 {
		t.Errorf("expected 1 upstream history call, got %d", f.historyCalls)
	}

	if _, err := c.Collect(context.Background(), "NVDA", model.Timeframe1D); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if f.historyCalls != 2 {
		t.Errorf("expected a separate cache entry per timeframe, got %d calls", f.historyCalls)
	}
}

func TestMockFetcher_Generated(t *testing.T) {
	m := &MockFetcher{Price: 100, Now: func() time.Time { return fixedNow }}
	pts, err := m.FetchHistory(context.Background(), "X", 60)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(pts) < predictor.Window {
		t.Fatalf("expected at least %d points, got %d", predictor.Window, len(pts))
	}
	for i, p := range pts {
		d, _ := model.ParseDate(p.Date)
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("point %d on %s", i, wd)
		}
		if !d.Before(fixedNow) {
			t.Errorf("point %d in the future: %s", i, p.Date)
		}
	}
}
