package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"StockSage/internal/model"
)

func f64(v float64) *float64 { return &v }

func sampleReport(symbol string) *model.Report {
	return &model.Report{
		Symbol:    symbol,
		Timeframe: model.Timeframe1W,
		Source:    "mock",
		Stats: &model.PredictionStats{
			CurrentPrice:   100,
			PredictedPrice: 108,
			Change:         8,
			ChangePercent:  8,
			Confidence:     0.7,
			Direction:      "buy",
			PostsAnalyzed:  25,
		},
		Chart: []model.ChartPoint{
			{Date: "2024-03-07", ActualPrice: f64(100), Kind: model.KindHistorical},
			{Date: "2024-03-15", PredictedPrice: f64(108), Kind: model.KindPrediction},
		},
		Usable:     true,
		Forecast:   []model.HistoricalPoint{{Date: "2024-03-08", Price: 101}, {Date: "2024-03-11", Price: 102}},
		PeriodHigh: 105,
		PeriodLow:  90,
		LocalTrend: model.TrendUp,
	}
}

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "sentinel.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestNewEvaluation(t *testing.T) {
	e := NewEvaluation(sampleReport("AAPL"), TriggerCommand)
	if e.Symbol != "AAPL" || e.PredictedPrice != 108 || !e.Usable || e.Trigger != TriggerCommand {
		t.Errorf("unexpected evaluation %+v", e)
	}
	if e.ServicePoint == nil || e.ServicePoint.Date != "2024-03-15" {
		t.Errorf("expected service point, got %+v", e.ServicePoint)
	}

	bare := NewEvaluation(&model.Report{Symbol: "X"}, TriggerCLI)
	if bare.ServicePoint != nil || bare.CurrentPrice != 0 {
		t.Errorf("expected empty evaluation, got %+v", bare)
	}
}

func TestSQLiteRecorder_RecordAndRecent(t *testing.T) {
	r := openTestRecorder(t)
	base := time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)
	tick := 0
	r.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for _, sym := range []string{"AAPL", "MSFT", "AAPL"} {
		e := NewEvaluation(sampleReport(sym), TriggerScheduled)
		if err := r.RecordEvaluation(e); err != nil {
			t.Fatalf("record %s: %v", sym, err)
		}
		if e.ID == "" {
			t.Error("expected id to be assigned")
		}
	}

	all, err := r.Recent("", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(all))
	}
	if all[0].Symbol != "AAPL" || !all[0].RecordedAt.After(all[1].RecordedAt) {
		t.Errorf("expected newest first, got %+v", all)
	}

	aapl, err := r.Recent("aapl", 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(aapl) != 1 {
		t.Fatalf("expected 1 row, got %d", len(aapl))
	}
	s := aapl[0]
	if s.Timeframe != model.Timeframe1W || s.PredictedPrice != 108 || !s.Usable || s.Direction != "buy" {
		t.Errorf("unexpected summary %+v", s)
	}
	if !s.RecordedAt.Equal(base.Add(3 * time.Minute)) {
		t.Errorf("unexpected timestamp %s", s.RecordedAt)
	}

	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM forecast_points WHERE evaluation_id = ?`, s.ID).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 forecast points, got %d", n)
	}
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	if err := r.RecordEvaluation(NewEvaluation(sampleReport("X"), TriggerCLI)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if rows, err := r.Recent("X", 5); err != nil || len(rows) != 0 {
		t.Errorf("expected no rows, got %v %v", rows, err)
	}
}
