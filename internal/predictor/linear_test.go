package predictor

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"StockSage/internal/model"
)

// dailySeries builds n consecutive calendar-day points starting 2024-01-01.
func dailySeries(n int, price func(i int) float64) []model.HistoricalPoint {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.HistoricalPoint, n)
	for i := 0; i < n; i++ {
		out[i] = model.HistoricalPoint{
			Date:  model.FormatDate(start.AddDate(0, 0, i)),
			Price: price(i),
		}
	}
	return out
}

func wavy(i int) float64 {
	return 100 + float64(i)*0.8 + 3*math.Sin(float64(i))
}

func TestPredict_InsufficientHistory(t *testing.T) {
	p := NewSeeded(1)
	for _, n := range []int{0, 1, 29} {
		got := p.Predict("AAPL", dailySeries(n, wavy))
		if got == nil || len(got) != 0 {
			t.Errorf("n=%d: expected empty non-nil slice, got %v", n, got)
		}
	}
}

func TestPredict_CountAndSpacing(t *testing.T) {
	p := NewSeeded(7)
	out := p.Predict("AAPL", dailySeries(45, wavy))
	if len(out) != Horizon {
		t.Fatalf("expected %d points, got %d", Horizon, len(out))
	}
	// Last input date 2024-02-14 is a Wednesday.
	if out[0].Date != "2024-02-15" {
		t.Errorf("expected first projection on 2024-02-15, got %s", out[0].Date)
	}
	var prev time.Time
	for i, pt := range out {
		d, err := model.ParseDate(pt.Date)
		if err != nil {
			t.Fatalf("point %d: bad date %q", i, pt.Date)
		}
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("point %d falls on %s", i, wd)
		}
		if i > 0 && !d.After(prev) {
			t.Errorf("point %d not after previous: %s <= %s", i, d, prev)
		}
		prev = d
		if pt.Price != math.Round(pt.Price*100)/100 {
			t.Errorf("point %d not rounded to cents: %v", i, pt.Price)
		}
	}
}

func TestPredict_NoiseBound(t *testing.T) {
	series := dailySeries(60, wavy)
	fit, err := FitWindow(series)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	for seed := uint64(0); seed < 50; seed++ {
		out := NewSeeded(seed).Predict("MSFT", series)
		for k, pt := range out {
			base := fit.Trend(Window + k)
			bound := math.Abs(base)*fit.Volatility/2 + 0.0051
			if math.Abs(pt.Price-base) > bound {
				t.Fatalf("seed %d point %d: |%f-%f| exceeds %f", seed, k, pt.Price, base, bound)
			}
		}
	}
}

func TestPredict_SortsInput(t *testing.T) {
	series := dailySeries(35, wavy)
	reversed := make([]model.HistoricalPoint, len(series))
	for i := range series {
		reversed[len(series)-1-i] = series[i]
	}
	a := NewSeeded(3).Predict("X", series)
	b := NewSeeded(3).Predict("X", reversed)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("point %d differs: %v vs %v", i, a[i], b[i])
		}
	}
	if reversed[0].Date != series[len(series)-1].Date {
		t.Error("input slice was mutated")
	}
}

func TestPredict_ZeroNoiseFollowsTrend(t *testing.T) {
	// Flat history has zero volatility, so projections equal the trend.
	series := dailySeries(30, func(int) float64 { return 50 })
	out := New(rand.New(rand.NewPCG(1, 2))).Predict("FLAT", series)
	for i, pt := range out {
		if pt.Price != 50 {
			t.Errorf("point %d: expected 50, got %v", i, pt.Price)
		}
	}
}

func TestFitWindow_UsesLastThirty(t *testing.T) {
	// The first 10 points are noise; the last 30 are an exact line.
	series := dailySeries(40, func(i int) float64 {
		if i < 10 {
			return 1000
		}
		return 10 + 2*float64(i-10)
	})
	fit, err := FitWindow(series)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if math.Abs(fit.Slope-2) > 1e-9 || math.Abs(fit.Intercept-10) > 1e-9 {
		t.Errorf("expected slope 2 intercept 10, got %f %f", fit.Slope, fit.Intercept)
	}
}
