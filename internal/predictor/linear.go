// Package predictor projects future closing prices from a linear trend
// fitted to recent history.
package predictor

import (
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"StockSage/internal/calculator"
	"StockSage/internal/model"
)

const (
	// Window is the number of most recent points the trend is fitted on.
	Window = 30
	// Horizon is the number of trading days projected.
	Horizon = 7
)

// Predictor fits a least-squares line over the last Window closes and
// projects Horizon weekdays ahead with volatility-scaled noise. It is safe
// for concurrent use.
type Predictor struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Predictor drawing noise from rng. A nil rng uses a
// randomly seeded generator.
func New(rng *rand.Rand) *Predictor {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Predictor{rng: rng}
}

// NewSeeded creates a Predictor with a deterministic noise sequence.
func NewSeeded(seed uint64) *Predictor {
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Fit holds the regression of one window.
type Fit struct {
	Slope      float64
	Intercept  float64
	Volatility float64
	LastDate   time.Time
}

// FitWindow sorts series by date and fits the trend over its last Window
// points.
func FitWindow(series []model.HistoricalPoint) (*Fit, error) {
	if len(series) < Window {
		return nil, calculator.ErrNotEnoughData
	}
	sorted := make([]model.HistoricalPoint, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time().Before(sorted[j].Time())
	})
	window := sorted[len(sorted)-Window:]
	prices := model.Prices(window)

	slope, intercept, err := calculator.LinearRegression(prices)
	if err != nil {
		return nil, err
	}
	vol, err := calculator.ReturnVolatility(prices)
	if err != nil {
		return nil, err
	}
	return &Fit{
		Slope:      slope,
		Intercept:  intercept,
		Volatility: vol,
		LastDate:   window[len(window)-1].Time(),
	}, nil
}

// Trend returns the unperturbed projection at day index i.
func (f *Fit) Trend(i int) float64 {
	return f.Intercept + f.Slope*float64(i)
}

// Predict returns Horizon projected points following series. It returns an
// empty slice when fewer than Window points are supplied.
func (p *Predictor) Predict(symbol string, series []model.HistoricalPoint) []model.HistoricalPoint {
	fit, err := FitWindow(series)
	if err != nil {
		log.Warn().Str("symbol", symbol).Int("points", len(series)).Int("required", Window).
			Msg("not enough history for trend prediction")
		return []model.HistoricalPoint{}
	}

	days := calculator.NextTradingDays(fit.LastDate, Horizon)
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.HistoricalPoint, 0, Horizon)
	for k, day := range days {
		base := fit.Trend(Window + k)
		noise := base * (p.rng.Float64()*fit.Volatility - fit.Volatility/2)
		price, _ := decimal.NewFromFloat(base + noise).Round(2).Float64()
		out = append(out, model.HistoricalPoint{
			Date:  model.FormatDate(day),
			Price: price,
		})
	}
	return out
}
