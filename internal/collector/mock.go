package collector

import (
	"context"
	"math"
	"time"

	"StockSage/internal/calculator"
	"StockSage/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price   float64
	History []model.HistoricalPoint
	Err     error
	Now     func() time.Time
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ context.Context, _ string, days int) ([]model.HistoricalPoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.History != nil {
		return m.History, nil
	}
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	return generateMockHistory(m.Price, days, now()), nil
}

func (m *MockFetcher) FetchQuote(_ context.Context, _ string) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	if m.Price == 0 && len(m.History) > 0 {
		return m.History[len(m.History)-1].Price, nil
	}
	return m.Price, nil
}

// generateMockHistory produces weekday closes over the days calendar days
// before now, drifting gently upward around basePrice.
func generateMockHistory(basePrice float64, days int, now time.Time) []model.HistoricalPoint {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -days)
	dates := calculator.NextTradingDays(start, days*5/7)
	points := make([]model.HistoricalPoint, 0, len(dates))
	for i, d := range dates {
		if !d.Before(now) {
			break
		}
		p := basePrice * (1 + float64(i-len(dates)/2)*0.001 + 0.01*math.Sin(float64(i)/3))
		points = append(points, model.HistoricalPoint{Date: model.FormatDate(d), Price: math.Round(p*100) / 100})
	}
	return points
}
