package calculator

import "StockSage/internal/model"

// TechnicalTrend labels price action as up, down or neutral from a fast/slow
// SMA crossover confirmed by RSI(14). Short series are neutral.
func TechnicalTrend(prices []float64) string {
	fast, err := CalculateSMA(prices, 10)
	if err != nil {
		return model.TrendNeutral
	}
	slow, err := CalculateSMA(prices, 30)
	if err != nil {
		return model.TrendNeutral
	}
	rsi, _ := CalculateRSI(prices, 14)
	last := prices[len(prices)-1]
	switch {
	case fast > slow && last >= fast && rsi >= 50:
		return model.TrendUp
	case fast < slow && last <= fast && rsi <= 50:
		return model.TrendDown
	default:
		return model.TrendNeutral
	}
}
