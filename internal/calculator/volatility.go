package calculator

import (
	"fmt"
	"math"
)

// DailyReturns returns the day-over-day fractional changes of prices.
// Steps from a non-positive price are reported as 0.
func DailyReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] > 0 {
			out[i-1] = (prices[i] - prices[i-1]) / prices[i-1]
		}
	}
	return out
}

// ReturnVolatility is the sample standard deviation of daily returns.
func ReturnVolatility(prices []float64) (float64, error) {
	returns := DailyReturns(prices)
	if len(returns) < 2 {
		return 0, fmt.Errorf("volatility: %w", ErrNotEnoughData)
	}
	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))
	var sq float64
	for _, r := range returns {
		d := r - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(returns)-1)), nil
}
