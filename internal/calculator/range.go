package calculator

import (
	"fmt"
	"math"
)

// CalculateRange scans the most recent lookback prices and returns the high
// and low. A non-positive lookback scans the whole series.
func CalculateRange(prices []float64, lookback int) (high, low float64, err error) {
	if len(prices) == 0 {
		return 0, 0, fmt.Errorf("range: %w", ErrNotEnoughData)
	}
	n := len(prices)
	start := 0
	if lookback > 0 && n > lookback {
		start = n - lookback
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if prices[i] > high {
			high = prices[i]
		}
		if prices[i] < low {
			low = prices[i]
		}
	}
	return high, low, nil
}

// RangePosition returns where price sits within [low, high] (0.0~1.0).
func RangePosition(price, high, low float64) float64 {
	if high <= low {
		return 0.5
	}
	pos := (price - low) / (high - low)
	return math.Max(0, math.Min(1, pos))
}
