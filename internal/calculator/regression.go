package calculator

import "fmt"

// LinearRegression fits y = intercept + slope*x over x = 0..len(y)-1 by
// ordinary least squares using the closed-form sums.
func LinearRegression(y []float64) (slope, intercept float64, err error) {
	if len(y) < 2 {
		return 0, 0, fmt.Errorf("linear regression: %w", ErrNotEnoughData)
	}
	n := float64(len(y))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	// x is 0..n-1, so the denominator is n²(n²-1)/12 and never zero here.
	slope = (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	intercept = (sumY - slope*sumX) / n
	return slope, intercept, nil
}
