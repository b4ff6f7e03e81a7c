package collector

import (
	"context"
	"errors"

	"StockSage/internal/model"
)

// ErrNoData is returned when a provider has no usable prices for a symbol.
var ErrNoData = errors.New("no market data")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchHistory returns daily closes covering roughly the last days
	// calendar days, in ascending date order.
	FetchHistory(ctx context.Context, symbol string, days int) ([]model.HistoricalPoint, error)
	FetchQuote(ctx context.Context, symbol string) (float64, error)
	Name() string
}

// PredictionSource is the external prediction service.
type PredictionSource interface {
	FetchPrediction(ctx context.Context, symbol string, tf model.Timeframe) (*model.PredictionResponse, error)
}
