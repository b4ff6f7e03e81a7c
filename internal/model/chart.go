package model

import "time"

// ChartKind tags a chart point as observed or forecast.
type ChartKind string

const (
	KindHistorical ChartKind = "historical"
	KindPrediction ChartKind = "prediction"
)

// ChartPoint is one point of a merged chart series. Exactly one of
// ActualPrice and PredictedPrice is set.
type ChartPoint struct {
	Date           string    `json:"date"`
	ActualPrice    *float64  `json:"actual_price,omitempty"`
	PredictedPrice *float64  `json:"predicted_price,omitempty"`
	Kind           ChartKind `json:"kind"`
}

// Report bundles everything produced for one symbol and timeframe.
type Report struct {
	Symbol      string              `json:"symbol"`
	Timeframe   Timeframe           `json:"timeframe"`
	Source      string              `json:"source"`
	GeneratedAt time.Time           `json:"generated_at"`
	History     []HistoricalPoint   `json:"history"`
	Quote       *float64            `json:"quote,omitempty"`
	Prediction  *PredictionResponse `json:"prediction,omitempty"`
	Stats       *PredictionStats    `json:"stats,omitempty"`
	Chart       []ChartPoint        `json:"chart"`
	Usable      bool                `json:"usable"`
	Forecast    []HistoricalPoint   `json:"forecast"`
	PeriodHigh  float64             `json:"period_high"`
	PeriodLow   float64             `json:"period_low"`
	LocalTrend  string              `json:"local_trend"`
}
