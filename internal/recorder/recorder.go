// Package recorder keeps a history of evaluated reports.
package recorder

import (
	"time"

	"StockSage/internal/model"
)

// Triggers identify what produced an evaluation.
const (
	TriggerScheduled = "scheduled"
	TriggerCommand   = "command"
	TriggerCLI       = "cli"
)

// Evaluation is the flattened record of one report.
type Evaluation struct {
	ID              string
	RecordedAt      time.Time
	Trigger         string
	Symbol          string
	Timeframe       model.Timeframe
	Source          string
	CurrentPrice    float64
	PredictedPrice  float64
	Change          float64
	ChangePercent   float64
	Confidence      float64
	Direction       string
	Sentiment       string
	PostsAnalyzed   int
	InfluencerPosts int
	TechnicalTrend  string
	Usable          bool
	PeriodHigh      float64
	PeriodLow       float64
	LocalTrend      string
	ServicePoint    *model.ChartPoint
	Forecast        []model.HistoricalPoint
}

// NewEvaluation flattens a report. ID and RecordedAt are filled by the
// recorder when empty.
func NewEvaluation(r *model.Report, trigger string) *Evaluation {
	e := &Evaluation{
		Trigger:    trigger,
		Symbol:     r.Symbol,
		Timeframe:  r.Timeframe,
		Source:     r.Source,
		Usable:     r.Usable,
		PeriodHigh: r.PeriodHigh,
		PeriodLow:  r.PeriodLow,
		LocalTrend: r.LocalTrend,
		Forecast:   r.Forecast,
	}
	if s := r.Stats; s != nil {
		e.CurrentPrice = s.CurrentPrice
		e.PredictedPrice = s.PredictedPrice
		e.Change = s.Change
		e.ChangePercent = s.ChangePercent
		e.Confidence = s.Confidence
		e.Direction = s.Direction
		e.Sentiment = s.Sentiment
		e.PostsAnalyzed = s.PostsAnalyzed
		e.InfluencerPosts = s.InfluencerPosts
		e.TechnicalTrend = s.TechnicalTrend
	}
	for i := range r.Chart {
		if r.Chart[i].Kind == model.KindPrediction {
			p := r.Chart[i]
			e.ServicePoint = &p
			break
		}
	}
	return e
}

// EvaluationSummary is one row returned by Recent.
type EvaluationSummary struct {
	ID             string
	RecordedAt     time.Time
	Trigger        string
	Symbol         string
	Timeframe      model.Timeframe
	CurrentPrice   float64
	PredictedPrice float64
	ChangePercent  float64
	Confidence     float64
	Direction      string
	Usable         bool
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordEvaluation(e *Evaluation) error
	// Recent returns up to limit evaluations, newest first. An empty symbol
	// matches every symbol.
	Recent(symbol string, limit int) ([]EvaluationSummary, error)
	Close() error
}
