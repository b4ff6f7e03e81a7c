package analysis

import (
	"sort"
	"time"

	"StockSage/internal/calculator"
	"StockSage/internal/model"
)

// PrepareChartData merges history with a single forecast point dated
// relative to today.
func PrepareChartData(historical []model.HistoricalPoint, prediction *model.PredictionResponse, tf model.Timeframe) []model.ChartPoint {
	return defaultResolver.PrepareChartDataAt(historical, prediction, tf, time.Now())
}

// PrepareChartDataAt is PrepareChartData with an explicit clock.
func PrepareChartDataAt(historical []model.HistoricalPoint, prediction *model.PredictionResponse, tf model.Timeframe, now time.Time) []model.ChartPoint {
	return defaultResolver.PrepareChartDataAt(historical, prediction, tf, now)
}

// PrepareChartDataAt emits one historical point per input point and, when
// both a prediction and history are present, one prediction point at
// now + tf.ForwardDays() moved past any weekend. The result is sorted by
// date.
func (r *Resolver) PrepareChartDataAt(historical []model.HistoricalPoint, prediction *model.PredictionResponse, tf model.Timeframe, now time.Time) []model.ChartPoint {
	points := make([]model.ChartPoint, 0, len(historical)+1)
	for _, h := range historical {
		price := h.Price
		points = append(points, model.ChartPoint{
			Date:        h.Date,
			ActualPrice: &price,
			Kind:        model.KindHistorical,
		})
	}

	if prediction != nil && len(historical) > 0 {
		lastPrice := historical[len(historical)-1].Price
		predicted := r.PredictedPrice(lastPrice, Normalize(prediction))
		points = append(points, model.ChartPoint{
			Date:           model.FormatDate(PredictionDate(now, tf)),
			PredictedPrice: &predicted,
			Kind:           model.KindPrediction,
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return chartTime(points[i]).Before(chartTime(points[j]))
	})
	return points
}

// PredictionDate is the weekday on which a forecast made at now for tf lands.
func PredictionDate(now time.Time, tf model.Timeframe) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return calculator.SkipWeekend(today.AddDate(0, 0, tf.ForwardDays()))
}

func chartTime(p model.ChartPoint) time.Time {
	t, _ := model.ParseDate(p.Date)
	return t
}
