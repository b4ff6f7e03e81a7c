package analysis

import "StockSage/internal/model"

// CalculateStats derives display statistics using the default precedence.
// It returns nil when historical is empty.
func CalculateStats(historical []model.HistoricalPoint, prediction *model.PredictionResponse, currentPriceOverride *float64) *model.PredictionStats {
	return defaultResolver.CalculateStats(historical, prediction, currentPriceOverride)
}

// CalculateStats derives display statistics. The caller is trusted to pass
// historical in ascending date order; no re-sorting happens here.
func (r *Resolver) CalculateStats(historical []model.HistoricalPoint, prediction *model.PredictionResponse, currentPriceOverride *float64) *model.PredictionStats {
	if len(historical) == 0 {
		return nil
	}
	lastPrice := historical[len(historical)-1].Price
	currentPrice := lastPrice
	if currentPriceOverride != nil {
		currentPrice = *currentPriceOverride
	}

	p := Normalize(prediction)
	stats := &model.PredictionStats{
		CurrentPrice:   currentPrice,
		PredictedPrice: currentPrice,
		Direction:      p.Direction,
		Sentiment:      p.Sentiment,
		TechnicalTrend: p.TechnicalTrend,
	}
	if prediction == nil {
		return stats
	}

	stats.PredictedPrice = r.PredictedPrice(lastPrice, p)
	stats.Change = stats.PredictedPrice - currentPrice
	if currentPrice > 0 {
		stats.ChangePercent = stats.Change / currentPrice * 100
	}
	stats.Confidence = p.Confidence
	stats.InfluencerPosts = p.InfluencerPosts
	if p.PostsAnalyzed != nil {
		stats.PostsAnalyzed = *p.PostsAnalyzed
	}
	if p.PriceChangePercent != nil {
		stats.PriceChangePercent = *p.PriceChangePercent
	}
	return stats
}
