// Package analysis turns price history and prediction-service responses
// into chart series, summary statistics and a reliability verdict.
package analysis

import (
	"math"
	"strings"

	"StockSage/internal/model"
)

// Normalize maps any accepted PredictionResponse shape onto the canonical
// Prediction. Flat legacy fields win over the nested blocks. Zero numbers,
// non-finite numbers and blank strings count as absent, so the next path is
// consulted.
func Normalize(resp *model.PredictionResponse) model.Prediction {
	p := model.Prediction{
		Direction:      model.DirectionHold,
		Sentiment:      model.SentimentNeutral,
		TechnicalTrend: model.TrendNeutral,
	}
	if resp == nil {
		return p
	}

	detail := resp.Prediction
	if detail != nil {
		p.HasDetail = true
	} else {
		detail = &model.PredictionDetail{}
	}
	evidence := resp.Analysis
	if evidence == nil {
		evidence = &model.AnalysisDetail{}
	}

	p.ExplicitPrice = firstFloat(resp.PredictedPrice)
	p.TargetPrice = firstFloat(detail.PriceTarget)
	p.PriceChangePercent = firstFloat(resp.PriceChangePercent, detail.PriceChangePercent)
	p.PostsAnalyzed = firstInt(resp.PostsAnalyzed, evidence.PostsAnalyzed)

	if v := firstFloat(resp.Confidence, detail.Confidence, evidence.Confidence); v != nil {
		p.Confidence = *v
	}
	if v := firstString(resp.Direction, detail.Direction); v != "" {
		p.Direction = v
	}
	if v := firstString(resp.Sentiment, evidence.Sentiment); v != "" {
		p.Sentiment = v
	}
	if v := firstInt(resp.InfluencerPosts, evidence.InfluencerPosts); v != nil {
		p.InfluencerPosts = *v
	}
	if v := firstString(resp.TechnicalTrend, evidence.TechnicalTrend, detail.TechnicalTrend); v != "" {
		p.TechnicalTrend = v
	}
	return p
}

func firstFloat(vals ...*float64) *float64 {
	for _, v := range vals {
		if v == nil || *v == 0 || math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		x := *v
		return &x
	}
	return nil
}

func firstInt(vals ...*int) *int {
	for _, v := range vals {
		if v != nil && *v != 0 {
			x := *v
			return &x
		}
	}
	return nil
}

func firstString(vals ...*string) string {
	for _, v := range vals {
		if v == nil {
			continue
		}
		if s := strings.TrimSpace(*v); s != "" {
			return s
		}
	}
	return ""
}
