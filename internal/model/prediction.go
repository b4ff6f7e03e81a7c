package model

// PredictionResponse is the payload returned by the prediction service.
// Older deployments return a flat record; newer ones nest the forecast
// under Prediction and the social-media evidence under Analysis. Every
// field is optional.
type PredictionResponse struct {
	Symbol             string   `json:"symbol,omitempty" mapstructure:"symbol"`
	PredictedPrice     *float64 `json:"predicted_price,omitempty" mapstructure:"predicted_price"`
	Confidence         *float64 `json:"confidence,omitempty" mapstructure:"confidence"`
	Direction          *string  `json:"direction,omitempty" mapstructure:"direction"`
	Sentiment          *string  `json:"sentiment,omitempty" mapstructure:"sentiment"`
	PostsAnalyzed      *int     `json:"posts_analyzed,omitempty" mapstructure:"posts_analyzed"`
	InfluencerPosts    *int     `json:"influencer_posts,omitempty" mapstructure:"influencer_posts"`
	TechnicalTrend     *string  `json:"technical_trend,omitempty" mapstructure:"technical_trend"`
	PriceChangePercent *float64 `json:"price_change_percent,omitempty" mapstructure:"price_change_percent"`

	Prediction *PredictionDetail `json:"prediction,omitempty" mapstructure:"prediction"`
	Analysis   *AnalysisDetail   `json:"analysis,omitempty" mapstructure:"analysis"`
}

// PredictionDetail is the nested forecast block of the current schema.
type PredictionDetail struct {
	PriceTarget        *float64 `json:"price_target,omitempty" mapstructure:"price_target"`
	Confidence         *float64 `json:"confidence,omitempty" mapstructure:"confidence"`
	Direction          *string  `json:"direction,omitempty" mapstructure:"direction"`
	PriceChangePercent *float64 `json:"price_change_percent,omitempty" mapstructure:"price_change_percent"`
	TechnicalTrend     *string  `json:"technical_trend,omitempty" mapstructure:"technical_trend"`
}

// AnalysisDetail is the nested evidence block of the current schema.
type AnalysisDetail struct {
	Confidence      *float64 `json:"confidence,omitempty" mapstructure:"confidence"`
	Sentiment       *string  `json:"sentiment,omitempty" mapstructure:"sentiment"`
	PostsAnalyzed   *int     `json:"posts_analyzed,omitempty" mapstructure:"posts_analyzed"`
	InfluencerPosts *int     `json:"influencer_posts,omitempty" mapstructure:"influencer_posts"`
	TechnicalTrend  *string  `json:"technical_trend,omitempty" mapstructure:"technical_trend"`
}

// Direction and sentiment defaults.
const (
	DirectionHold    = "hold"
	SentimentNeutral = "neutral"
	TrendNeutral     = "neutral"
	TrendUp          = "up"
	TrendDown        = "down"
)

// Prediction is the canonical form of a PredictionResponse. Nil pointers
// mean the value was absent under every accepted path.
type Prediction struct {
	ExplicitPrice      *float64
	TargetPrice        *float64
	Confidence         float64
	Direction          string
	Sentiment          string
	PostsAnalyzed      *int
	InfluencerPosts    int
	TechnicalTrend     string
	PriceChangePercent *float64
	HasDetail          bool
}

// PredictionStats is the summary shown next to a chart.
type PredictionStats struct {
	CurrentPrice       float64 `json:"current_price"`
	PredictedPrice     float64 `json:"predicted_price"`
	Change             float64 `json:"change"`
	ChangePercent      float64 `json:"change_percent"`
	Confidence         float64 `json:"confidence"`
	Direction          string  `json:"direction"`
	Sentiment          string  `json:"sentiment"`
	PostsAnalyzed      int     `json:"posts_analyzed"`
	InfluencerPosts    int     `json:"influencer_posts"`
	TechnicalTrend     string  `json:"technical_trend"`
	PriceChangePercent float64 `json:"price_change_percent"`
}
