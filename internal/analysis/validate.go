package analysis

import "StockSage/internal/model"

// MinConfidence is the confidence a prediction must exceed to be shown.
const MinConfidence = 0.3

// IsPredictionUsable reports whether a prediction is reliable enough to
// display: confidence above MinConfidence, a price signal, and a non-zero
// count of analyzed posts.
func IsPredictionUsable(prediction *model.PredictionResponse) bool {
	if prediction == nil {
		return false
	}
	p := Normalize(prediction)
	if !(p.Confidence > MinConfidence) {
		return false
	}
	if !hasPriceSignal(p) {
		return false
	}
	return p.PostsAnalyzed != nil && *p.PostsAnalyzed != 0
}
