package analysis

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"StockSage/internal/model"
)

// DecodePrediction decodes a raw JSON object into a PredictionResponse.
// Numbers sent as strings are accepted and unknown keys are ignored.
func DecodePrediction(raw map[string]interface{}) (*model.PredictionResponse, error) {
	var out model.PredictionResponse
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("build decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode prediction: %w", err)
	}
	return &out, nil
}
