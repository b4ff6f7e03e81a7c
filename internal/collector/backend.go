package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"StockSage/internal/analysis"
	"StockSage/internal/model"
)

// BackendClient calls the prediction service over HTTP.
type BackendClient struct {
	client *resty.Client
}

// NewBackendClient creates a client for the prediction service at baseURL.
// apiKey is sent as a bearer token when set.
func NewBackendClient(baseURL, apiKey, proxyURL string) *BackendClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(time.Second)
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &BackendClient{client: client}
}

// FetchPrediction requests GET /api/predict/{symbol}?timeframe=tf. The
// payload may be returned bare or wrapped in a "data" object.
func (b *BackendClient) FetchPrediction(ctx context.Context, symbol string, tf model.Timeframe) (*model.PredictionResponse, error) {
	var raw map[string]interface{}
	resp, err := b.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParam("timeframe", string(tf)).
		SetResult(&raw).
		Get("/api/predict/{symbol}")
	if err != nil {
		return nil, fmt.Errorf("prediction request %s: %w", symbol, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("prediction service: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	if raw == nil {
		return nil, fmt.Errorf("prediction service: empty body for %s", symbol)
	}
	if inner, ok := raw["data"].(map[string]interface{}); ok {
		raw = inner
	}

	pred, err := analysis.DecodePrediction(raw)
	if err != nil {
		return nil, err
	}
	if pred.Symbol == "" {
		pred.Symbol = symbol
	}
	return pred, nil
}
