package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for every point in a series.
const DateLayout = "2006-01-02"

// HistoricalPoint is one trading day's closing price.
type HistoricalPoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// Time parses the point's date. Unparseable dates yield the zero time.
func (p HistoricalPoint) Time() time.Time {
	t, _ := ParseDate(p.Date)
	return t
}

// ParseDate accepts a calendar date or an RFC 3339 timestamp and returns
// the calendar day at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// FormatDate renders t as a calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Prices extracts the closing prices of a series in order.
func Prices(series []HistoricalPoint) []float64 {
	out := make([]float64, len(series))
	for i, p := range series {
		out[i] = p.Price
	}
	return out
}

// Timeframe is the forecast horizon selector.
type Timeframe string

const (
	Timeframe1D Timeframe = "1d"
	Timeframe1W Timeframe = "1w"
	Timeframe1M Timeframe = "1m"
)

var ErrInvalidTimeframe = errors.New("invalid timeframe")

// ParseTimeframe normalizes user input into a Timeframe.
func ParseTimeframe(s string) (Timeframe, error) {
	switch tf := Timeframe(strings.ToLower(strings.TrimSpace(s))); tf {
	case Timeframe1D, Timeframe1W, Timeframe1M:
		return tf, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTimeframe, s)
}

// ForwardDays is how many calendar days ahead the prediction point lands
// before weekend adjustment.
func (tf Timeframe) ForwardDays() int {
	switch tf {
	case Timeframe1W:
		return 7
	case Timeframe1M:
		return 30
	default:
		return 1
	}
}

// HistoryDays is how many calendar days of history are requested upstream.
func (tf Timeframe) HistoryDays() int {
	switch tf {
	case Timeframe1W:
		return 90
	case Timeframe1M:
		return 180
	default:
		return 60
	}
}
