package analysis

import (
	"time"

	"StockSage/internal/model"
)

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }
func str(v string) *string   { return &v }

// januarySeries is 30 ascending daily closes from 100 on 2024-01-01 to 110
// on 2024-01-30.
func januarySeries() []model.HistoricalPoint {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.HistoricalPoint, 30)
	for i := range out {
		out[i] = model.HistoricalPoint{
			Date:  model.FormatDate(start.AddDate(0, 0, i)),
			Price: 100 + 10*float64(i)/29,
		}
	}
	return out
}
