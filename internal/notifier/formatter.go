package notifier

import (
	"fmt"
	"html"
	"strings"

	"StockSage/internal/model"
	"StockSage/internal/recorder"
)

var directionIcons = map[string]string{
	"buy": "🟢", "strong_buy": "🟢", "bullish": "🟢", "up": "🟢",
	"sell": "🔴", "strong_sell": "🔴", "bearish": "🔴", "down": "🔴",
}

func directionIcon(direction string) string {
	if icon, ok := directionIcons[strings.ToLower(direction)]; ok {
		return icon
	}
	return "⚪"
}

// FormatReport formats a collected report into a Telegram message.
func FormatReport(r *model.Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s | %s\n\n",
		html.EscapeString(r.Symbol), r.Timeframe, r.GeneratedAt.Format("2006-01-02 15:04")))

	s := r.Stats
	if s == nil {
		b.WriteString("No price history available.\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Current price: %.2f\n", s.CurrentPrice))
	b.WriteString(fmt.Sprintf("Period range: %.2f – %.2f (%d days)\n", r.PeriodLow, r.PeriodHigh, r.Timeframe.HistoryDays()))
	b.WriteString(fmt.Sprintf("Local trend: %s\n\n", r.LocalTrend))

	if r.Prediction == nil {
		b.WriteString("🤖 Prediction service: unavailable\n")
	} else {
		b.WriteString(fmt.Sprintf("🤖 <b>Prediction:</b> %s %s\n", directionIcon(s.Direction), html.EscapeString(s.Direction)))
		b.WriteString(fmt.Sprintf("   Target: %.2f (%+.2f, %+.2f%%)\n", s.PredictedPrice, s.Change, s.ChangePercent))
		b.WriteString(fmt.Sprintf("   Confidence: %.0f%%\n", s.Confidence*100))
		b.WriteString(fmt.Sprintf("   Sentiment: %s | Trend: %s\n", html.EscapeString(s.Sentiment), html.EscapeString(s.TechnicalTrend)))
		b.WriteString(fmt.Sprintf("   Posts analyzed: %d (influencers %d)\n", s.PostsAnalyzed, s.InfluencerPosts))
		if !r.Usable {
			b.WriteString("   ⚠️ Low reliability, treat with caution\n")
		}
	}

	if len(r.Forecast) > 0 {
		b.WriteString("\n📈 <b>Linear trend forecast:</b>\n")
		for _, p := range r.Forecast {
			b.WriteString(fmt.Sprintf("  %s  %.2f\n", p.Date, p.Price))
		}
	} else {
		b.WriteString("\n📈 Linear trend forecast: not enough history\n")
	}
	return b.String()
}

// FormatWatchlist formats the watched symbols.
func FormatWatchlist(symbols []string) string {
	if len(symbols) == 0 {
		return "👀 Watchlist is empty. Add symbols with /watch SYMBOL"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("👀 <b>Watchlist</b> (%d)\n", len(symbols)))
	for _, s := range symbols {
		b.WriteString("  • " + html.EscapeString(s) + "\n")
	}
	return b.String()
}

// FormatHistory formats recent evaluations of a symbol.
func FormatHistory(symbol string, rows []recorder.EvaluationSummary) string {
	if len(rows) == 0 {
		return fmt.Sprintf("No evaluations recorded for %s yet.", html.EscapeString(symbol))
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗂 <b>%s history</b>\n", html.EscapeString(symbol)))
	for _, r := range rows {
		mark := "✅"
		if !r.Usable {
			mark = "⚠️"
		}
		b.WriteString(fmt.Sprintf("%s %s [%s] %.2f → %.2f (%+.2f%%) %s %.0f%%\n",
			mark, r.RecordedAt.Format("01-02 15:04"), r.Timeframe,
			r.CurrentPrice, r.PredictedPrice, r.ChangePercent,
			html.EscapeString(r.Direction), r.Confidence*100))
	}
	return b.String()
}
