package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"StockSage/internal/app"
	"StockSage/internal/config"
	"StockSage/internal/model"
	"StockSage/internal/predictor"
	"StockSage/internal/recorder"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "Path to YAML config")
	symbol := flag.String("symbol", "", "Ticker symbol (required)")
	tfStr := flag.String("timeframe", "1w", "Forecast horizon: 1d, 1w or 1m")
	provider := flag.String("provider", "", "Override data provider (yahoo, mock)")
	seed := flag.Uint64("seed", 0, "Seed for the trend forecast noise (0 = random)")
	asJSON := flag.Bool("json", false, "Print the full report as JSON")
	csvPath := flag.String("csv", "", "Write chart points to CSV")
	record := flag.Bool("record", false, "Record the evaluation in the SQLite history")
	flag.Parse()

	if *symbol == "" {
		fmt.Fprintln(os.Stderr, "-symbol is required")
		flag.Usage()
		os.Exit(2)
	}
	tf, err := model.ParseTimeframe(*tfStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid timeframe: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Load config: %v\n", err)
		os.Exit(1)
	}
	if *provider != "" {
		cfg.DataSource.Provider = *provider
	}
	config.SetupLogger(cfg.Logging.Level, true)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fetcher, err := app.NewFetcher(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init fetcher")
	}
	cache, closer, err := app.NewCache(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("cache unavailable, fetching directly")
		cache, closer = nil, nil
	}
	if closer != nil {
		defer closer.Close()
	}
	col, err := app.NewCollector(cfg, fetcher, cache)
	if err != nil {
		log.Fatal().Err(err).Msg("init collector")
	}
	if *seed != 0 {
		col.Predictor = predictor.NewSeeded(*seed)
	}

	report, err := col.Collect(ctx, *symbol, tf)
	if err != nil {
		log.Fatal().Err(err).Str("symbol", *symbol).Msg("collect")
	}

	if *record {
		recordReport(cfg.Database.SQLitePath, report)
	}

	if *csvPath != "" {
		if err := writeChartCSV(*csvPath, report.Chart); err != nil {
			log.Fatal().Err(err).Msg("write csv")
		}
		fmt.Printf("Wrote %d chart points to %s\n", len(report.Chart), *csvPath)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.Fatal().Err(err).Msg("encode report")
		}
		return
	}
	printReport(report)
}

func recordReport(path string, report *model.Report) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Error().Err(err).Msg("create database directory")
		return
	}
	rec, err := recorder.NewSQLiteRecorder(path)
	if err != nil {
		log.Error().Err(err).Msg("open recorder")
		return
	}
	defer rec.Close()
	if err := rec.RecordEvaluation(recorder.NewEvaluation(report, recorder.TriggerCLI)); err != nil {
		log.Error().Err(err).Msg("record evaluation")
	}
}

func writeChartCSV(path string, points []model.ChartPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{"date", "kind", "actual_price", "predicted_price"})
	for _, p := range points {
		w.Write([]string{p.Date, string(p.Kind), formatPrice(p.ActualPrice), formatPrice(p.PredictedPrice)})
	}
	w.Flush()
	return w.Error()
}

func formatPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', 2, 64)
}

func printReport(r *model.Report) {
	fmt.Printf("%s  %s  (source %s, %s)\n", r.Symbol, r.Timeframe, r.Source, r.GeneratedAt.Format(time.DateTime))
	fmt.Printf("History: %d points, range %.2f - %.2f, local trend %s\n",
		len(r.History), r.PeriodLow, r.PeriodHigh, r.LocalTrend)

	if s := r.Stats; s != nil {
		fmt.Printf("Current price:   %.2f\n", s.CurrentPrice)
		fmt.Printf("Predicted price: %.2f (%+.2f, %+.2f%%)\n", s.PredictedPrice, s.Change, s.ChangePercent)
		fmt.Printf("Direction: %s  Sentiment: %s  Trend: %s  Confidence: %.0f%%\n",
			s.Direction, s.Sentiment, s.TechnicalTrend, s.Confidence*100)
		fmt.Printf("Posts analyzed: %d (influencers %d)\n", s.PostsAnalyzed, s.InfluencerPosts)
	}
	switch {
	case r.Prediction == nil:
		fmt.Println("Prediction service: unavailable")
	case r.Usable:
		fmt.Println("Prediction service: usable")
	default:
		fmt.Println("Prediction service: low reliability")
	}

	if len(r.Forecast) == 0 {
		fmt.Printf("Linear trend forecast: needs at least %d points\n", predictor.Window)
		return
	}
	fmt.Println("Linear trend forecast:")
	for _, p := range r.Forecast {
		fmt.Printf("  %s  %.2f\n", p.Date, p.Price)
	}
}
