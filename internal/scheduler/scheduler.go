// Package scheduler runs the periodic watchlist evaluation and serves bot
// commands.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"StockSage/internal/model"
	"StockSage/internal/notifier"
	"StockSage/internal/recorder"
	"StockSage/internal/watchlist"
)

// ReportCollector produces a report for one symbol.
type ReportCollector interface {
	Collect(ctx context.Context, symbol string, tf model.Timeframe) (*model.Report, error)
}

// Sender delivers a formatted message.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

const (
	sendRetries    = 3
	defaultHistory = 5
	maxHistory     = 20
)

var (
	ErrEvaluationRunning = errors.New("watchlist evaluation already running")
	ErrStopped           = errors.New("scheduler stopped")
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Collector ReportCollector
	Watchlist *watchlist.Manager
	Notifier  Sender
	Recorder  recorder.Recorder
	Timeframe model.Timeframe // used for scheduled runs
	Ctx       context.Context

	mu      sync.Mutex // guards stopped and wg.Add
	stopped bool
	running sync.Mutex // held for the duration of a watchlist evaluation
	wg      sync.WaitGroup
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col ReportCollector, wl *watchlist.Manager, sender Sender, rec recorder.Recorder, tf model.Timeframe) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Watchlist: wl,
		Notifier:  sender,
		Recorder:  rec,
		Timeframe: tf,
		Ctx:       ctx,
	}
}

// RegisterAll registers the watchlist evaluation task.
func (s *Scheduler) RegisterAll(evaluateCron string) error {
	if _, err := s.Cron.AddFunc(evaluateCron, func() { s.RunEvaluateNow() }); err != nil {
		return fmt.Errorf("register evaluate task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("jobs", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs, including
// evaluations started with StartEvaluation.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	<-s.Cron.Stop().Done()
	s.wg.Wait()
	log.Info().Msg("scheduler stopped")
}

// RunEvaluateNow evaluates the watchlist in the calling goroutine. It
// returns false without doing anything if an evaluation is in progress.
func (s *Scheduler) RunEvaluateNow() bool {
	if !s.running.TryLock() {
		log.Warn().Msg("watchlist evaluation already running, skipping")
		return false
	}
	defer s.running.Unlock()
	s.evaluateWatchlist()
	return true
}

// StartEvaluation evaluates the watchlist in the background. Stop waits
// for the run to finish.
func (s *Scheduler) StartEvaluation() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return ErrStopped
	}
	if !s.running.TryLock() {
		return ErrEvaluationRunning
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.running.Unlock()
		s.evaluateWatchlist()
	}()
	return nil
}

func (s *Scheduler) evaluateWatchlist() {
	symbols := s.Watchlist.List()
	log.Info().Int("symbols", len(symbols)).Str("timeframe", string(s.Timeframe)).Msg("running watchlist evaluation")

	var failed []string
	for _, sym := range symbols {
		if s.Ctx.Err() != nil {
			return
		}
		report, err := s.evaluate(s.Ctx, sym, s.Timeframe, recorder.TriggerScheduled)
		if err != nil {
			log.Error().Err(err).Str("symbol", sym).Msg("evaluate")
			failed = append(failed, sym)
			continue
		}
		s.trySend(notifier.FormatReport(report))
	}
	if len(failed) > 0 {
		s.trySend(fmt.Sprintf("❌ Evaluation failed for: %s", html.EscapeString(strings.Join(failed, ", "))))
	}
}

// evaluate collects and records one report.
func (s *Scheduler) evaluate(ctx context.Context, symbol string, tf model.Timeframe, trigger string) (*model.Report, error) {
	report, err := s.Collector.Collect(ctx, symbol, tf)
	if err != nil {
		return nil, err
	}
	if err := s.Recorder.RecordEvaluation(recorder.NewEvaluation(report, trigger)); err != nil {
		log.Error().Err(err).Str("symbol", report.Symbol).Msg("record evaluation")
	}
	return report, nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	name := strings.ToLower(fields[0])
	if i := strings.IndexByte(name, '@'); i > 0 {
		name = name[:i] // /predict@SomeBot
	}
	args := fields[1:]

	switch name {
	case "/predict":
		if len(args) == 0 {
			return "Usage: /predict SYMBOL [1d|1w|1m]"
		}
		tf := s.Timeframe
		if len(args) > 1 {
			parsed, err := model.ParseTimeframe(args[1])
			if err != nil {
				return "Unknown timeframe, use 1d, 1w or 1m"
			}
			tf = parsed
		}
		report, err := s.evaluate(ctx, args[0], tf, recorder.TriggerCommand)
		if err != nil {
			log.Error().Err(err).Str("symbol", args[0]).Msg("predict command")
			return fmt.Sprintf("❌ Could not evaluate %s: %s", html.EscapeString(watchlist.Normalize(args[0])), html.EscapeString(err.Error()))
		}
		return notifier.FormatReport(report)

	case "/watch":
		if len(args) == 0 {
			return "Usage: /watch SYMBOL"
		}
		sym := watchlist.Normalize(args[0])
		added, err := s.Watchlist.Add(ctx, sym)
		if err != nil {
			log.Error().Err(err).Msg("watch command")
			return "❌ Could not update watchlist"
		}
		if !added {
			return fmt.Sprintf("%s is already on the watchlist", html.EscapeString(sym))
		}
		return fmt.Sprintf("✅ Watching %s", html.EscapeString(sym))

	case "/unwatch":
		if len(args) == 0 {
			return "Usage: /unwatch SYMBOL"
		}
		sym := watchlist.Normalize(args[0])
		removed, err := s.Watchlist.Remove(ctx, sym)
		if err != nil {
			log.Error().Err(err).Msg("unwatch command")
			return "❌ Could not update watchlist"
		}
		if !removed {
			return fmt.Sprintf("%s is not on the watchlist", html.EscapeString(sym))
		}
		return fmt.Sprintf("🗑 Stopped watching %s", html.EscapeString(sym))

	case "/watchlist":
		return notifier.FormatWatchlist(s.Watchlist.List())

	case "/history":
		if len(args) == 0 {
			return "Usage: /history SYMBOL [count]"
		}
		limit := defaultHistory
		if len(args) > 1 {
			if n, err := strconv.Atoi(args[1]); err == nil && n > 0 {
				limit = min(n, maxHistory)
			}
		}
		sym := watchlist.Normalize(args[0])
		rows, err := s.Recorder.Recent(sym, limit)
		if err != nil {
			log.Error().Err(err).Msg("history command")
			return "❌ Could not load history"
		}
		return notifier.FormatHistory(sym, rows)

	case "/evaluate":
		switch err := s.StartEvaluation(); {
		case errors.Is(err, ErrEvaluationRunning):
			return "⏳ An evaluation is already running"
		case err != nil:
			return "❌ Scheduler is shutting down"
		}
		return "⏳ Evaluating watchlist…"

	default:
		return helpText
	}
}

const helpText = `Available commands:
• /predict SYMBOL [1d|1w|1m]
• /watch SYMBOL
• /unwatch SYMBOL
• /watchlist
• /history SYMBOL [count]
• /evaluate`

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
