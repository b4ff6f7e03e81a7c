package recorder

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"StockSage/internal/model"
)

// Forecast point kinds stored in forecast_points.
const (
	pointService = "service"
	pointLinear  = "linear"
)

// SQLiteRecorder persists evaluations to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS evaluations (
			id               TEXT PRIMARY KEY,
			timestamp        INTEGER NOT NULL,
			trigger_kind     TEXT,
			symbol           TEXT NOT NULL,
			timeframe        TEXT NOT NULL,
			source           TEXT,
			current_price    REAL,
			predicted_price  REAL,
			change           REAL,
			change_percent   REAL,
			confidence       REAL,
			direction        TEXT,
			sentiment        TEXT,
			posts_analyzed   INTEGER,
			influencer_posts INTEGER,
			technical_trend  TEXT,
			usable           INTEGER,
			period_high      REAL,
			period_low       REAL,
			local_trend      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_eval_symbol_ts ON evaluations(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS forecast_points (
			evaluation_id TEXT NOT NULL REFERENCES evaluations(id),
			seq           INTEGER NOT NULL,
			kind          TEXT NOT NULL,
			date          TEXT NOT NULL,
			price         REAL,
			PRIMARY KEY (evaluation_id, kind, seq)
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordEvaluation(e *Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = r.now()
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO evaluations
		(id, timestamp, trigger_kind, symbol, timeframe, source,
		 current_price, predicted_price, change, change_percent, confidence,
		 direction, sentiment, posts_analyzed, influencer_posts, technical_trend,
		 usable, period_high, period_low, local_trend)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		e.ID, e.RecordedAt.UnixNano(), e.Trigger, e.Symbol, string(e.Timeframe), e.Source,
		e.CurrentPrice, e.PredictedPrice, e.Change, e.ChangePercent, e.Confidence,
		e.Direction, e.Sentiment, e.PostsAnalyzed, e.InfluencerPosts, e.TechnicalTrend,
		e.Usable, e.PeriodHigh, e.PeriodLow, e.LocalTrend,
	)
	if err != nil {
		return fmt.Errorf("insert evaluation: %w", err)
	}

	if p := e.ServicePoint; p != nil && p.PredictedPrice != nil {
		if _, err := tx.Exec(`INSERT INTO forecast_points (evaluation_id, seq, kind, date, price) VALUES (?,?,?,?,?)`,
			e.ID, 0, pointService, p.Date, *p.PredictedPrice); err != nil {
			return fmt.Errorf("insert service point: %w", err)
		}
	}
	for i, p := range e.Forecast {
		if _, err := tx.Exec(`INSERT INTO forecast_points (evaluation_id, seq, kind, date, price) VALUES (?,?,?,?,?)`,
			e.ID, i, pointLinear, p.Date, p.Price); err != nil {
			return fmt.Errorf("insert forecast point: %w", err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Recent(symbol string, limit int) ([]EvaluationSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT id, timestamp, trigger_kind, symbol, timeframe, current_price, predicted_price,
		change_percent, confidence, direction, usable
		FROM evaluations`
	args := []interface{}{}
	if symbol = strings.ToUpper(strings.TrimSpace(symbol)); symbol != "" {
		query += ` WHERE symbol = ?`
		args = append(args, symbol)
	}
	query += ` ORDER BY timestamp DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	var out []EvaluationSummary
	for rows.Next() {
		var (
			s  EvaluationSummary
			ts int64
			tf string
		)
		if err := rows.Scan(&s.ID, &ts, &s.Trigger, &s.Symbol, &tf, &s.CurrentPrice, &s.PredictedPrice,
			&s.ChangePercent, &s.Confidence, &s.Direction, &s.Usable); err != nil {
			return nil, err
		}
		s.RecordedAt = time.Unix(0, ts)
		s.Timeframe = model.Timeframe(tf)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
