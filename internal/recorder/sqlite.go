package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the journal to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signal_relays (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			request_id TEXT,
			ticker     TEXT,
			signal     TEXT,
			price      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_ts ON signal_relays(timestamp)`,

		`CREATE TABLE IF NOT EXISTS strategy_requests (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			request_id  TEXT,
			chat_id     TEXT,
			mode        TEXT,
			entry       TEXT,
			take_profit TEXT,
			stop_loss   TEXT,
			atr         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_strategy_ts ON strategy_requests(timestamp)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSignal(evt *SignalEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO signal_relays
		(timestamp, request_id, ticker, signal, price)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), evt.RequestID, evt.Ticker, evt.Signal, evt.Price,
	)
	return err
}

// Decimals are stored as text to keep them exact.
func (r *SQLiteRecorder) RecordStrategy(evt *StrategyEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO strategy_requests
		(timestamp, request_id, chat_id, mode, entry, take_profit, stop_loss, atr)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.RequestID, evt.ChatID, evt.Mode,
		evt.Entry, evt.TakeProfit, evt.StopLoss, evt.ATR,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
