package recorder

import (
	"path/filepath"
	"testing"
)

func TestSQLiteRecorder(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	if err := r.RecordSignal(&SignalEvent{RequestID: "r1", Ticker: "BBAI", Signal: "BUY", Price: "4.2"}); err != nil {
		t.Fatalf("record signal: %v", err)
	}
	if err := r.RecordStrategy(&StrategyEvent{
		RequestID: "r2", ChatID: "7", Mode: "long", Entry: "5.85", TakeProfit: "7.85", StopLoss: "4.35", ATR: "1",
	}); err != nil {
		t.Fatalf("record strategy: %v", err)
	}

	var ticker, price string
	if err := r.db.QueryRow(`SELECT ticker, price FROM signal_relays WHERE request_id = ?`, "r1").Scan(&ticker, &price); err != nil {
		t.Fatalf("query signal: %v", err)
	}
	if ticker != "BBAI" || price != "4.2" {
		t.Errorf("unexpected row %s %s", ticker, price)
	}

	var tp string
	if err := r.db.QueryRow(`SELECT take_profit FROM strategy_requests WHERE chat_id = ?`, "7").Scan(&tp); err != nil {
		t.Fatalf("query strategy: %v", err)
	}
	if tp != "7.85" {
		t.Errorf("expected 7.85, got %s", tp)
	}
}
