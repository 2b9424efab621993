package scheduler

import (
	"context"
	"testing"

	"TickerWatch/internal/logger"
)

type countingReporter struct {
	calls      int
	requestIDs []string
}

func (c *countingReporter) SendReport(ctx context.Context) {
	c.calls++
	c.requestIDs = append(c.requestIDs, logger.RequestID(ctx))
}

func TestRegisterReport(t *testing.T) {
	s := NewScheduler(context.Background(), &countingReporter{})
	if err := s.RegisterReport("0 30 15 * * 1-5"); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}
	if n := len(s.Cron.Entries()); n != 1 {
		t.Errorf("expected 1 entry, got %d", n)
	}
	// Five-field specs lack the seconds column this scheduler expects.
	if err := s.RegisterReport("30 15 * * 1-5"); err == nil {
		t.Error("expected error for five-field spec")
	}
	if err := s.RegisterReport("not a cron"); err == nil {
		t.Error("expected error for garbage spec")
	}
}

func TestRunNow(t *testing.T) {
	rep := &countingReporter{}
	s := NewScheduler(context.Background(), rep)
	s.RunNow()
	s.RunNow()

	if rep.calls != 2 {
		t.Fatalf("expected 2 reports, got %d", rep.calls)
	}
	if rep.requestIDs[0] == "" || rep.requestIDs[0] == rep.requestIDs[1] {
		t.Errorf("each run should carry its own request id, got %v", rep.requestIDs)
	}
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(context.Background(), &countingReporter{})
	if err := s.RegisterReport("0 0 9 * * *"); err != nil {
		t.Fatal(err)
	}
	s.Start()
	s.Stop()
}
