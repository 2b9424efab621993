package scheduler

import (
	"context"
	"fmt"

	"TickerWatch/internal/logger"

	"github.com/robfig/cron/v3"
)

// Reporter pushes the analysis report to the admin chat.
type Reporter interface {
	SendReport(ctx context.Context)
}

// Scheduler runs the periodic report job.
type Scheduler struct {
	Cron     *cron.Cron
	Reporter Reporter
	Ctx      context.Context
}

// NewScheduler creates a Scheduler whose cron specs include a seconds field.
func NewScheduler(ctx context.Context, r Reporter) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Reporter: r,
		Ctx:      ctx,
	}
}

// RegisterReport schedules the report on spec, e.g. "0 30 15 * * 1-5".
func (s *Scheduler) RegisterReport(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.reportTask); err != nil {
		return fmt.Errorf("register report task %q: %w", spec, err)
	}
	logger.Info(s.Ctx, "report task registered", "cron", spec)
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.Info(s.Ctx, "scheduler started", "jobs", len(s.Cron.Entries()))
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logger.Info(s.Ctx, "scheduler stopped")
}

// RunNow executes the report task immediately.
func (s *Scheduler) RunNow() {
	s.reportTask()
}

func (s *Scheduler) reportTask() {
	ctx := logger.WithRequestID(s.Ctx)
	op := logger.StartOperation(ctx, "scheduler.report")
	s.Reporter.SendReport(op.Context())
	op.End()
}
