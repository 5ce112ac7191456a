package cron

import (
	"context"
	"fmt"
	"time"

	"tutorly/services/earnings"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AccrualWorker owns the periodic accrual tick: every interval it runs a
// full accrual pass so lessons that have since finished are billed without
// waiting for a mutation event. Each tick is synchronous CPU work; there is
// no in-flight state to cancel beyond stopping the timer.
type AccrualWorker struct {
	Earnings earnings.Service
	Logger   *zap.Logger
	Interval time.Duration

	c *cron.Cron
}

func NewAccrualWorker(svc earnings.Service, logger *zap.Logger, interval time.Duration) *AccrualWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &AccrualWorker{Earnings: svc, Logger: logger, Interval: interval}
}

// Start schedules the tick and runs one pass immediately, mirroring the
// evaluate-on-mount behavior mutations get.
func (w *AccrualWorker) Start() error {
	w.tick()

	w.c = cron.New()
	spec := fmt.Sprintf("@every %s", w.Interval)
	if _, err := w.c.AddFunc(spec, w.tick); err != nil {
		return fmt.Errorf("scheduling accrual tick: %w", err)
	}
	w.c.Start()
	w.Logger.Info("accrual worker started", zap.Duration("interval", w.Interval))
	return nil
}

// Stop tears the timer down, waiting for a running tick to finish.
func (w *AccrualWorker) Stop() {
	if w.c == nil {
		return
	}
	<-w.c.Stop().Done()
	w.Logger.Info("accrual worker stopped")
}

func (w *AccrualWorker) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := w.Earnings.RunAccrualPass(ctx, time.Now()); err != nil {
		w.Logger.Error("accrual tick failed", zap.Error(err))
	}
}
