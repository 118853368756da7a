package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RetryWorker periodically replays the submission queue in the
// background. One pass runs at a time; the ticker interval bounds how
// often a failed payload is retried.
type RetryWorker struct {
	submissions *SubmissionService
	interval    time.Duration
	log         *zap.Logger
	cancel      context.CancelFunc
	done        chan struct{}
}

// NewRetryWorker creates a new retry worker.
func NewRetryWorker(submissions *SubmissionService, interval time.Duration, log *zap.Logger) *RetryWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &RetryWorker{
		submissions: submissions,
		interval:    interval,
		log:         log,
		done:        make(chan struct{}),
	}
}

// Start launches the background loop. An immediate pass drains anything
// left over from a previous run before the first tick.
func (w *RetryWorker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	go func() {
		defer close(w.done)

		w.runPass(ctx)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.runPass(ctx)
			}
		}
	}()

	w.log.Info("Retry worker started", zap.Duration("interval", w.interval))
}

func (w *RetryWorker) runPass(ctx context.Context) {
	succeeded, failed, err := w.submissions.RetryPending(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error("Retry pass failed", zap.Error(err))
		}
		return
	}
	if succeeded > 0 || failed > 0 {
		w.log.Info("Retry pass finished",
			zap.Int("delivered", succeeded),
			zap.Int("still_pending", failed),
		)
	}
}

// Stop cancels the loop and waits for the current pass to finish.
func (w *RetryWorker) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
	w.log.Info("Retry worker stopped")
}
