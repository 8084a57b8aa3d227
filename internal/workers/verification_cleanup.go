package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/oomool/backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

const cleanupWorker = "verification-cleanup"

// CodeCleaner removes verification codes that can no longer be redeemed.
type CodeCleaner interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// Pruner drops idle in-process rate limit windows.
type Pruner interface {
	Prune(window time.Duration)
}

// VerificationCleanup periodically deletes used and expired verification codes.
type VerificationCleanup struct {
	cleaner     CodeCleaner
	pruner      Pruner
	pruneWindow time.Duration
	schedule    string
	cron        *cron.Cron
}

// NewVerificationCleanup builds the worker. pruner may be nil.
func NewVerificationCleanup(cleaner CodeCleaner, pruner Pruner, pruneWindow time.Duration, schedule string) *VerificationCleanup {
	if schedule == "" {
		schedule = "@hourly"
	}
	return &VerificationCleanup{
		cleaner:     cleaner,
		pruner:      pruner,
		pruneWindow: pruneWindow,
		schedule:    schedule,
		cron:        cron.New(),
	}
}

func (w *VerificationCleanup) Start() error {
	if _, err := w.cron.AddFunc(w.schedule, w.RunOnce); err != nil {
		return fmt.Errorf("failed to schedule %s: %w", cleanupWorker, err)
	}
	w.cron.Start()
	logger.Info("worker started", "worker", cleanupWorker, "schedule", w.schedule)
	return nil
}

// Stop waits for a running cleanup to finish.
func (w *VerificationCleanup) Stop() {
	<-w.cron.Stop().Done()
	logger.Info("worker stopped", "worker", cleanupWorker)
}

func (w *VerificationCleanup) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	removed, err := w.cleaner.CleanupExpired(ctx)
	logger.WorkerLog(cleanupWorker, "delete stale codes", err)
	if err == nil && removed > 0 {
		logger.Info("stale verification codes removed", "worker", cleanupWorker, "count", removed)
	}

	if w.pruner != nil {
		w.pruner.Prune(w.pruneWindow)
	}
}
