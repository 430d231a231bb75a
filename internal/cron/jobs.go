package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Pruner is the subset of the sqlite store needed by the retention job.
// Defined here to avoid a dependency on the store module.
type Pruner interface {
	PruneBefore(cutoff time.Time) (int64, error)
}

// RetentionPruneJob deletes conversations older than MaxAge.
type RetentionPruneJob struct {
	Store        Pruner
	MaxAge       time.Duration
	Logger       *slog.Logger
	ScheduleExpr string // empty = default "0 * * * *"
}

// Compile-time interface check.
var _ Job = (*RetentionPruneJob)(nil)

// Name implements Job.
func (j *RetentionPruneJob) Name() string {
	return "retention_prune"
}

// Schedule implements Job.
func (j *RetentionPruneJob) Schedule() string {
	if j.ScheduleExpr != "" {
		return j.ScheduleExpr
	}
	return "0 * * * *"
}

// Run deletes conversations that ended before now minus MaxAge.
func (j *RetentionPruneJob) Run(ctx context.Context) error {
	if ctx.Err() != nil {
		return fmt.Errorf("cron: retention prune cancelled: %w", ctx.Err())
	}

	pruned, err := j.Store.PruneBefore(time.Now().Add(-j.MaxAge))
	if err != nil {
		return fmt.Errorf("cron: retention prune: %w", err)
	}
	if pruned > 0 {
		j.Logger.Info("cron: pruned old conversations", "count", pruned)
	}
	return nil
}
