package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ArchivePruneJobName is the name of the export archive cleanup job
const ArchivePruneJobName = "export_archive_prune"

// ArchivePruner removes archived exports that no longer match a stored
// estimate. It returns how many entries were removed.
type ArchivePruner interface {
	PruneStale(ctx context.Context, concurrency int) (int, error)
}

// ArchivePruneJob deletes stale export archive entries
type ArchivePruneJob struct {
	pruner      ArchivePruner
	concurrency int
	timeout     time.Duration
	logger      *zap.Logger
}

// NewArchivePruneJob creates the cleanup job. timeout bounds one run.
func NewArchivePruneJob(pruner ArchivePruner, concurrency int, timeout time.Duration, logger *zap.Logger) *ArchivePruneJob {
	return &ArchivePruneJob{
		pruner:      pruner,
		concurrency: concurrency,
		timeout:     timeout,
		logger:      logger,
	}
}

// Run executes one cleanup pass. It is called by the scheduler.
func (j *ArchivePruneJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	removed, err := j.pruner.PruneStale(ctx, j.concurrency)
	if err != nil {
		j.logger.Error("export archive prune failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("export archive prune completed",
		zap.Int("removed", removed),
		zap.Duration("duration", time.Since(start)))
}
