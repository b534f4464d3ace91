package cleanup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Job clears exact coordinates from profiles that have not been
// updated within the retention window. City and state stay; only the
// precise position is dropped.
type Job struct {
	cleaner   coordinateCleaner
	retention time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

type coordinateCleaner interface {
	ClearCoordinatesOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

func New(cleaner coordinateCleaner, retention time.Duration, logger *zap.Logger) *Job {
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		cleaner:   cleaner,
		retention: retention,
		now:       time.Now,
		logger:    logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.cleaner == nil {
		return nil
	}

	cutoff := j.now().Add(-j.retention)
	rows, err := j.cleaner.ClearCoordinatesOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("clear stale coordinates: %w", err)
	}
	if rows > 0 {
		j.logger.Info("stale coordinates cleared", zap.Int64("profiles", rows))
	}

	return nil
}

// RunPeriodically blocks until ctx is done, running the job on every
// tick. The first run happens after one interval, not immediately.
func (j *Job) RunPeriodically(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Warn("coordinate cleanup failed", zap.Error(err))
			}
		}
	}
}
