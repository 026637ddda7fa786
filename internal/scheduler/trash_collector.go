package scheduler

import (
	"context"
	"time"

	"github.com/smerle/marque/internal/domain"
	"github.com/smerle/marque/internal/logger"
	"github.com/smerle/marque/internal/store"
)

// DefaultTrashThreshold is how long a bookmark may sit in the trash
// before the collector purges it.
const DefaultTrashThreshold = 30 * 24 * time.Hour

// TrashCollector permanently deletes bookmarks that have been trashed
// longer than the threshold.
type TrashCollector struct {
	store     store.Store
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	stopCh    chan struct{}
}

// NewTrashCollector creates a collector. A zero threshold falls back
// to the default.
func NewTrashCollector(
	st store.Store,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
) *TrashCollector {
	if threshold == 0 {
		threshold = DefaultTrashThreshold
	}
	return &TrashCollector{
		store:     st,
		logger:    log,
		interval:  interval,
		threshold: threshold,
		stopCh:    make(chan struct{}),
	}
}

// Start runs one collection immediately and begins the periodic loop.
func (tc *TrashCollector) Start(ctx context.Context) error {
	if err := tc.Collect(ctx); err != nil {
		tc.logger.Warn("initial trash collection failed", logger.Error(err))
	}

	ticker := time.NewTicker(tc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := tc.Collect(ctx); err != nil {
					tc.logger.Error("trash collection failed", logger.Error(err))
				}
			case <-tc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the collector.
func (tc *TrashCollector) Stop() {
	close(tc.stopCh)
}

// Collect purges every bookmark trashed longer than the threshold.
func (tc *TrashCollector) Collect(ctx context.Context) error {
	uids, err := tc.store.ListUsers(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	purged := 0
	for _, uid := range uids {
		bookmarks, err := tc.store.ListBookmarks(ctx, uid)
		if err != nil {
			tc.logger.Warn("failed to list bookmarks for trash collection",
				logger.String("uid", uid),
				logger.Error(err))
			continue
		}

		expired := CollectExpired(bookmarks, now, tc.threshold)
		if len(expired) == 0 {
			continue
		}

		ops := make([]store.WriteOp, 0, len(expired))
		for _, id := range expired {
			ops = append(ops, store.DeleteBookmark(id))
		}
		// A long-neglected trash can exceed the per-batch limit, so the
		// deletes go out in bounded chunks.
		if err := tc.purge(ctx, uid, ops); err != nil {
			tc.logger.Warn("failed to purge expired trash",
				logger.String("uid", uid),
				logger.Error(err))
			continue
		}
		purged += len(expired)
	}

	if purged > 0 {
		tc.logger.Info("trash collection completed", logger.Int("purged", purged))
	}
	return nil
}

func (tc *TrashCollector) purge(ctx context.Context, uid string, ops []store.WriteOp) error {
	for start := 0; start < len(ops); start += store.MaxBatchOps {
		end := start + store.MaxBatchOps
		if end > len(ops) {
			end = len(ops)
		}
		if err := tc.store.ApplyBatch(ctx, uid, ops[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// CollectExpired returns the ids of bookmarks whose trashed state is
// older than threshold at the given instant. UpdatedAt is refreshed on
// every mutation, so it marks when the bookmark entered the trash.
func CollectExpired(bookmarks []*domain.Bookmark, now time.Time, threshold time.Duration) []string {
	expired := make([]string, 0)
	for _, b := range bookmarks {
		if b.IsTrashed && now.Sub(b.UpdatedAt) > threshold {
			expired = append(expired, b.ID)
		}
	}
	return expired
}
