// Package scheduler runs the background loops: the snapshot refresher
// that feeds the in-memory index and the trash collector.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/smerle/marque/internal/index"
	"github.com/smerle/marque/internal/logger"
	"github.com/smerle/marque/internal/store"
)

// SnapshotRefresher periodically reloads every user's documents from
// the store into the memory index. It owns the subscription the views
// are derived from: the services fire the trigger channel after each
// successful commit so changes show up without waiting for the next
// tick.
type SnapshotRefresher struct {
	store    store.Store
	index    *index.MemoryIndex
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
	trigger  chan struct{}
}

// NewSnapshotRefresher creates a refresher. trigger may be nil when
// only periodic refreshes are wanted.
func NewSnapshotRefresher(
	st store.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	trigger chan struct{},
) *SnapshotRefresher {
	return &SnapshotRefresher{
		store:    st,
		index:    idx,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
		trigger:  trigger,
	}
}

// Start loads an initial snapshot and begins the refresh loop.
func (sr *SnapshotRefresher) Start(ctx context.Context) error {
	if err := sr.Refresh(ctx); err != nil {
		return fmt.Errorf("initial snapshot refresh failed: %w", err)
	}

	ticker := time.NewTicker(sr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := sr.Refresh(ctx); err != nil {
					sr.logger.Error("snapshot refresh failed", logger.Error(err))
				}
			case <-sr.trigger:
				if err := sr.Refresh(ctx); err != nil {
					sr.logger.Error("triggered snapshot refresh failed", logger.Error(err))
				}
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the refresh loop.
func (sr *SnapshotRefresher) Stop() {
	close(sr.stopCh)
}

// Refresh reloads every known user's documents into the index. A
// failure for one user is logged and does not block the others.
func (sr *SnapshotRefresher) Refresh(ctx context.Context) error {
	uids, err := sr.store.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	for _, uid := range uids {
		bookmarks, err := sr.store.ListBookmarks(ctx, uid)
		if err != nil {
			sr.logger.Warn("failed to load bookmarks for snapshot",
				logger.String("uid", uid),
				logger.Error(err))
			continue
		}
		folders, err := sr.store.ListFolders(ctx, uid)
		if err != nil {
			sr.logger.Warn("failed to load folders for snapshot",
				logger.String("uid", uid),
				logger.Error(err))
			continue
		}
		sr.index.Update(uid, bookmarks, folders)
	}

	sr.logger.Debug("snapshot refreshed", logger.Int("users", len(uids)))
	return nil
}
