package service

import (
	"context"
	"fmt"
	"time"

	"github.com/smerle/marque/internal/domain"
	"github.com/smerle/marque/internal/logger"
	"github.com/smerle/marque/internal/store"
)

// Tags manages tag rewrites. Tags are not a stored entity; renaming or
// deleting one rewrites the tag string across every bookmark that
// references it, in one atomic write set.
type Tags struct {
	store  store.Store
	logger logger.Logger
	now    func() time.Time
	notify func()
}

// NewTags creates the tag service.
func NewTags(st store.Store, log logger.Logger, now func() time.Time, notify func()) *Tags {
	return &Tags{store: st, logger: log, now: defaultNow(now), notify: notify}
}

// List returns the distinct tags across the user's non-trashed
// bookmarks, sorted.
func (s *Tags) List(ctx context.Context, uid string) ([]string, error) {
	bookmarks, err := s.store.ListBookmarks(ctx, uid)
	if err != nil {
		return nil, err
	}
	return domain.DistinctTags(bookmarks), nil
}

// rewrite applies fn to the tag set of every bookmark carrying tag and
// commits the changed documents as atomic batches.
func (s *Tags) rewrite(ctx context.Context, uid, tag string, fn func([]string) []string) (int, error) {
	if tag == "" {
		return 0, fmt.Errorf("%w: tag name is required", domain.ErrValidation)
	}

	bookmarks, err := s.store.ListBookmarks(ctx, uid)
	if err != nil {
		return 0, err
	}

	now := s.now()
	ops := make([]store.WriteOp, 0)
	for _, b := range bookmarks {
		if !b.HasTag(tag) {
			continue
		}
		b.Tags = fn(b.Tags)
		b.UpdatedAt = now
		ops = append(ops, store.PutBookmark(b))
	}
	if len(ops) == 0 {
		return 0, nil
	}

	if err := applyChunked(ctx, s.store, uid, ops); err != nil {
		return 0, err
	}
	if s.notify != nil {
		s.notify()
	}
	return len(ops), nil
}

// Rename rewrites from into to on every referencing bookmark,
// deduplicating when a bookmark already carries both.
func (s *Tags) Rename(ctx context.Context, uid, from, to string) (int, error) {
	if to == "" {
		return 0, fmt.Errorf("%w: new tag name is required", domain.ErrValidation)
	}
	n, err := s.rewrite(ctx, uid, from, func(tags []string) []string {
		renamed := make([]string, 0, len(tags))
		for _, t := range tags {
			if t == from {
				t = to
			}
			renamed = append(renamed, t)
		}
		return domain.MergeTags(renamed, nil)
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("tag renamed",
		logger.String("uid", uid),
		logger.String("from", from),
		logger.String("to", to),
		logger.Int("bookmarks", n))
	return n, nil
}

// Delete removes the tag from every referencing bookmark.
func (s *Tags) Delete(ctx context.Context, uid, tag string) (int, error) {
	n, err := s.rewrite(ctx, uid, tag, func(tags []string) []string {
		kept := make([]string, 0, len(tags))
		for _, t := range tags {
			if t != tag {
				kept = append(kept, t)
			}
		}
		return kept
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("tag deleted",
		logger.String("uid", uid),
		logger.String("tag", tag),
		logger.Int("bookmarks", n))
	return n, nil
}
