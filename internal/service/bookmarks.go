package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smerle/marque/internal/domain"
	"github.com/smerle/marque/internal/logger"
	"github.com/smerle/marque/internal/store"
)

// Bookmarks is the bookmark mutation service. Single-record operations
// produce exactly one atomic document write; bulk operations apply one
// mutation uniformly to an ordered id list as atomic batches.
type Bookmarks struct {
	store  store.Store
	logger logger.Logger
	now    func() time.Time
	notify func()
}

// NewBookmarks creates the bookmark service. now may be nil (defaults
// to time.Now); notify, when non-nil, is invoked after every
// successful commit so the snapshot refresher can pick up the change.
func NewBookmarks(st store.Store, log logger.Logger, now func() time.Time, notify func()) *Bookmarks {
	return &Bookmarks{store: st, logger: log, now: defaultNow(now), notify: notify}
}

func (s *Bookmarks) committed() {
	if s.notify != nil {
		s.notify()
	}
}

// CreateInput carries the fields of an explicit "add" action.
type CreateInput struct {
	Type             domain.BookmarkType `json:"type"`
	Title            string              `json:"title"`
	URL              string              `json:"url"`
	TextContent      string              `json:"textContent"`
	Notes            string              `json:"notes"`
	FolderID         string              `json:"folderId"`
	Tags             []string            `json:"tags"`
	PreviewThumbnail string              `json:"previewThumbnail"`
}

// Create validates the input and stores a new bookmark. Links require
// a URL, text notes require content; a missing title defaults to the
// URL or to the standard note title.
func (s *Bookmarks) Create(ctx context.Context, uid string, in CreateInput) (*domain.Bookmark, error) {
	title := strings.TrimSpace(in.Title)

	switch in.Type {
	case domain.TypeLink:
		if strings.TrimSpace(in.URL) == "" {
			return nil, fmt.Errorf("%w: a link requires a url", domain.ErrValidation)
		}
		if title == "" {
			title = in.URL
		}
	case domain.TypeText:
		if strings.TrimSpace(in.TextContent) == "" {
			return nil, fmt.Errorf("%w: a text note requires content", domain.ErrValidation)
		}
		if title == "" {
			title = domain.DefaultNoteTitle
		}
	default:
		return nil, fmt.Errorf("%w: unknown bookmark type %q", domain.ErrValidation, in.Type)
	}

	now := s.now()
	b := &domain.Bookmark{
		ID:               uuid.NewString(),
		Type:             in.Type,
		Title:            title,
		URL:              in.URL,
		TextContent:      in.TextContent,
		Notes:            in.Notes,
		FolderID:         in.FolderID,
		Tags:             domain.MergeTags(nil, in.Tags),
		PreviewThumbnail: in.PreviewThumbnail,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.store.SaveBookmark(ctx, uid, b); err != nil {
		return nil, err
	}
	s.committed()
	s.logger.Info("bookmark created",
		logger.String("uid", uid),
		logger.String("id", b.ID),
		logger.String("type", string(b.Type)))
	return b, nil
}

// Get retrieves one bookmark.
func (s *Bookmarks) Get(ctx context.Context, uid, id string) (*domain.Bookmark, error) {
	return s.store.GetBookmark(ctx, uid, id)
}

// List retrieves all of a user's bookmarks.
func (s *Bookmarks) List(ctx context.Context, uid string) ([]*domain.Bookmark, error) {
	return s.store.ListBookmarks(ctx, uid)
}

// mutate loads a bookmark, applies fn, refreshes UpdatedAt and writes
// the document back. One atomic update per call.
func (s *Bookmarks) mutate(ctx context.Context, uid, id string, fn func(*domain.Bookmark)) error {
	b, err := s.store.GetBookmark(ctx, uid, id)
	if err != nil {
		return err
	}
	fn(b)
	b.UpdatedAt = s.now()
	if err := s.store.SaveBookmark(ctx, uid, b); err != nil {
		return err
	}
	s.committed()
	return nil
}

// ToggleFavorite sets the favorite flag.
func (s *Bookmarks) ToggleFavorite(ctx context.Context, uid, id string, value bool) error {
	return s.mutate(ctx, uid, id, func(b *domain.Bookmark) { b.IsFavorite = value })
}

// ToggleRead sets the read flag.
func (s *Bookmarks) ToggleRead(ctx context.Context, uid, id string, value bool) error {
	return s.mutate(ctx, uid, id, func(b *domain.Bookmark) { b.IsRead = value })
}

// MoveToFolder re-files the bookmark; empty folderID means unfiled.
// Whether folderID resolves is not validated here: display logic
// treats a dangling reference as unfiled.
func (s *Bookmarks) MoveToFolder(ctx context.Context, uid, id, folderID string) error {
	return s.mutate(ctx, uid, id, func(b *domain.Bookmark) { b.FolderID = folderID })
}

// Trash soft-deletes the bookmark.
func (s *Bookmarks) Trash(ctx context.Context, uid, id string) error {
	return s.mutate(ctx, uid, id, func(b *domain.Bookmark) { b.IsTrashed = true })
}

// Restore clears the trashed flag.
func (s *Bookmarks) Restore(ctx context.Context, uid, id string) error {
	return s.mutate(ctx, uid, id, func(b *domain.Bookmark) { b.IsTrashed = false })
}

// DeletePermanently removes the document. By convention this is only
// invoked from the trashed state, though that is not enforced.
func (s *Bookmarks) DeletePermanently(ctx context.Context, uid, id string) error {
	if _, err := s.store.GetBookmark(ctx, uid, id); err != nil {
		return err
	}
	if err := s.store.DeleteBookmark(ctx, uid, id); err != nil {
		return err
	}
	s.committed()
	s.logger.Info("bookmark permanently deleted",
		logger.String("uid", uid),
		logger.String("id", id))
	return nil
}

// bulkMutate reads every target, applies fn and commits the whole
// write set as atomic batches. All reads happen before any write, so a
// missing id aborts the operation with nothing changed.
func (s *Bookmarks) bulkMutate(ctx context.Context, uid string, ids []string, fn func(*domain.Bookmark)) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: empty bookmark selection", domain.ErrValidation)
	}

	ops := make([]store.WriteOp, 0, len(ids))
	now := s.now()
	for _, id := range ids {
		b, err := s.store.GetBookmark(ctx, uid, id)
		if err != nil {
			return err
		}
		fn(b)
		b.UpdatedAt = now
		ops = append(ops, store.PutBookmark(b))
	}

	if err := applyChunked(ctx, s.store, uid, ops); err != nil {
		return err
	}
	s.committed()
	s.logger.Info("bulk bookmark mutation committed",
		logger.String("uid", uid),
		logger.Int("count", len(ids)))
	return nil
}

// BulkMoveToFolder re-files every target; empty folderID means unfiled.
func (s *Bookmarks) BulkMoveToFolder(ctx context.Context, uid string, ids []string, folderID string) error {
	return s.bulkMutate(ctx, uid, ids, func(b *domain.Bookmark) { b.FolderID = folderID })
}

// BulkTrash soft-deletes every target.
func (s *Bookmarks) BulkTrash(ctx context.Context, uid string, ids []string) error {
	return s.bulkMutate(ctx, uid, ids, func(b *domain.Bookmark) { b.IsTrashed = true })
}

// BulkAddTags unions newTags into every target's tag set. Existing
// tags are never removed.
func (s *Bookmarks) BulkAddTags(ctx context.Context, uid string, ids []string, newTags []string) error {
	if len(newTags) == 0 {
		return fmt.Errorf("%w: no tags to add", domain.ErrValidation)
	}
	return s.bulkMutate(ctx, uid, ids, func(b *domain.Bookmark) {
		b.Tags = domain.MergeTags(b.Tags, newTags)
	})
}

// BulkSetRead sets the read flag on every target.
func (s *Bookmarks) BulkSetRead(ctx context.Context, uid string, ids []string, value bool) error {
	return s.bulkMutate(ctx, uid, ids, func(b *domain.Bookmark) { b.IsRead = value })
}
