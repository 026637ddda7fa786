// Package redis implements the store.Store interface on top of Redis.
// Documents are JSON values; per-user id sets index the collections.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/smerle/marque/internal/domain"
)

// Store handles Redis operations for bookmarks and folders.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func storeErr(op string, err error) error {
	return &domain.StoreError{Op: op, Err: err}
}

// SaveBookmark stores a bookmark document and indexes it.
func (s *Store) SaveBookmark(ctx context.Context, uid string, b *domain.Bookmark) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmark: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, BookmarkKey(uid, b.ID), data, 0)
	pipe.SAdd(ctx, AllBookmarksKey(uid), b.ID)
	pipe.SAdd(ctx, KeyUsers, uid)
	if _, err := pipe.Exec(ctx); err != nil {
		return storeErr("save bookmark", err)
	}
	return nil
}

// GetBookmark retrieves a bookmark by id.
func (s *Store) GetBookmark(ctx context.Context, uid, id string) (*domain.Bookmark, error) {
	data, err := s.client.Get(ctx, BookmarkKey(uid, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("bookmark %s: %w", id, domain.ErrNotFound)
		}
		return nil, storeErr("get bookmark", err)
	}

	var b domain.Bookmark
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bookmark: %w", err)
	}
	return &b, nil
}

// ListBookmarks retrieves all of a user's bookmarks.
func (s *Store) ListBookmarks(ctx context.Context, uid string) ([]*domain.Bookmark, error) {
	ids, err := s.client.SMembers(ctx, AllBookmarksKey(uid)).Result()
	if err != nil {
		return nil, storeErr("list bookmark ids", err)
	}

	bookmarks := make([]*domain.Bookmark, 0, len(ids))
	for _, id := range ids {
		b, err := s.GetBookmark(ctx, uid, id)
		if err != nil {
			// A member without a document means a half-removed entry;
			// skip it rather than failing the whole listing.
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, nil
}

// ListBookmarksByFolder retrieves the bookmarks filed directly in a
// folder. Evaluated store-side of the services, so callers never build
// their own filter queries.
func (s *Store) ListBookmarksByFolder(ctx context.Context, uid, folderID string) ([]*domain.Bookmark, error) {
	all, err := s.ListBookmarks(ctx, uid)
	if err != nil {
		return nil, err
	}
	filed := make([]*domain.Bookmark, 0)
	for _, b := range all {
		if b.FolderID == folderID {
			filed = append(filed, b)
		}
	}
	return filed, nil
}

// DeleteBookmark removes a bookmark document and its index entry.
func (s *Store) DeleteBookmark(ctx context.Context, uid, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, BookmarkKey(uid, id))
	pipe.SRem(ctx, AllBookmarksKey(uid), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return storeErr("delete bookmark", err)
	}
	return nil
}

// SaveFolder stores a folder document and indexes it.
func (s *Store) SaveFolder(ctx context.Context, uid string, f *domain.Folder) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal folder: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, FolderKey(uid, f.ID), data, 0)
	pipe.SAdd(ctx, AllFoldersKey(uid), f.ID)
	pipe.SAdd(ctx, KeyUsers, uid)
	if _, err := pipe.Exec(ctx); err != nil {
		return storeErr("save folder", err)
	}
	return nil
}

// GetFolder retrieves a folder by id.
func (s *Store) GetFolder(ctx context.Context, uid, id string) (*domain.Folder, error) {
	data, err := s.client.Get(ctx, FolderKey(uid, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, storeErr("get folder", err)
	}

	var f domain.Folder
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal folder: %w", err)
	}
	return &f, nil
}

// ListFolders retrieves all of a user's folders, soft-deleted included.
func (s *Store) ListFolders(ctx context.Context, uid string) ([]*domain.Folder, error) {
	ids, err := s.client.SMembers(ctx, AllFoldersKey(uid)).Result()
	if err != nil {
		return nil, storeErr("list folder ids", err)
	}

	folders := make([]*domain.Folder, 0, len(ids))
	for _, id := range ids {
		f, err := s.GetFolder(ctx, uid, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, nil
}

// DeleteFolder removes a folder document and its index entry.
func (s *Store) DeleteFolder(ctx context.Context, uid, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, FolderKey(uid, id))
	pipe.SRem(ctx, AllFoldersKey(uid), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return storeErr("delete folder", err)
	}
	return nil
}

// ListUsers returns every user id that owns documents.
func (s *Store) ListUsers(ctx context.Context) ([]string, error) {
	uids, err := s.client.SMembers(ctx, KeyUsers).Result()
	if err != nil {
		return nil, storeErr("list users", err)
	}
	return uids, nil
}
