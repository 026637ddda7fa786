// Package memory implements store.Store entirely in memory. It backs
// MARQUE_STORE=memory for local development and gives the tests a
// store with real atomic-batch semantics.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/smerle/marque/internal/domain"
	"github.com/smerle/marque/internal/store"
)

type userDocs struct {
	bookmarks map[string]*domain.Bookmark
	folders   map[string]*domain.Folder
}

// Store is a mutex-guarded in-memory document store.
type Store struct {
	mu        sync.RWMutex
	users     map[string]*userDocs
	batchHook func(ops []store.WriteOp) error
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{users: make(map[string]*userDocs)}
}

// SetBatchHook installs a hook consulted before every batch commit.
// A non-nil return fails the commit with nothing applied. Used by
// tests to simulate a store that dies mid-operation.
func (s *Store) SetBatchHook(hook func(ops []store.WriteOp) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batchHook = hook
}

func (s *Store) docs(uid string) *userDocs {
	d := s.users[uid]
	if d == nil {
		d = &userDocs{
			bookmarks: make(map[string]*domain.Bookmark),
			folders:   make(map[string]*domain.Folder),
		}
		s.users[uid] = d
	}
	return d
}

func copyBookmark(b *domain.Bookmark) *domain.Bookmark {
	c := *b
	c.Tags = append([]string(nil), b.Tags...)
	return &c
}

func copyFolder(f *domain.Folder) *domain.Folder {
	c := *f
	return &c
}

// SaveBookmark stores a copy of the bookmark.
func (s *Store) SaveBookmark(ctx context.Context, uid string, b *domain.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs(uid).bookmarks[b.ID] = copyBookmark(b)
	return nil
}

// GetBookmark retrieves a bookmark by id.
func (s *Store) GetBookmark(ctx context.Context, uid, id string) (*domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := s.users[uid]
	if d == nil {
		return nil, fmt.Errorf("bookmark %s: %w", id, domain.ErrNotFound)
	}
	b, ok := d.bookmarks[id]
	if !ok {
		return nil, fmt.Errorf("bookmark %s: %w", id, domain.ErrNotFound)
	}
	return copyBookmark(b), nil
}

// ListBookmarks retrieves all of a user's bookmarks.
func (s *Store) ListBookmarks(ctx context.Context, uid string) ([]*domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := s.users[uid]
	if d == nil {
		return []*domain.Bookmark{}, nil
	}
	bookmarks := make([]*domain.Bookmark, 0, len(d.bookmarks))
	for _, b := range d.bookmarks {
		bookmarks = append(bookmarks, copyBookmark(b))
	}
	sort.Slice(bookmarks, func(i, j int) bool { return bookmarks[i].ID < bookmarks[j].ID })
	return bookmarks, nil
}

// ListBookmarksByFolder retrieves the bookmarks filed directly in a folder.
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

// DeleteBookmark removes a bookmark.
func (s *Store) DeleteBookmark(ctx context.Context, uid, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d := s.users[uid]; d != nil {
		delete(d.bookmarks, id)
	}
	return nil
}

// SaveFolder stores a copy of the folder.
func (s *Store) SaveFolder(ctx context.Context, uid string, f *domain.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs(uid).folders[f.ID] = copyFolder(f)
	return nil
}

// GetFolder retrieves a folder by id.
func (s *Store) GetFolder(ctx context.Context, uid, id string) (*domain.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := s.users[uid]
	if d == nil {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	f, ok := d.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	return copyFolder(f), nil
}

// ListFolders retrieves all of a user's folders, soft-deleted included.
func (s *Store) ListFolders(ctx context.Context, uid string) ([]*domain.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := s.users[uid]
	if d == nil {
		return []*domain.Folder{}, nil
	}
	folders := make([]*domain.Folder, 0, len(d.folders))
	for _, f := range d.folders {
		folders = append(folders, copyFolder(f))
	}
	sort.Slice(folders, func(i, j int) bool { return folders[i].ID < folders[j].ID })
	return folders, nil
}

// DeleteFolder removes a folder.
func (s *Store) DeleteFolder(ctx context.Context, uid, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d := s.users[uid]; d != nil {
		delete(d.folders, id)
	}
	return nil
}

// ApplyBatch commits a write set under one lock acquisition: either
// every op is applied or, when the hook rejects the commit, none is.
func (s *Store) ApplyBatch(ctx context.Context, uid string, ops []store.WriteOp) error {
	if len(ops) == 0 {
		return nil
	}
	if len(ops) > store.MaxBatchOps {
		return fmt.Errorf("%w: batch of %d ops exceeds limit of %d",
			domain.ErrValidation, len(ops), store.MaxBatchOps)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.batchHook != nil {
		if err := s.batchHook(ops); err != nil {
			return &domain.StoreError{Op: "apply batch", Err: err}
		}
	}

	d := s.docs(uid)
	for _, op := range ops {
		switch op.Kind {
		case store.OpPutBookmark:
			d.bookmarks[op.ID] = copyBookmark(op.Bookmark)
		case store.OpDeleteBookmark:
			delete(d.bookmarks, op.ID)
		case store.OpPutFolder:
			d.folders[op.ID] = copyFolder(op.Folder)
		case store.OpDeleteFolder:
			delete(d.folders, op.ID)
		default:
			return fmt.Errorf("%w: unknown write op kind %d", domain.ErrValidation, op.Kind)
		}
	}
	return nil
}

// ListUsers returns every user id that owns documents.
func (s *Store) ListUsers(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uids := make([]string, 0, len(s.users))
	for uid := range s.users {
		uids = append(uids, uid)
	}
	sort.Strings(uids)
	return uids, nil
}
