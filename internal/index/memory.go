// Package index holds the in-memory view of each user's documents.
// Views (hierarchy, tag list, bookmark lists) are derived from
// whatever snapshot the refresher delivered last; a new snapshot
// simply overwrites the old one, no reconciliation is attempted.
package index

import (
	"sync"
	"time"

	"github.com/smerle/marque/internal/domain"
)

type snapshot struct {
	bookmarks map[string]*domain.Bookmark
	folders   map[string]*domain.Folder
	loadedAt  time.Time
}

// MemoryIndex provides per-user in-memory lookup over the latest
// store snapshot.
type MemoryIndex struct {
	mu    sync.RWMutex
	users map[string]*snapshot
}

// NewMemoryIndex creates an empty index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{users: make(map[string]*snapshot)}
}

// Update replaces one user's snapshot.
func (idx *MemoryIndex) Update(uid string, bookmarks []*domain.Bookmark, folders []*domain.Folder) {
	snap := &snapshot{
		bookmarks: make(map[string]*domain.Bookmark, len(bookmarks)),
		folders:   make(map[string]*domain.Folder, len(folders)),
		loadedAt:  time.Now(),
	}
	for _, b := range bookmarks {
		snap.bookmarks[b.ID] = b
	}
	for _, f := range folders {
		snap.folders[f.ID] = f
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.users[uid] = snap
}

// Drop removes one user's snapshot.
func (idx *MemoryIndex) Drop(uid string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	delete(idx.users, uid)
}

// Bookmark retrieves one bookmark from the snapshot.
func (idx *MemoryIndex) Bookmark(uid, id string) (*domain.Bookmark, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	snap := idx.users[uid]
	if snap == nil {
		return nil, false
	}
	b, ok := snap.bookmarks[id]
	return b, ok
}

// Bookmarks returns all bookmarks in the snapshot.
func (idx *MemoryIndex) Bookmarks(uid string) []*domain.Bookmark {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	snap := idx.users[uid]
	if snap == nil {
		return nil
	}
	bookmarks := make([]*domain.Bookmark, 0, len(snap.bookmarks))
	for _, b := range snap.bookmarks {
		bookmarks = append(bookmarks, b)
	}
	return bookmarks
}

// Folders returns the non-deleted folders in the snapshot.
func (idx *MemoryIndex) Folders(uid string) []*domain.Folder {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	snap := idx.users[uid]
	if snap == nil {
		return nil
	}
	folders := make([]*domain.Folder, 0, len(snap.folders))
	for _, f := range snap.folders {
		if !f.IsDeleted {
			folders = append(folders, f)
		}
	}
	return folders
}

// Hierarchy returns the pre-order folder hierarchy derived from the
// snapshot.
func (idx *MemoryIndex) Hierarchy(uid string) []*domain.FolderNode {
	return domain.BuildHierarchy(idx.Folders(uid))
}

// Tags returns the distinct tags across the snapshot's non-trashed
// bookmarks.
func (idx *MemoryIndex) Tags(uid string) []string {
	return domain.DistinctTags(idx.Bookmarks(uid))
}

// LastLoaded returns when the user's snapshot was taken; zero when no
// snapshot exists yet.
func (idx *MemoryIndex) LastLoaded(uid string) time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if snap := idx.users[uid]; snap != nil {
		return snap.loadedAt
	}
	return time.Time{}
}
