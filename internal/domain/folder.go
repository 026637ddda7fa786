package domain

import "time"

// Folder is a user-defined named container forming a tree.
//
// The parent graph must stay acyclic: a folder may never be its own
// ancestor. That invariant is enforced on the mutation path before
// any write, never by the read-side hierarchy builder.
type Folder struct {
	// ID is the opaque unique identifier.
	ID string `json:"id"`

	// Name is unique among non-deleted siblings (same ParentID),
	// enforced at write time with a case-sensitive exact match.
	Name string `json:"name"`

	// ParentID references another folder; empty means top-level.
	ParentID string `json:"parentId,omitempty"`

	// IsDeleted soft-deletes the folder: it is filtered out of views
	// until an explicit delete cascade removes it.
	IsDeleted bool `json:"isDeleted"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Disposition selects what happens to the bookmarks filed directly in
// a folder when that folder is deleted.
type Disposition string

const (
	// DispositionTrash soft-deletes the folder's bookmarks.
	DispositionTrash Disposition = "trash"
	// DispositionRoot re-files the folder's bookmarks as unfiled.
	DispositionRoot Disposition = "root"
	// DispositionPurge permanently deletes the folder's bookmarks.
	DispositionPurge Disposition = "purge"
)

// Valid reports whether d is a known disposition.
func (d Disposition) Valid() bool {
	switch d {
	case DispositionTrash, DispositionRoot, DispositionPurge:
		return true
	}
	return false
}
