// Package store defines the typed persistence interface the services
// depend on. Documents are addressed by (user id, document id); no
// caller ever assembles a storage path by hand.
package store

import (
	"context"

	"github.com/smerle/marque/internal/domain"
)

// MaxBatchOps is the largest number of write ops accepted in a single
// atomic commit. Larger write sets are chunked by the services into
// consecutive atomic sub-batches.
const MaxBatchOps = 500

// OpKind identifies the effect of a single WriteOp.
type OpKind int

const (
	OpPutBookmark OpKind = iota
	OpDeleteBookmark
	OpPutFolder
	OpDeleteFolder
)

// WriteOp is one element of an atomic batch: a full-document put or a
// delete. Put ops carry the document; delete ops carry only the id.
type WriteOp struct {
	Kind     OpKind
	ID       string
	Bookmark *domain.Bookmark
	Folder   *domain.Folder
}

func PutBookmark(b *domain.Bookmark) WriteOp {
	return WriteOp{Kind: OpPutBookmark, ID: b.ID, Bookmark: b}
}

func DeleteBookmark(id string) WriteOp {
	return WriteOp{Kind: OpDeleteBookmark, ID: id}
}

func PutFolder(f *domain.Folder) WriteOp {
	return WriteOp{Kind: OpPutFolder, ID: f.ID, Folder: f}
}

func DeleteFolder(id string) WriteOp {
	return WriteOp{Kind: OpDeleteFolder, ID: id}
}

// BookmarkStore is the bookmark repository. Get returns
// domain.ErrNotFound (possibly wrapped) for an absent id.
type BookmarkStore interface {
	SaveBookmark(ctx context.Context, uid string, b *domain.Bookmark) error
	GetBookmark(ctx context.Context, uid, id string) (*domain.Bookmark, error)
	ListBookmarks(ctx context.Context, uid string) ([]*domain.Bookmark, error)
	ListBookmarksByFolder(ctx context.Context, uid, folderID string) ([]*domain.Bookmark, error)
	DeleteBookmark(ctx context.Context, uid, id string) error
}

// FolderStore is the folder repository.
type FolderStore interface {
	SaveFolder(ctx context.Context, uid string, f *domain.Folder) error
	GetFolder(ctx context.Context, uid, id string) (*domain.Folder, error)
	ListFolders(ctx context.Context, uid string) ([]*domain.Folder, error)
	DeleteFolder(ctx context.Context, uid, id string) error
}

// BatchWriter commits a write set atomically: either every op becomes
// visible or none does. Callers must keep len(ops) <= MaxBatchOps.
type BatchWriter interface {
	ApplyBatch(ctx context.Context, uid string, ops []WriteOp) error
}

// Store is the full persistence surface of the application.
type Store interface {
	BookmarkStore
	FolderStore
	BatchWriter

	// ListUsers returns every user id that currently owns documents.
	// Used by the background schedulers.
	ListUsers(ctx context.Context) ([]string, error)
}
