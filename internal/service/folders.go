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

// Folders is the folder mutation service. Create and Update enforce
// sibling-name uniqueness and acyclicity before issuing any write;
// Delete cascades a chosen disposition to the bookmarks filed directly
// in the folder, atomically with the folder deletion itself.
type Folders struct {
	store  store.Store
	logger logger.Logger
	now    func() time.Time
	notify func()
}

// NewFolders creates the folder service.
func NewFolders(st store.Store, log logger.Logger, now func() time.Time, notify func()) *Folders {
	return &Folders{store: st, logger: log, now: defaultNow(now), notify: notify}
}

func (s *Folders) committed() {
	if s.notify != nil {
		s.notify()
	}
}

// List retrieves the user's non-deleted folders.
func (s *Folders) List(ctx context.Context, uid string) ([]*domain.Folder, error) {
	all, err := s.store.ListFolders(ctx, uid)
	if err != nil {
		return nil, err
	}
	active := make([]*domain.Folder, 0, len(all))
	for _, f := range all {
		if !f.IsDeleted {
			active = append(active, f)
		}
	}
	return active, nil
}

// Hierarchy returns the pre-order hierarchy of the user's non-deleted
// folders.
func (s *Folders) Hierarchy(ctx context.Context, uid string) ([]*domain.FolderNode, error) {
	active, err := s.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	return domain.BuildHierarchy(active), nil
}

// hasSiblingNamed reports whether a non-deleted folder other than
// excludeID carries name under parentID. Case-sensitive exact match.
func hasSiblingNamed(folders []*domain.Folder, name, parentID, excludeID string) bool {
	for _, f := range folders {
		if f.IsDeleted || f.ID == excludeID {
			continue
		}
		if f.ParentID == parentID && f.Name == name {
			return true
		}
	}
	return false
}

// Create stores a new folder under parentID (empty for top level).
func (s *Folders) Create(ctx context.Context, uid, name, parentID string) (*domain.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: folder name is required", domain.ErrValidation)
	}

	folders, err := s.store.ListFolders(ctx, uid)
	if err != nil {
		return nil, err
	}
	if hasSiblingNamed(folders, name, parentID, "") {
		return nil, domain.ErrDuplicateName
	}

	now := s.now()
	f := &domain.Folder{
		ID:        uuid.NewString(),
		Name:      name,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.SaveFolder(ctx, uid, f); err != nil {
		return nil, err
	}
	s.committed()
	s.logger.Info("folder created",
		logger.String("uid", uid),
		logger.String("id", f.ID),
		logger.String("name", f.Name))
	return f, nil
}

// UpdateInput carries a folder rename and/or re-parenting. Nil fields
// keep the current value.
type UpdateInput struct {
	Name     *string `json:"name"`
	ParentID *string `json:"parentId"`
}

// Update renames or re-parents a folder. The duplicate-name check runs
// among the siblings under the new parent, excluding the folder
// itself. Re-parenting is rejected with ErrCycle when the proposed
// parent is the folder itself or lies anywhere in its subtree; nothing
// is written in that case.
func (s *Folders) Update(ctx context.Context, uid, id string, in UpdateInput) (*domain.Folder, error) {
	f, err := s.store.GetFolder(ctx, uid, id)
	if err != nil {
		return nil, err
	}

	name := f.Name
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: folder name is required", domain.ErrValidation)
		}
	}
	parentID := f.ParentID
	if in.ParentID != nil {
		parentID = *in.ParentID
	}

	if parentID == id {
		return nil, fmt.Errorf("%w: a folder cannot be its own parent", domain.ErrCycle)
	}

	folders, err := s.store.ListFolders(ctx, uid)
	if err != nil {
		return nil, err
	}
	if hasSiblingNamed(folders, name, parentID, id) {
		return nil, domain.ErrDuplicateName
	}
	// Walking up from the proposed parent must never reach the folder:
	// that would fold its own subtree back onto it.
	if parentID != "" && domain.IsDescendant(folders, parentID, id) {
		return nil, domain.ErrCycle
	}

	f.Name = name
	f.ParentID = parentID
	f.UpdatedAt = s.now()
	if err := s.store.SaveFolder(ctx, uid, f); err != nil {
		return nil, err
	}
	s.committed()
	s.logger.Info("folder updated",
		logger.String("uid", uid),
		logger.String("id", f.ID))
	return f, nil
}

// Delete removes a folder and applies the disposition to every
// bookmark filed directly in it, in one atomic write set. Child
// folders are not cascaded: they re-root through the hierarchy
// builder's dangling-parent rule.
func (s *Folders) Delete(ctx context.Context, uid, id string, disposition domain.Disposition) error {
	if !disposition.Valid() {
		return fmt.Errorf("%w: unknown disposition %q", domain.ErrValidation, disposition)
	}

	if _, err := s.store.GetFolder(ctx, uid, id); err != nil {
		return err
	}

	filed, err := s.store.ListBookmarksByFolder(ctx, uid, id)
	if err != nil {
		return err
	}

	now := s.now()
	ops := make([]store.WriteOp, 0, len(filed)+1)
	for _, b := range filed {
		switch disposition {
		case domain.DispositionTrash:
			// The folder is about to vanish, so the trashed bookmark
			// must not keep pointing at it.
			b.IsTrashed = true
			b.FolderID = ""
			b.UpdatedAt = now
			ops = append(ops, store.PutBookmark(b))
		case domain.DispositionRoot:
			b.FolderID = ""
			b.UpdatedAt = now
			ops = append(ops, store.PutBookmark(b))
		case domain.DispositionPurge:
			ops = append(ops, store.DeleteBookmark(b.ID))
		}
	}
	// The folder goes last so it only disappears once its bookmarks
	// have been handled.
	ops = append(ops, store.DeleteFolder(id))

	if err := applyChunked(ctx, s.store, uid, ops); err != nil {
		return err
	}
	s.committed()
	s.logger.Info("folder deleted",
		logger.String("uid", uid),
		logger.String("id", id),
		logger.String("disposition", string(disposition)),
		logger.Int("bookmarks", len(filed)))
	return nil
}
