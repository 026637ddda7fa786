// Package selection tracks the working set of bookmarks a user is
// acting on in bulk. The set is ephemeral and private to one session;
// it is never persisted.
package selection

import (
	"context"
	"sync"

	"github.com/smerle/marque/internal/domain"
	"github.com/smerle/marque/internal/service"
)

// Manager is a two-state selection tracker: Inactive (no tracking) and
// Active (selection set may be non-empty). Bulk actions delegate to
// the bookmark service and clear the selection only on success, so a
// failed action can be retried against the same set.
type Manager struct {
	mu       sync.Mutex
	active   bool
	order    []string
	selected map[string]bool
	svc      *service.Bookmarks
}

// NewManager creates an inactive manager bound to the bookmark service.
func NewManager(svc *service.Bookmarks) *Manager {
	return &Manager{
		selected: make(map[string]bool),
		svc:      svc,
	}
}

// Enter switches to selection mode.
func (m *Manager) Enter() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = true
}

// Exit leaves selection mode and clears the set.
func (m *Manager) Exit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = false
	m.clearLocked()
}

// Active reports whether selection mode is on.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Toggle adds the bookmark id if absent and removes it if present.
// Ignored while inactive.
func (m *Manager) Toggle(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active || id == "" {
		return
	}
	if m.selected[id] {
		delete(m.selected, id)
		for i, existing := range m.order {
			if existing == id {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
		return
	}
	m.selected[id] = true
	m.order = append(m.order, id)
}

// IsSelected reports whether the bookmark id is in the set.
func (m *Manager) IsSelected(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected[id]
}

// SelectAll replaces the set with the visible bookmarks, in order.
func (m *Manager) SelectAll(visible []*domain.Bookmark) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return
	}
	m.clearLocked()
	for _, b := range visible {
		if b == nil || m.selected[b.ID] {
			continue
		}
		m.selected[b.ID] = true
		m.order = append(m.order, b.ID)
	}
}

// Clear empties the set without leaving selection mode.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

func (m *Manager) clearLocked() {
	m.order = nil
	m.selected = make(map[string]bool)
}

// Selected returns the ids in selection order.
func (m *Manager) Selected() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

// Count returns the size of the set.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}

// snapshot returns the current ids without holding the lock across the
// delegated store call.
func (m *Manager) snapshot() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

func (m *Manager) finish(err error) error {
	if err != nil {
		// Keep the selection so the user can retry.
		return err
	}
	m.Clear()
	return nil
}

// MoveToFolder bulk-moves the selection and clears it on success.
func (m *Manager) MoveToFolder(ctx context.Context, uid, folderID string) error {
	return m.finish(m.svc.BulkMoveToFolder(ctx, uid, m.snapshot(), folderID))
}

// Trash bulk-trashes the selection and clears it on success.
func (m *Manager) Trash(ctx context.Context, uid string) error {
	return m.finish(m.svc.BulkTrash(ctx, uid, m.snapshot()))
}

// AddTags bulk-tags the selection and clears it on success.
func (m *Manager) AddTags(ctx context.Context, uid string, tags []string) error {
	return m.finish(m.svc.BulkAddTags(ctx, uid, m.snapshot(), tags))
}

// SetRead bulk-sets the read flag on the selection and clears it on
// success.
func (m *Manager) SetRead(ctx context.Context, uid string, value bool) error {
	return m.finish(m.svc.BulkSetRead(ctx, uid, m.snapshot(), value))
}

// Registry hands out one Manager per user session.
type Registry struct {
	mu       sync.Mutex
	managers map[string]*Manager
	svc      *service.Bookmarks
}

// NewRegistry creates an empty registry.
func NewRegistry(svc *service.Bookmarks) *Registry {
	return &Registry{
		managers: make(map[string]*Manager),
		svc:      svc,
	}
}

// Get returns the user's manager, creating it on first use.
func (r *Registry) Get(uid string) *Manager {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.managers[uid]
	if m == nil {
		m = NewManager(r.svc)
		r.managers[uid] = m
	}
	return m
}
