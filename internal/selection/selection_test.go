package selection

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/smerle/marque/internal/domain"
	"github.com/smerle/marque/internal/logger"
	"github.com/smerle/marque/internal/service"
	"github.com/smerle/marque/internal/store"
	"github.com/smerle/marque/internal/store/memory"
)

const testUID = "user-1"

func newManager(t *testing.T) (*Manager, *memory.Store) {
	t.Helper()
	st := memory.NewStore()
	svc := service.NewBookmarks(st, logger.NewNop(), nil, nil)
	return NewManager(svc), st
}

func seed(t *testing.T, st *memory.Store, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if err := st.SaveBookmark(context.Background(), testUID, &domain.Bookmark{ID: id, Type: domain.TypeLink, URL: "u"}); err != nil {
			t.Fatal(err)
		}
	}
}

func TestToggleSetSemantics(t *testing.T) {
	m, _ := newManager(t)
	m.Enter()

	m.Toggle("a")
	m.Toggle("b")
	m.Toggle("a") // second toggle removes

	if m.IsSelected("a") {
		t.Error("a still selected after second toggle")
	}
	if !m.IsSelected("b") {
		t.Error("b not selected")
	}
	if got := m.Selected(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Selected() = %v, want [b]", got)
	}
}

func TestToggleIgnoredWhileInactive(t *testing.T) {
	m, _ := newManager(t)
	m.Toggle("a")
	if m.Count() != 0 {
		t.Error("toggle tracked outside selection mode")
	}
}

func TestExitClearsSelection(t *testing.T) {
	m, _ := newManager(t)
	m.Enter()
	m.Toggle("a")
	m.Exit()

	if m.Active() {
		t.Error("still active after Exit()")
	}
	if m.Count() != 0 {
		t.Error("selection survived Exit()")
	}
}

func TestSelectAllAndClear(t *testing.T) {
	m, _ := newManager(t)
	m.Enter()
	m.Toggle("stale")

	visible := []*domain.Bookmark{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	m.SelectAll(visible)

	if got := m.Selected(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Selected() = %v, want [a b c]", got)
	}
	if m.IsSelected("stale") {
		t.Error("SelectAll kept a previous selection")
	}

	m.Clear()
	if m.Count() != 0 {
		t.Error("Clear() left entries behind")
	}
	if !m.Active() {
		t.Error("Clear() must not leave selection mode")
	}
}

func TestBulkActionClearsOnSuccess(t *testing.T) {
	m, st := newManager(t)
	seed(t, st, "a", "b")
	m.Enter()
	m.Toggle("a")
	m.Toggle("b")

	if err := m.Trash(context.Background(), testUID); err != nil {
		t.Fatalf("Trash() error = %v", err)
	}
	if m.Count() != 0 {
		t.Error("selection not cleared after successful bulk action")
	}

	b, _ := st.GetBookmark(context.Background(), testUID, "a")
	if !b.IsTrashed {
		t.Error("bookmark not trashed")
	}
}

func TestBulkActionKeepsSelectionOnFailure(t *testing.T) {
	m, st := newManager(t)
	seed(t, st, "a", "b")
	m.Enter()
	m.Toggle("a")
	m.Toggle("b")

	st.SetBatchHook(func(ops []store.WriteOp) error {
		return errors.New("store down")
	})

	if err := m.Trash(context.Background(), testUID); err == nil {
		t.Fatal("Trash() succeeded despite failing store")
	}
	// Selection preserved for retry.
	if got := m.Selected(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Selected() after failure = %v, want [a b]", got)
	}

	st.SetBatchHook(nil)
	if err := m.Trash(context.Background(), testUID); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if m.Count() != 0 {
		t.Error("selection not cleared after successful retry")
	}
}

func TestBulkMoveAndTagAndRead(t *testing.T) {
	ctx := context.Background()
	m, st := newManager(t)
	seed(t, st, "a", "b")
	m.Enter()
	m.Toggle("a")
	m.Toggle("b")

	if err := m.MoveToFolder(ctx, testUID, "f1"); err != nil {
		t.Fatalf("MoveToFolder() error = %v", err)
	}
	a, _ := st.GetBookmark(ctx, testUID, "a")
	if a.FolderID != "f1" {
		t.Errorf("FolderID = %q, want f1", a.FolderID)
	}

	m.Toggle("a")
	if err := m.AddTags(ctx, testUID, []string{"x"}); err != nil {
		t.Fatalf("AddTags() error = %v", err)
	}
	a, _ = st.GetBookmark(ctx, testUID, "a")
	if !a.HasTag("x") {
		t.Error("tag not added")
	}

	m.Toggle("b")
	if err := m.SetRead(ctx, testUID, true); err != nil {
		t.Fatalf("SetRead() error = %v", err)
	}
	b, _ := st.GetBookmark(ctx, testUID, "b")
	if !b.IsRead {
		t.Error("read flag not set")
	}
}

func TestRegistryPerUser(t *testing.T) {
	st := memory.NewStore()
	svc := service.NewBookmarks(st, logger.NewNop(), nil, nil)
	reg := NewRegistry(svc)

	m1 := reg.Get("alice")
	m2 := reg.Get("bob")
	if m1 == m2 {
		t.Fatal("distinct users share a manager")
	}
	if reg.Get("alice") != m1 {
		t.Error("same user got a new manager")
	}

	m1.Enter()
	m1.Toggle("a")
	if m2.IsSelected("a") {
		t.Error("selection leaked across users")
	}
}
