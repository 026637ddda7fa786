package index

import (
	"reflect"
	"testing"

	"github.com/smerle/marque/internal/domain"
)

func TestNewMemoryIndex(t *testing.T) {
	idx := NewMemoryIndex()
	if idx == nil {
		t.Fatal("NewMemoryIndex() returned nil")
	}
	if got := idx.Bookmarks("nobody"); got != nil {
		t.Errorf("Bookmarks() for unknown user = %v, want nil", got)
	}
}

func TestUpdateOverwrites(t *testing.T) {
	idx := NewMemoryIndex()

	idx.Update("u1", []*domain.Bookmark{{ID: "b1"}}, nil)
	idx.Update("u1", []*domain.Bookmark{{ID: "b2"}, {ID: "b3"}}, nil)

	bookmarks := idx.Bookmarks("u1")
	if len(bookmarks) != 2 {
		t.Errorf("Update() should overwrite, got %d bookmarks want 2", len(bookmarks))
	}
	if _, ok := idx.Bookmark("u1", "b1"); ok {
		t.Error("stale bookmark survived snapshot overwrite")
	}
}

func TestSnapshotsAreUserScoped(t *testing.T) {
	idx := NewMemoryIndex()
	idx.Update("alice", []*domain.Bookmark{{ID: "a"}}, nil)
	idx.Update("bob", []*domain.Bookmark{{ID: "b"}}, nil)

	if _, ok := idx.Bookmark("alice", "b"); ok {
		t.Error("bob's bookmark visible to alice")
	}
	if _, ok := idx.Bookmark("bob", "b"); !ok {
		t.Error("bob's own bookmark missing")
	}
}

func TestFoldersFilterSoftDeleted(t *testing.T) {
	idx := NewMemoryIndex()
	idx.Update("u1", nil, []*domain.Folder{
		{ID: "f1", Name: "Keep"},
		{ID: "f2", Name: "Gone", IsDeleted: true},
	})

	folders := idx.Folders("u1")
	if len(folders) != 1 || folders[0].ID != "f1" {
		t.Errorf("Folders() = %v, want only f1", folders)
	}
}

func TestHierarchyFromSnapshot(t *testing.T) {
	idx := NewMemoryIndex()
	idx.Update("u1", nil, []*domain.Folder{
		{ID: "f1", Name: "Work"},
		{ID: "f2", Name: "Projects", ParentID: "f1"},
	})

	nodes := idx.Hierarchy("u1")
	if len(nodes) != 2 {
		t.Fatalf("Hierarchy() = %d nodes, want 2", len(nodes))
	}
	if nodes[0].Name != "Work" || nodes[1].Name != "Projects" || nodes[1].Level != 1 {
		t.Errorf("unexpected hierarchy: %q/%d then %q/%d",
			nodes[0].Name, nodes[0].Level, nodes[1].Name, nodes[1].Level)
	}
}

func TestTagsFromSnapshot(t *testing.T) {
	idx := NewMemoryIndex()
	idx.Update("u1", []*domain.Bookmark{
		{ID: "b1", Tags: []string{"go", "web"}},
		{ID: "b2", Tags: []string{"web"}},
		{ID: "b3", Tags: []string{"trashed"}, IsTrashed: true},
	}, nil)

	got := idx.Tags("u1")
	want := []string{"go", "web"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tags() = %v, want %v", got, want)
	}
}

func TestDrop(t *testing.T) {
	idx := NewMemoryIndex()
	idx.Update("u1", []*domain.Bookmark{{ID: "b1"}}, nil)
	idx.Drop("u1")

	if got := idx.Bookmarks("u1"); got != nil {
		t.Errorf("Bookmarks() after Drop = %v, want nil", got)
	}
	if !idx.LastLoaded("u1").IsZero() {
		t.Error("LastLoaded() not zero after Drop")
	}
}
