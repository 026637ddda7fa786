package service

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/smerle/marque/internal/domain"
	"github.com/smerle/marque/internal/logger"
	"github.com/smerle/marque/internal/store"
	"github.com/smerle/marque/internal/store/memory"
)

const testUID = "user-1"

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newBookmarksService(t *testing.T) (*Bookmarks, *memory.Store) {
	t.Helper()
	st := memory.NewStore()
	return NewBookmarks(st, logger.NewNop(), fixedNow, nil), st
}

func seedBookmark(t *testing.T, st *memory.Store, b *domain.Bookmark) {
	t.Helper()
	if err := st.SaveBookmark(context.Background(), testUID, b); err != nil {
		t.Fatalf("seed bookmark %s: %v", b.ID, err)
	}
}

func TestCreateDefaults(t *testing.T) {
	tests := []struct {
		name      string
		input     CreateInput
		wantTitle string
		wantErr   bool
	}{
		{
			name:      "link without title defaults to url",
			input:     CreateInput{Type: domain.TypeLink, URL: "https://ex.com"},
			wantTitle: "https://ex.com",
		},
		{
			name:      "note without title gets default",
			input:     CreateInput{Type: domain.TypeText, TextContent: "remember this"},
			wantTitle: domain.DefaultNoteTitle,
		},
		{
			name:      "explicit title kept",
			input:     CreateInput{Type: domain.TypeLink, URL: "https://ex.com", Title: "Example"},
			wantTitle: "Example",
		},
		{
			name:    "link without url rejected",
			input:   CreateInput{Type: domain.TypeLink},
			wantErr: true,
		},
		{
			name:    "note without content rejected",
			input:   CreateInput{Type: domain.TypeText},
			wantErr: true,
		},
		{
			name:    "unknown type rejected",
			input:   CreateInput{Type: "image", URL: "https://ex.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newBookmarksService(t)
			b, err := svc.Create(context.Background(), testUID, tt.input)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("Create() error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if b.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", b.Title, tt.wantTitle)
			}
			if b.ID == "" {
				t.Error("Create() assigned no id")
			}
			if b.IsTrashed || b.IsFavorite || b.IsRead {
				t.Error("new bookmark should have all flags false")
			}
		})
	}
}

func TestSingleMutations(t *testing.T) {
	svc, st := newBookmarksService(t)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	seedBookmark(t, st, &domain.Bookmark{ID: "b1", Type: domain.TypeLink, URL: "https://ex.com", UpdatedAt: created})

	ctx := context.Background()
	if err := svc.ToggleFavorite(ctx, testUID, "b1", true); err != nil {
		t.Fatalf("ToggleFavorite() error = %v", err)
	}
	if err := svc.ToggleRead(ctx, testUID, "b1", true); err != nil {
		t.Fatalf("ToggleRead() error = %v", err)
	}
	if err := svc.MoveToFolder(ctx, testUID, "b1", "f1"); err != nil {
		t.Fatalf("MoveToFolder() error = %v", err)
	}
	if err := svc.Trash(ctx, testUID, "b1"); err != nil {
		t.Fatalf("Trash() error = %v", err)
	}

	b, err := st.GetBookmark(ctx, testUID, "b1")
	if err != nil {
		t.Fatal(err)
	}
	if !b.IsFavorite || !b.IsRead || !b.IsTrashed {
		t.Errorf("flags = fav:%v read:%v trashed:%v, want all true", b.IsFavorite, b.IsRead, b.IsTrashed)
	}
	if b.FolderID != "f1" {
		t.Errorf("FolderID = %q, want f1", b.FolderID)
	}
	if !b.UpdatedAt.Equal(fixedNow()) {
		t.Errorf("UpdatedAt = %v, not refreshed", b.UpdatedAt)
	}

	if err := svc.Restore(ctx, testUID, "b1"); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	b, _ = st.GetBookmark(ctx, testUID, "b1")
	if b.IsTrashed {
		t.Error("Restore() left bookmark trashed")
	}
}

func TestMutateMissingBookmark(t *testing.T) {
	svc, _ := newBookmarksService(t)
	err := svc.Trash(context.Background(), testUID, "ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Trash(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDeletePermanently(t *testing.T) {
	svc, st := newBookmarksService(t)
	seedBookmark(t, st, &domain.Bookmark{ID: "b1", Type: domain.TypeLink, URL: "https://ex.com"})

	if err := svc.DeletePermanently(context.Background(), testUID, "b1"); err != nil {
		t.Fatalf("DeletePermanently() error = %v", err)
	}
	if _, err := st.GetBookmark(context.Background(), testUID, "b1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("bookmark still present after permanent delete: %v", err)
	}
}

func TestBulkAddTagsUnion(t *testing.T) {
	svc, st := newBookmarksService(t)
	seedBookmark(t, st, &domain.Bookmark{ID: "b1", Type: domain.TypeLink, URL: "https://ex.com", Tags: []string{"a", "c"}})
	seedBookmark(t, st, &domain.Bookmark{ID: "b2", Type: domain.TypeLink, URL: "https://ex.org"})

	if err := svc.BulkAddTags(context.Background(), testUID, []string{"b1", "b2"}, []string{"a", "b"}); err != nil {
		t.Fatalf("BulkAddTags() error = %v", err)
	}

	b1, _ := st.GetBookmark(context.Background(), testUID, "b1")
	got := append([]string(nil), b1.Tags...)
	sort.Strings(got)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("b1 tags = %v, want %v", got, want)
	}

	b2, _ := st.GetBookmark(context.Background(), testUID, "b2")
	sort.Strings(b2.Tags)
	if !reflect.DeepEqual(b2.Tags, []string{"a", "b"}) {
		t.Errorf("b2 tags = %v, want [a b]", b2.Tags)
	}
}

func TestBulkOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("bulk trash", func(t *testing.T) {
		svc, st := newBookmarksService(t)
		seedBookmark(t, st, &domain.Bookmark{ID: "b1", Type: domain.TypeLink, URL: "u"})
		seedBookmark(t, st, &domain.Bookmark{ID: "b2", Type: domain.TypeLink, URL: "u"})

		if err := svc.BulkTrash(ctx, testUID, []string{"b1", "b2"}); err != nil {
			t.Fatalf("BulkTrash() error = %v", err)
		}
		for _, id := range []string{"b1", "b2"} {
			b, _ := st.GetBookmark(ctx, testUID, id)
			if !b.IsTrashed {
				t.Errorf("%s not trashed", id)
			}
		}
	})

	t.Run("bulk move", func(t *testing.T) {
		svc, st := newBookmarksService(t)
		seedBookmark(t, st, &domain.Bookmark{ID: "b1", Type: domain.TypeLink, URL: "u"})

		if err := svc.BulkMoveToFolder(ctx, testUID, []string{"b1"}, "f9"); err != nil {
			t.Fatalf("BulkMoveToFolder() error = %v", err)
		}
		b, _ := st.GetBookmark(ctx, testUID, "b1")
		if b.FolderID != "f9" {
			t.Errorf("FolderID = %q, want f9", b.FolderID)
		}
	})

	t.Run("bulk set read", func(t *testing.T) {
		svc, st := newBookmarksService(t)
		seedBookmark(t, st, &domain.Bookmark{ID: "b1", Type: domain.TypeLink, URL: "u"})

		if err := svc.BulkSetRead(ctx, testUID, []string{"b1"}, true); err != nil {
			t.Fatalf("BulkSetRead() error = %v", err)
		}
		b, _ := st.GetBookmark(ctx, testUID, "b1")
		if !b.IsRead {
			t.Error("bookmark not marked read")
		}
	})

	t.Run("empty id list rejected", func(t *testing.T) {
		svc, _ := newBookmarksService(t)
		if err := svc.BulkTrash(ctx, testUID, nil); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("BulkTrash(nil) error = %v, want ErrValidation", err)
		}
	})

	t.Run("missing id aborts before any write", func(t *testing.T) {
		svc, st := newBookmarksService(t)
		seedBookmark(t, st, &domain.Bookmark{ID: "b1", Type: domain.TypeLink, URL: "u"})

		err := svc.BulkTrash(ctx, testUID, []string{"b1", "ghost"})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("BulkTrash() error = %v, want ErrNotFound", err)
		}
		b, _ := st.GetBookmark(ctx, testUID, "b1")
		if b.IsTrashed {
			t.Error("b1 was mutated despite the aborted bulk")
		}
	})
}

func TestBulkAtomicityOnStoreFailure(t *testing.T) {
	svc, st := newBookmarksService(t)
	ids := []string{"b1", "b2", "b3"}
	for _, id := range ids {
		seedBookmark(t, st, &domain.Bookmark{ID: id, Type: domain.TypeLink, URL: "u"})
	}

	st.SetBatchHook(func(ops []store.WriteOp) error {
		return errors.New("connection reset")
	})

	err := svc.BulkTrash(context.Background(), testUID, ids)
	var se *domain.StoreError
	if !errors.As(err, &se) {
		t.Fatalf("BulkTrash() error = %v, want StoreError", err)
	}

	// All-or-nothing: the failed commit must leave every target untouched.
	st.SetBatchHook(nil)
	for _, id := range ids {
		b, getErr := st.GetBookmark(context.Background(), testUID, id)
		if getErr != nil {
			t.Fatal(getErr)
		}
		if b.IsTrashed {
			t.Errorf("%s shows the mutation after a failed batch", id)
		}
	}
}
