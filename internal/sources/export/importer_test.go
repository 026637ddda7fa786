package export

import (
	"context"
	"testing"

	"github.com/smerle/marque/internal/logger"
	"github.com/smerle/marque/internal/store/memory"
)

func TestImporterRun(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	path := writeTempExport(t, sampleExport)

	imp := NewImporter(path, "user-1", st, logger.NewNop())
	if err := imp.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	folders, err := st.ListFolders(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListFolders() error = %v", err)
	}
	if len(folders) != 2 {
		t.Errorf("imported %d folders, want 2", len(folders))
	}

	bookmarks, err := st.ListBookmarks(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListBookmarks() error = %v", err)
	}
	if len(bookmarks) != 2 {
		t.Errorf("imported %d bookmarks, want 2", len(bookmarks))
	}
}

func TestImporterRunBadFile(t *testing.T) {
	imp := NewImporter(writeTempExport(t, "folders: {"), "user-1", memory.NewStore(), logger.NewNop())
	if err := imp.Run(context.Background()); err == nil {
		t.Error("Run(bad file) expected an error")
	}
}
