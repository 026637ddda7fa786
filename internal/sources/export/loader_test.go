package export

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleExport = `version: 1
folders:
  - name: Work
    folders:
      - name: Projects
bookmarks:
  - title: Go
    url: https://go.dev
    folder: Work/Projects
    tags: [go]
  - text: call the bank
    notes: before friday
`

func writeTempExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write temp export: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	file, err := NewLoader(writeTempExport(t, sampleExport)).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if file.Version != 1 {
		t.Errorf("Version = %d, want 1", file.Version)
	}
	if len(file.Folders) != 1 || file.Folders[0].Name != "Work" {
		t.Errorf("Folders = %+v, want single Work root", file.Folders)
	}
	if len(file.Folders[0].Folders) != 1 || file.Folders[0].Folders[0].Name != "Projects" {
		t.Errorf("nested folders = %+v, want Projects under Work", file.Folders[0].Folders)
	}
	if len(file.Bookmarks) != 2 {
		t.Fatalf("Bookmarks = %d entries, want 2", len(file.Bookmarks))
	}
	if file.Bookmarks[1].Notes != "before friday" {
		t.Errorf("Notes = %q, want before friday", file.Bookmarks[1].Notes)
	}
}

func TestLoaderLoadMissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "nope.yaml")).Load()
	if err == nil {
		t.Error("Load(missing) expected an error")
	}
}

func TestLoaderLoadInvalidYAML(t *testing.T) {
	_, err := NewLoader(writeTempExport(t, "bookmarks: [}")).Load()
	if err == nil {
		t.Error("Load(invalid yaml) expected an error")
	}
}
