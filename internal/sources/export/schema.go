// Package export imports a YAML bookmark export file into the store.
// It runs once at startup when an import file is configured.
package export

// File is the top-level structure of a bookmark export file.
type File struct {
	Version   int             `yaml:"version,omitempty"`
	Folders   []FolderEntry   `yaml:"folders,omitempty"`
	Bookmarks []BookmarkEntry `yaml:"bookmarks,omitempty"`
}

// FolderEntry is a folder in the export tree. Nesting in the YAML
// expresses the hierarchy.
type FolderEntry struct {
	Name    string        `yaml:"name"`
	Folders []FolderEntry `yaml:"folders,omitempty"`
}

// BookmarkEntry is one bookmark in the export file. Entries with a
// url become links; entries with text become notes.
type BookmarkEntry struct {
	Title    string   `yaml:"title,omitempty"`
	URL      string   `yaml:"url,omitempty"`
	Text     string   `yaml:"text,omitempty"`
	Notes    string   `yaml:"notes,omitempty"`
	Folder   string   `yaml:"folder,omitempty"`
	Tags     []string `yaml:"tags,omitempty"`
	Favorite bool     `yaml:"favorite,omitempty"`
	Read     bool     `yaml:"read,omitempty"`
}
