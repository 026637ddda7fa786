package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smerle/marque/internal/domain"
)

// Mapper converts an export file into domain entities.
type Mapper struct{}

// NewMapper creates a new mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// Map converts the export file to folders and bookmarks. Folder ids
// are freshly minted; bookmark entries reference folders by their
// slash-joined path (for example "Work/Projects"). A bookmark naming
// an unknown path lands at the root.
func (m *Mapper) Map(file *File) ([]*domain.Folder, []*domain.Bookmark, error) {
	now := time.Now()

	var folders []*domain.Folder
	byPath := make(map[string]string)
	var walk func(entries []FolderEntry, parentPath, parentID string) error
	walk = func(entries []FolderEntry, parentPath, parentID string) error {
		for _, entry := range entries {
			name := strings.TrimSpace(entry.Name)
			if name == "" {
				return fmt.Errorf("folder under %q has no name", parentPath)
			}
			path := name
			if parentPath != "" {
				path = parentPath + "/" + name
			}
			if _, ok := byPath[path]; ok {
				return fmt.Errorf("duplicate folder path %q", path)
			}

			f := &domain.Folder{
				ID:        uuid.NewString(),
				Name:      name,
				ParentID:  parentID,
				CreatedAt: now,
				UpdatedAt: now,
			}
			byPath[path] = f.ID
			folders = append(folders, f)

			if err := walk(entry.Folders, path, f.ID); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(file.Folders, "", ""); err != nil {
		return nil, nil, err
	}

	var bookmarks []*domain.Bookmark
	for _, entry := range file.Bookmarks {
		b := m.mapBookmark(entry, byPath, now)
		if b == nil {
			continue
		}
		bookmarks = append(bookmarks, b)
	}

	if len(folders) == 0 && len(bookmarks) == 0 {
		return nil, nil, fmt.Errorf("export file contains no folders or bookmarks")
	}

	return folders, bookmarks, nil
}

func (m *Mapper) mapBookmark(entry BookmarkEntry, byPath map[string]string, now time.Time) *domain.Bookmark {
	url := strings.TrimSpace(entry.URL)
	text := strings.TrimSpace(entry.Text)
	if url == "" && text == "" {
		return nil
	}

	b := &domain.Bookmark{
		ID:         uuid.NewString(),
		Title:      strings.TrimSpace(entry.Title),
		Notes:      strings.TrimSpace(entry.Notes),
		FolderID:   byPath[strings.TrimSpace(entry.Folder)],
		Tags:       domain.MergeTags(nil, entry.Tags),
		IsFavorite: entry.Favorite,
		IsRead:     entry.Read,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if url != "" {
		b.Type = domain.TypeLink
		b.URL = url
		if b.Title == "" {
			b.Title = url
		}
	} else {
		b.Type = domain.TypeText
		b.TextContent = text
		if b.Title == "" {
			b.Title = domain.DefaultNoteTitle
		}
	}

	return b
}
