package domain

import (
	"sort"
	"time"
)

// BookmarkType distinguishes saved links from plain text notes.
type BookmarkType string

const (
	TypeLink BookmarkType = "link"
	TypeText BookmarkType = "text"
)

// DefaultNoteTitle is used when a text note is created without a title.
const DefaultNoteTitle = "Untitled Note"

// Bookmark represents a single saved item owned by one user.
//
// A bookmark is either a link (URL set, TextContent empty) or a text
// note (TextContent set, URL empty). Soft deletion goes through
// IsTrashed; a bookmark is physically removed only by an explicit
// permanent delete or a folder purge cascade.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the opaque unique identifier assigned at creation.
	ID string `json:"id"`

	// Type is either TypeLink or TypeText.
	Type BookmarkType `json:"type"`

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// Title defaults to the URL (links) or DefaultNoteTitle (notes)
	// when absent at creation time.
	Title string `json:"title"`

	// URL is set only for links.
	URL string `json:"url,omitempty"`

	// TextContent is set only for text notes.
	TextContent string `json:"textContent,omitempty"`

	// Notes is an optional free-text description.
	Notes string `json:"notes,omitempty"`

	// PreviewThumbnail is a resolved absolute image URL, links only.
	PreviewThumbnail string `json:"previewThumbnail,omitempty"`

	// ─────────────────────────────
	// Organization
	// ─────────────────────────────

	// FolderID references a Folder; empty means unfiled. A dangling
	// reference is displayed as unfiled, no referential check is made.
	FolderID string `json:"folderId,omitempty"`

	// Tags is a deduplicated set of free-text labels.
	Tags []string `json:"tags,omitempty"`

	// ─────────────────────────────
	// State flags
	// ─────────────────────────────

	IsFavorite bool `json:"isFavorite"`
	IsRead     bool `json:"isRead"`
	IsTrashed  bool `json:"isTrashed"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is set once at creation.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is refreshed on every mutation.
	UpdatedAt time.Time `json:"updatedAt"`
}

// MergeTags returns the deduplicated union of existing and added tags.
// Existing tags are never removed; first occurrence wins, insertion
// order is preserved.
func MergeTags(existing, added []string) []string {
	merged := make([]string, 0, len(existing)+len(added))
	seen := make(map[string]bool, len(existing)+len(added))
	for _, group := range [][]string{existing, added} {
		for _, tag := range group {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			merged = append(merged, tag)
		}
	}
	return merged
}

// HasTag reports whether the bookmark carries the given tag.
func (b *Bookmark) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// DistinctTags returns the sorted distinct union of tags across all
// non-trashed bookmarks. Tags are not a stored entity; this is the
// only way a tag exists.
func DistinctTags(bookmarks []*Bookmark) []string {
	seen := make(map[string]bool)
	tags := make([]string, 0)
	for _, b := range bookmarks {
		if b.IsTrashed {
			continue
		}
		for _, t := range b.Tags {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)
	return tags
}
