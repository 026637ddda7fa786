package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smerle/marque/internal/domain"
	"github.com/smerle/marque/internal/httpserver/deps"
	"github.com/smerle/marque/internal/httpserver/mw"
	"github.com/smerle/marque/internal/service"
)

type bookmarkListResponse struct {
	Bookmarks []*domain.Bookmark `json:"bookmarks"`
}

// ListBookmarks returns the user's bookmarks, optionally those filed
// directly in one folder (?folder=).
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := mw.UserID(r.Context())

		var (
			bookmarks []*domain.Bookmark
			err       error
		)
		if folderID := r.URL.Query().Get("folder"); folderID != "" {
			bookmarks, err = d.Store.ListBookmarksByFolder(r.Context(), uid, folderID)
		} else {
			bookmarks, err = d.Bookmarks.List(r.Context(), uid)
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bookmarkListResponse{Bookmarks: bookmarks})
	}
}

// CreateBookmark stores a new link or text note.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in service.CreateInput
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, err)
			return
		}

		b, err := d.Bookmarks.Create(r.Context(), mw.UserID(r.Context()), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, b)
	}
}

// DeleteBookmark removes a bookmark permanently.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := mw.UserID(r.Context())
		id := chi.URLParam(r, "id")
		if err := d.Bookmarks.DeletePermanently(r.Context(), uid, id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type valueRequest struct {
	Value bool `json:"value"`
}

type folderRequest struct {
	FolderID string `json:"folderId"`
}

// MutateBookmark dispatches the single-bookmark actions routed under
// /bookmarks/{id}/{action}.
func MutateBookmark(d deps.Deps, action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid := mw.UserID(ctx)
		id := chi.URLParam(r, "id")

		var err error
		switch action {
		case "favorite":
			var req valueRequest
			if err = decodeJSON(r, &req); err == nil {
				err = d.Bookmarks.ToggleFavorite(ctx, uid, id, req.Value)
			}
		case "read":
			var req valueRequest
			if err = decodeJSON(r, &req); err == nil {
				err = d.Bookmarks.ToggleRead(ctx, uid, id, req.Value)
			}
		case "folder":
			var req folderRequest
			if err = decodeJSON(r, &req); err == nil {
				err = d.Bookmarks.MoveToFolder(ctx, uid, id, req.FolderID)
			}
		case "trash":
			err = d.Bookmarks.Trash(ctx, uid, id)
		case "restore":
			err = d.Bookmarks.Restore(ctx, uid, id)
		default:
			err = fmt.Errorf("%w: unknown action %q", domain.ErrValidation, action)
		}

		if err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type bulkRequest struct {
	IDs      []string `json:"ids"`
	FolderID string   `json:"folderId"`
	Tags     []string `json:"tags"`
	Value    bool     `json:"value"`
}

// BulkMutateBookmarks dispatches the batch actions routed under
// /bookmarks/bulk/{action}. Each one commits atomically.
func BulkMutateBookmarks(d deps.Deps, action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bulkRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		ctx := r.Context()
		uid := mw.UserID(ctx)

		var err error
		switch action {
		case "move":
			err = d.Bookmarks.BulkMoveToFolder(ctx, uid, req.IDs, req.FolderID)
		case "trash":
			err = d.Bookmarks.BulkTrash(ctx, uid, req.IDs)
		case "tags":
			err = d.Bookmarks.BulkAddTags(ctx, uid, req.IDs, req.Tags)
		case "read":
			err = d.Bookmarks.BulkSetRead(ctx, uid, req.IDs, req.Value)
		default:
			err = fmt.Errorf("%w: unknown bulk action %q", domain.ErrValidation, action)
		}

		if err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
