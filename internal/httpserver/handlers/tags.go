package handlers

import (
	"net/http"

	"github.com/smerle/marque/internal/httpserver/deps"
	"github.com/smerle/marque/internal/httpserver/mw"
)

type tagListResponse struct {
	Tags []string `json:"tags"`
}

// ListTags returns the distinct tags across the user's non-trashed
// bookmarks.
func ListTags(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := d.Tags.List(r.Context(), mw.UserID(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tagListResponse{Tags: tags})
	}
}

type renameTagRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type deleteTagRequest struct {
	Tag string `json:"tag"`
}

type tagRewriteResponse struct {
	Updated int `json:"updated"`
}

// RenameTag rewrites a tag on every bookmark carrying it.
func RenameTag(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req renameTagRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		updated, err := d.Tags.Rename(r.Context(), mw.UserID(r.Context()), req.From, req.To)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tagRewriteResponse{Updated: updated})
	}
}

// DeleteTag removes a tag from every bookmark carrying it.
func DeleteTag(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req deleteTagRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		updated, err := d.Tags.Delete(r.Context(), mw.UserID(r.Context()), req.Tag)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tagRewriteResponse{Updated: updated})
	}
}
