package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smerle/marque/internal/domain"
	"github.com/smerle/marque/internal/httpserver/deps"
	"github.com/smerle/marque/internal/httpserver/mw"
	"github.com/smerle/marque/internal/service"
)

type folderNode struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ParentID      string `json:"parentId,omitempty"`
	Level         int    `json:"level"`
	ChildrenCount int    `json:"childrenCount"`
	Color         string `json:"color"`
}

type folderListResponse struct {
	Folders []folderNode `json:"folders"`
}

// ListFolders returns the hierarchy as a pre-order list of decorated
// nodes, ready to render as an indented tree.
func ListFolders(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nodes, err := d.Folders.Hierarchy(r.Context(), mw.UserID(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]folderNode, 0, len(nodes))
		for _, n := range nodes {
			out = append(out, folderNode{
				ID:            n.ID,
				Name:          n.Name,
				ParentID:      n.ParentID,
				Level:         n.Level,
				ChildrenCount: len(n.Children),
				Color:         domain.ColorFor(n.ID),
			})
		}
		writeJSON(w, http.StatusOK, folderListResponse{Folders: out})
	}
}

type createFolderRequest struct {
	Name     string `json:"name"`
	ParentID string `json:"parentId"`
}

// CreateFolder creates a folder under the given parent.
func CreateFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createFolderRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		f, err := d.Folders.Create(r.Context(), mw.UserID(r.Context()), req.Name, req.ParentID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, f)
	}
}

// UpdateFolder renames or reparents a folder. Absent fields stay
// untouched.
func UpdateFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in service.UpdateInput
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, err)
			return
		}

		uid := mw.UserID(r.Context())
		f, err := d.Folders.Update(r.Context(), uid, chi.URLParam(r, "id"), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, f)
	}
}

// DeleteFolder deletes a folder, applying the requested disposition
// to the bookmarks filed in it (?disposition=trash|root|purge).
func DeleteFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := mw.UserID(r.Context())
		id := chi.URLParam(r, "id")
		disposition := domain.Disposition(r.URL.Query().Get("disposition"))

		if err := d.Folders.Delete(r.Context(), uid, id, disposition); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
