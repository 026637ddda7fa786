package handlers

import (
	"fmt"
	"net/http"

	"github.com/smerle/marque/internal/domain"
	"github.com/smerle/marque/internal/httpserver/deps"
	"github.com/smerle/marque/internal/httpserver/mw"
)

type selectionResponse struct {
	Active   bool     `json:"active"`
	Count    int      `json:"count"`
	Selected []string `json:"selected"`
}

// GetSelection reports the current selection state.
func GetSelection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := d.Selections.Get(mw.UserID(r.Context()))
		writeJSON(w, http.StatusOK, selectionResponse{
			Active:   m.Active(),
			Count:    m.Count(),
			Selected: m.Selected(),
		})
	}
}

type toggleRequest struct {
	ID string `json:"id"`
}

// SelectionAction dispatches the state transitions routed under
// /selection/{action}.
func SelectionAction(d deps.Deps, action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid := mw.UserID(ctx)
		m := d.Selections.Get(uid)

		switch action {
		case "enter":
			m.Enter()
		case "exit":
			m.Exit()
		case "clear":
			m.Clear()
		case "toggle":
			var req toggleRequest
			if err := decodeJSON(r, &req); err != nil {
				writeError(w, err)
				return
			}
			m.Toggle(req.ID)
		case "all":
			visible, err := d.Bookmarks.List(ctx, uid)
			if err != nil {
				writeError(w, err)
				return
			}
			m.SelectAll(visible)
		default:
			writeError(w, fmt.Errorf("%w: unknown selection action %q", domain.ErrValidation, action))
			return
		}

		writeJSON(w, http.StatusOK, selectionResponse{
			Active:   m.Active(),
			Count:    m.Count(),
			Selected: m.Selected(),
		})
	}
}

// SelectionBulk runs a bulk action over the selected bookmarks. The
// selection clears only when the batch commits.
func SelectionBulk(d deps.Deps, action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bulkRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		ctx := r.Context()
		uid := mw.UserID(ctx)
		m := d.Selections.Get(uid)

		var err error
		switch action {
		case "move":
			err = m.MoveToFolder(ctx, uid, req.FolderID)
		case "trash":
			err = m.Trash(ctx, uid)
		case "tags":
			err = m.AddTags(ctx, uid, req.Tags)
		case "read":
			err = m.SetRead(ctx, uid, req.Value)
		default:
			err = fmt.Errorf("%w: unknown selection action %q", domain.ErrValidation, action)
		}

		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, selectionResponse{
			Active:   m.Active(),
			Count:    m.Count(),
			Selected: m.Selected(),
		})
	}
}
