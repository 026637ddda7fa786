package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/smerle/marque/internal/httpserver/deps"
	"github.com/smerle/marque/internal/httpserver/handlers"
	"github.com/smerle/marque/internal/httpserver/mw"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Route("/bookmarks", func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger), mw.Identity())

		r.Get("/", handlers.ListBookmarks(d))
		r.Post("/", handlers.CreateBookmark(d))
		r.Delete("/{id}", handlers.DeleteBookmark(d))

		for _, action := range []string{"favorite", "read", "folder", "trash", "restore"} {
			r.Post("/{id}/"+action, handlers.MutateBookmark(d, action))
		}

		for _, action := range []string{"move", "trash", "tags", "read"} {
			r.Post("/bulk/"+action, handlers.BulkMutateBookmarks(d, action))
		}
	})
}
