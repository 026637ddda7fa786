package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/smerle/marque/internal/httpserver/deps"
	"github.com/smerle/marque/internal/httpserver/handlers"
	"github.com/smerle/marque/internal/httpserver/mw"
)

func init() { Register(registerFolders) }

func registerFolders(r chi.Router, d deps.Deps) {
	r.Route("/folders", func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger), mw.Identity())

		r.Get("/", handlers.ListFolders(d))
		r.Post("/", handlers.CreateFolder(d))
		r.Patch("/{id}", handlers.UpdateFolder(d))
		r.Delete("/{id}", handlers.DeleteFolder(d))
	})
}
