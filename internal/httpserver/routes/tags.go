package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/smerle/marque/internal/httpserver/deps"
	"github.com/smerle/marque/internal/httpserver/handlers"
	"github.com/smerle/marque/internal/httpserver/mw"
)

func init() { Register(registerTags) }

func registerTags(r chi.Router, d deps.Deps) {
	r.Route("/tags", func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger), mw.Identity())

		r.Get("/", handlers.ListTags(d))
		r.Post("/rename", handlers.RenameTag(d))
		r.Post("/delete", handlers.DeleteTag(d))
	})
}
