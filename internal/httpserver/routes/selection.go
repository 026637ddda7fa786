package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/smerle/marque/internal/httpserver/deps"
	"github.com/smerle/marque/internal/httpserver/handlers"
	"github.com/smerle/marque/internal/httpserver/mw"
)

func init() { Register(registerSelection) }

func registerSelection(r chi.Router, d deps.Deps) {
	r.Route("/selection", func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger), mw.Identity())

		r.Get("/", handlers.GetSelection(d))

		for _, action := range []string{"enter", "exit", "toggle", "all", "clear"} {
			r.Post("/"+action, handlers.SelectionAction(d, action))
		}

		for _, action := range []string{"move", "trash", "tags", "read"} {
			r.Post("/"+action, handlers.SelectionBulk(d, action))
		}
	})
}
