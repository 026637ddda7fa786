package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smerle/marque/internal/httpserver/deps"
	"github.com/smerle/marque/internal/httpserver/handlers"
	"github.com/smerle/marque/internal/httpserver/mw"
)

func init() { Register(registerMetadata) }

// The metadata endpoint is public (CORS) and scrapes third-party
// sites, so it carries its own per-IP budget.
func registerMetadata(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:        d.MetadataRPM,
		RefillPerMin: d.MetadataRPM,
		IdleTTL:      15 * time.Minute,
		TrustProxy:   d.TrustProxy,
	})

	r.With(mw.CORS(d.CORSOrigins), limit).Post("/metadata", handlers.FetchMetadata(d))
	r.With(mw.CORS(d.CORSOrigins)).Options("/metadata", handlers.FetchMetadata(d))
}
