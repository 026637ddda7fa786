package handlers

import (
	"net/http"
	"strings"

	"github.com/smerle/marque/internal/httpserver/deps"
	"github.com/smerle/marque/internal/logger"
	"github.com/smerle/marque/internal/metadata"
)

type metadataRequest struct {
	URL string `json:"url"`
}

type metadataResponse struct {
	Success  bool               `json:"success"`
	Metadata *metadata.Metadata `json:"metadata"`
}

// FetchMetadata retrieves preview metadata for a URL. Fetch failures
// answer 500 so the client falls back to a bare link preview.
func FetchMetadata(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req metadataRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if strings.TrimSpace(req.URL) == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Success: false,
				Error:   "validation",
				Message: "url is required",
			})
			return
		}

		meta, err := d.Fetcher.Fetch(r.Context(), req.URL)
		if err != nil {
			d.Logger.Warn("metadata fetch failed",
				logger.String("url", req.URL),
				logger.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{
				Success: false,
				Error:   "fetch_failed",
				Message: "Failed to fetch metadata",
			})
			return
		}

		writeJSON(w, http.StatusOK, metadataResponse{Success: true, Metadata: meta})
	}
}
