// Package handlers holds the HTTP handler functions. Handlers decode,
// delegate to a service and translate the error taxonomy to status
// codes; they never contain domain logic themselves.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/smerle/marque/internal/domain"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	label := "internal_error"

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, label = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrDuplicateName):
		status, label = http.StatusConflict, "duplicate_name"
	case errors.Is(err, domain.ErrCycle):
		status, label = http.StatusConflict, "cycle"
	case errors.Is(err, domain.ErrValidation):
		status, label = http.StatusBadRequest, "validation"
	}

	writeJSON(w, status, errorResponse{
		Success: false,
		Error:   label,
		Message: err.Error(),
	})
}

// decodeJSON fills v from the request body. An empty body leaves v
// zeroed so actions without parameters need no payload.
func decodeJSON(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%w: invalid json body", domain.ErrValidation)
	}
	return nil
}
