package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/owlconnect/matching-platform/internal/model"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// errorStatus maps domain sentinel errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrSessionNotFound),
		errors.Is(err, model.ErrMentorNotFound),
		errors.Is(err, model.ErrMenteeNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInsufficientProfile):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrDirectoryUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
