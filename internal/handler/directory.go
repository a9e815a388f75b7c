// Package handler provides HTTP handlers for the API.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/owlconnect/matching-platform/internal/directory"
	"github.com/owlconnect/matching-platform/pkg/logger"
)

// DirectoryHandler handles mentor directory and mentee lookup endpoints.
type DirectoryHandler struct {
	store  *directory.Store
	logger *logger.Logger
}

// NewDirectoryHandler creates a new directory handler.
func NewDirectoryHandler(store *directory.Store, log *logger.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		store:  store,
		logger: log,
	}
}

// ListMentors handles GET /api/v1/mentors
func (h *DirectoryHandler) ListMentors(w http.ResponseWriter, r *http.Request) {
	mentors, err := h.store.ListMentors(r.Context())
	if err != nil {
		h.logger.Error("failed to list mentors", zap.Error(err))
		writeError(w, errorStatus(err), "failed to list mentors")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mentors": mentors,
		"total":   len(mentors),
	})
}

// GetMentor handles GET /api/v1/mentors/:id
func (h *DirectoryHandler) GetMentor(w http.ResponseWriter, r *http.Request) {
	mentorID := chi.URLParam(r, "id")

	mentor, err := h.store.GetMentor(r.Context(), mentorID)
	if err != nil {
		writeError(w, errorStatus(err), "mentor not found")
		return
	}

	writeJSON(w, http.StatusOK, mentor)
}

// NewestMentee handles GET /api/v1/mentees/newest
func (h *DirectoryHandler) NewestMentee(w http.ResponseWriter, r *http.Request) {
	mentee, err := h.store.NewestMentee(r.Context())
	if err != nil {
		writeError(w, errorStatus(err), "no onboarded mentees")
		return
	}

	writeJSON(w, http.StatusOK, mentee)
}
