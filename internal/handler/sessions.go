package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/owlconnect/matching-platform/internal/middleware"
	"github.com/owlconnect/matching-platform/internal/model"
	"github.com/owlconnect/matching-platform/internal/ranking"
	"github.com/owlconnect/matching-platform/internal/session"
	"github.com/owlconnect/matching-platform/pkg/logger"
)

// SessionHandler exposes read-only views of negotiation sessions.
type SessionHandler struct {
	registry *session.Registry
	logger   *logger.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(registry *session.Registry, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		registry: registry,
		logger:   log,
	}
}

// Ranking handles GET /api/v1/sessions/:id/ranking
//
// The ranking reflects negotiations terminal at call time, so it can be
// polled mid-run; once the session completes the result is stable.
func (h *SessionHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if err := middleware.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := h.registry.Get(sessionID)
	if err != nil {
		writeError(w, errorStatus(err), "session not found")
		return
	}

	writeJSON(w, http.StatusOK, model.RankingResponse{
		SessionID: sessionID,
		Complete:  sess.Complete(),
		Ranking:   ranking.Rank(sess.States()),
	})
}

// Negotiations handles GET /api/v1/sessions/:id/negotiations
func (h *SessionHandler) Negotiations(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if err := middleware.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := h.registry.Get(sessionID)
	if err != nil {
		writeError(w, errorStatus(err), "session not found")
		return
	}

	writeJSON(w, http.StatusOK, model.NegotiationsResponse{
		SessionID:    sessionID,
		Negotiations: sess.States(),
	})
}
