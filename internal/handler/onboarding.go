package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/owlconnect/matching-platform/internal/directory"
	"github.com/owlconnect/matching-platform/internal/middleware"
	"github.com/owlconnect/matching-platform/internal/model"
	"github.com/owlconnect/matching-platform/internal/profile"
	"github.com/owlconnect/matching-platform/pkg/logger"
	"github.com/owlconnect/matching-platform/pkg/metrics"
)

// OnboardingHandler handles mentee onboarding submissions.
type OnboardingHandler struct {
	store  *directory.Store
	logger *logger.Logger
}

// NewOnboardingHandler creates a new onboarding handler.
func NewOnboardingHandler(store *directory.Store, log *logger.Logger) *OnboardingHandler {
	return &OnboardingHandler{
		store:  store,
		logger: log,
	}
}

// Submit handles POST /api/v1/onboarding
func (h *OnboardingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.OnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateStruct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateNarrative(req.ParagraphText); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	mentee := profile.Normalize(&req)
	if err := h.store.CreateMentee(r.Context(), mentee); err != nil {
		h.logger.Error("failed to store mentee profile", zap.Error(err))
		writeError(w, errorStatus(err), "failed to store mentee profile")
		return
	}

	metrics.OnboardingsTotal.Inc()
	h.logger.Info("mentee onboarded",
		zap.String("mentee_id", mentee.ID),
		zap.String("name", mentee.Name),
	)

	// The session id seeds the WebSocket negotiation the client opens next.
	writeJSON(w, http.StatusCreated, model.OnboardingResponse{
		ID:        mentee.ID,
		SessionID: uuid.New().String(),
	})
}
