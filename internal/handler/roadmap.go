package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/owlconnect/matching-platform/internal/middleware"
	"github.com/owlconnect/matching-platform/internal/model"
	"github.com/owlconnect/matching-platform/internal/roadmap"
	"github.com/owlconnect/matching-platform/pkg/logger"
	"github.com/owlconnect/matching-platform/pkg/metrics"
)

const defaultMilestoneCount = 6

// RoadmapHandler handles roadmap synthesis requests.
type RoadmapHandler struct {
	synth  *roadmap.Synthesizer
	logger *logger.Logger
}

// NewRoadmapHandler creates a new roadmap handler.
func NewRoadmapHandler(synth *roadmap.Synthesizer, log *logger.Logger) *RoadmapHandler {
	return &RoadmapHandler{
		synth:  synth,
		logger: log,
	}
}

// Synthesize handles POST /api/v1/roadmap
func (h *RoadmapHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req model.RoadmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Count == 0 {
		req.Count = defaultMilestoneCount
	}
	if err := middleware.ValidateStruct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	milestones, err := h.synth.Synthesize(r.Context(), req.MenteeText, req.MentorText, req.Count)
	if err != nil {
		metrics.RoadmapsTotal.WithLabelValues("error").Inc()
		if errors.Is(err, model.ErrInsufficientProfile) {
			writeError(w, errorStatus(err), "mentee and mentor descriptions are required")
			return
		}
		h.logger.Error("roadmap synthesis failed", zap.Error(err))
		writeError(w, errorStatus(err), "failed to synthesize roadmap")
		return
	}

	metrics.RoadmapsTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, model.RoadmapResponse{Milestones: milestones})
}
