// Package roadmap synthesizes ordered milestone roadmaps bridging a
// mentee's current state and a mentor's path. Narrative text may come
// from a language model; the structural contract (exact count, closed
// track and icon enumerations, non-empty fields, bounded scores) is
// enforced unconditionally.
package roadmap

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/owlconnect/matching-platform/internal/llm"
	"github.com/owlconnect/matching-platform/internal/model"
	"github.com/owlconnect/matching-platform/pkg/logger"
)

const defaultCount = 6

// Synthesizer generates roadmaps. With a nil client it produces fully
// deterministic template roadmaps.
type Synthesizer struct {
	llm    llm.Client
	logger *logger.Logger
}

// NewSynthesizer creates a synthesizer. client may be nil.
func NewSynthesizer(client llm.Client, log *logger.Logger) *Synthesizer {
	return &Synthesizer{llm: client, logger: log}
}

// Synthesize produces exactly count milestones for the given mentee and
// mentor descriptive texts, ordered by leverage score descending. Fails
// with InsufficientProfile on empty input.
func (s *Synthesizer) Synthesize(ctx context.Context, menteeText, mentorText string, count int) ([]model.RoadmapMilestone, error) {
	menteeText = strings.TrimSpace(menteeText)
	mentorText = strings.TrimSpace(mentorText)
	if menteeText == "" || mentorText == "" {
		return nil, model.ErrInsufficientProfile
	}
	if count <= 0 {
		count = defaultCount
	}

	tracks := pickTracks(count)

	var milestones []model.RoadmapMilestone
	if s.llm != nil {
		milestones = s.generate(ctx, menteeText, mentorText, tracks)
	}

	// Fill every slot the generation left missing or invalid with its
	// deterministic template so the structural contract always holds.
	for len(milestones) < count {
		track := tracks[len(milestones)%len(tracks)]
		milestones = append(milestones, buildTemplate(track, menteeText, mentorText))
	}
	milestones = milestones[:count]

	sort.SliceStable(milestones, func(i, j int) bool {
		return milestones[i].Leverage() > milestones[j].Leverage()
	})
	return milestones, nil
}

// pickTracks assigns one track per milestone slot, cycling through the
// enumeration so a roadmap covers as many distinct tracks as count allows.
func pickTracks(count int) []model.Track {
	tracks := make([]model.Track, 0, count)
	for i := 0; i < count; i++ {
		tracks = append(tracks, model.Tracks[i%len(model.Tracks)])
	}
	return tracks
}

// generatedMilestone is the JSON shape requested from the model.
type generatedMilestone struct {
	Title          string   `json:"title"`
	Track          string   `json:"track"`
	Icon           string   `json:"icon"`
	Rationale      string   `json:"rationale"`
	MentorPath     string   `json:"mentor_path"`
	MenteeState    string   `json:"mentee_state"`
	GapNarrative   string   `json:"gap_narrative"`
	EstimatedWeeks int      `json:"estimated_weeks"`
	Impact         int      `json:"impact"`
	Effort         int      `json:"effort"`
	Actions        []string `json:"actions"`
}

// generate asks the model for milestone narratives and keeps only the
// structurally valid ones, retrying once on an unparseable response.
func (s *Synthesizer) generate(ctx context.Context, menteeText, mentorText string, tracks []model.Track) []model.RoadmapMilestone {
	prompt := buildPrompt(menteeText, mentorText, tracks)

	for attempt := 0; attempt < 2; attempt++ {
		resp, err := s.llm.Complete(ctx, &llm.Request{
			System:      synthesisSystem,
			Prompt:      prompt,
			MaxTokens:   4096,
			Temperature: 0.4,
		})
		if err != nil {
			s.logger.Warn("roadmap generation failed", zap.Error(err), zap.Int("attempt", attempt))
			if ctx.Err() != nil {
				return nil
			}
			continue
		}

		generated, err := parseMilestones(resp.Content)
		if err != nil {
			s.logger.Warn("roadmap response unparseable", zap.Error(err), zap.Int("attempt", attempt))
			prompt = prompt + "\n\nYour previous response was not valid JSON. Return ONLY the JSON array."
			continue
		}

		milestones := make([]model.RoadmapMilestone, 0, len(tracks))
		for i, g := range generated {
			if i >= len(tracks) {
				break
			}
			if m, ok := sanitize(g, tracks[i]); ok {
				milestones = append(milestones, m)
			}
		}
		return milestones
	}
	return nil
}

const synthesisSystem = "You are a mentorship advisor who turns a mentee profile and a " +
	"mentor profile into a concrete milestone roadmap. You respond with strict JSON only."

func buildPrompt(menteeText, mentorText string, tracks []model.Track) string {
	trackNames := make([]string, len(tracks))
	for i, t := range tracks {
		trackNames[i] = string(t)
	}
	iconNames := make([]string, len(model.Icons))
	for i, ic := range model.Icons {
		iconNames[i] = string(ic)
	}
	return fmt.Sprintf(
		"Mentee profile:\n%s\n\nMentor profile:\n%s\n\n"+
			"Produce exactly %d milestones as a JSON array. Milestone i must use track %v "+
			"(in order). Each object needs: title, track, icon (one of %s), rationale, "+
			"mentor_path (how the mentor achieved this), mentee_state (where the mentee is now), "+
			"gap_narrative, estimated_weeks (integer), impact (1-5), effort (1-5), "+
			"actions (3-5 concrete strings). Return ONLY the JSON array.",
		menteeText, mentorText, len(tracks), trackNames, strings.Join(iconNames, ", "),
	)
}

// parseMilestones extracts the JSON array from a model response,
// tolerating surrounding prose or code fences.
func parseMilestones(content string) ([]generatedMilestone, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in response")
	}
	var out []generatedMilestone
	if err := json.Unmarshal([]byte(content[start:end+1]), &out); err != nil {
		return nil, fmt.Errorf("failed to parse milestones: %w", err)
	}
	return out, nil
}

// sanitize converts one generated milestone, enforcing the structural
// contract: assigned track, valid icon, non-empty text fields, scores in
// [1,5], non-empty actions. Returns false when a field cannot be
// repaired without inventing narrative.
func sanitize(g generatedMilestone, track model.Track) (model.RoadmapMilestone, bool) {
	if g.Title == "" || g.Rationale == "" || g.MentorPath == "" ||
		g.MenteeState == "" || g.GapNarrative == "" || len(g.Actions) == 0 {
		return model.RoadmapMilestone{}, false
	}

	icon := model.Icon(strings.ToLower(strings.TrimSpace(g.Icon)))
	if !icon.Valid() {
		icon = trackIcons[track]
	}

	weeks := g.EstimatedWeeks
	if weeks <= 0 {
		weeks = trackTemplates[track].weeks
	}

	actions := make([]model.ActionItem, 0, len(g.Actions))
	for _, a := range g.Actions {
		a = strings.TrimSpace(a)
		if a != "" {
			actions = append(actions, model.ActionItem{Text: a})
		}
	}
	if len(actions) == 0 {
		return model.RoadmapMilestone{}, false
	}

	return model.RoadmapMilestone{
		ID:             uuid.New().String(),
		Title:          g.Title,
		Track:          track,
		Icon:           icon,
		Rationale:      g.Rationale,
		MentorPath:     g.MentorPath,
		MenteeState:    g.MenteeState,
		GapNarrative:   g.GapNarrative,
		EstimatedWeeks: weeks,
		Impact:         clampScore(g.Impact),
		Effort:         clampScore(g.Effort),
		Actions:        actions,
	}, true
}

func clampScore(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}
