package roadmap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owlconnect/matching-platform/internal/llm"
	"github.com/owlconnect/matching-platform/internal/model"
	"github.com/owlconnect/matching-platform/pkg/logger"
)

const (
	menteeText = "Second-year CS student interested in machine learning and robotics."
	mentorText = "Principal ML engineer with a decade of production model experience."
)

type fakeLLM struct {
	content string
	err     error
}

func (f *fakeLLM) Complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Response{Content: f.content, Model: "fake"}, nil
}

func (f *fakeLLM) Name() string { return "fake" }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)
	return log
}

func assertStructure(t *testing.T, milestones []model.RoadmapMilestone, count int) {
	t.Helper()
	require.Len(t, milestones, count)
	for _, m := range milestones {
		assert.NotEmpty(t, m.ID)
		assert.NotEmpty(t, m.Title)
		assert.True(t, m.Track.Valid(), "invalid track %q", m.Track)
		assert.True(t, m.Icon.Valid(), "invalid icon %q", m.Icon)
		assert.NotEmpty(t, m.Rationale)
		assert.NotEmpty(t, m.MentorPath)
		assert.NotEmpty(t, m.MenteeState)
		assert.NotEmpty(t, m.GapNarrative)
		assert.Greater(t, m.EstimatedWeeks, 0)
		assert.GreaterOrEqual(t, m.Impact, 1)
		assert.LessOrEqual(t, m.Impact, 5)
		assert.GreaterOrEqual(t, m.Effort, 1)
		assert.LessOrEqual(t, m.Effort, 5)
		assert.NotEmpty(t, m.Actions)
	}
	for i := 1; i < len(milestones); i++ {
		assert.GreaterOrEqual(t, milestones[i-1].Leverage(), milestones[i].Leverage(),
			"milestones not ordered by leverage")
	}
}

func TestSynthesize_TemplateOnly(t *testing.T) {
	s := NewSynthesizer(nil, testLogger(t))

	milestones, err := s.Synthesize(context.Background(), menteeText, mentorText, 8)
	require.NoError(t, err)
	assertStructure(t, milestones, 8)

	tracks := map[model.Track]bool{}
	for _, m := range milestones {
		tracks[m.Track] = true
	}
	assert.Len(t, tracks, 8, "each of the 8 tracks should appear once")
}

func TestSynthesize_DefaultsCount(t *testing.T) {
	s := NewSynthesizer(nil, testLogger(t))

	milestones, err := s.Synthesize(context.Background(), menteeText, mentorText, 0)
	require.NoError(t, err)
	assertStructure(t, milestones, defaultCount)
}

func TestSynthesize_InsufficientProfile(t *testing.T) {
	s := NewSynthesizer(nil, testLogger(t))

	_, err := s.Synthesize(context.Background(), "   ", mentorText, 4)
	assert.ErrorIs(t, err, model.ErrInsufficientProfile)

	_, err = s.Synthesize(context.Background(), menteeText, "", 4)
	assert.ErrorIs(t, err, model.ErrInsufficientProfile)
}

func TestSynthesize_GenerationFailureFallsBackToTemplates(t *testing.T) {
	s := NewSynthesizer(&fakeLLM{err: errors.New("model offline")}, testLogger(t))

	milestones, err := s.Synthesize(context.Background(), menteeText, mentorText, 5)
	require.NoError(t, err)
	assertStructure(t, milestones, 5)
}

func TestSynthesize_KeepsValidGeneratedMilestones(t *testing.T) {
	// One valid milestone, one missing its narrative fields. The valid one
	// survives on its slot's track; the invalid slot falls back to a
	// template.
	content := `Here you go:
[
  {"title":"Master the ML course sequence","track":"Academics","icon":"book-open",
   "rationale":"Builds the theory base","mentor_path":"Took graduate ML courses",
   "mentee_state":"Finished intro programming","gap_narrative":"Theory gap",
   "estimated_weeks":12,"impact":9,"effort":0,
   "actions":["Enroll in ML fundamentals","  ","Join a study group"]},
  {"title":"","track":"Research","icon":"flask"}
]`
	s := NewSynthesizer(&fakeLLM{content: content}, testLogger(t))

	milestones, err := s.Synthesize(context.Background(), menteeText, mentorText, 2)
	require.NoError(t, err)
	assertStructure(t, milestones, 2)

	var generated *model.RoadmapMilestone
	for i := range milestones {
		if milestones[i].Title == "Master the ML course sequence" {
			generated = &milestones[i]
		}
	}
	require.NotNil(t, generated, "valid generated milestone was discarded")
	assert.Equal(t, model.TrackAcademics, generated.Track)
	assert.Equal(t, model.IconBookOpen, generated.Icon)
	// Out-of-range scores are clamped into 1..5.
	assert.Equal(t, 5, generated.Impact)
	assert.Equal(t, 1, generated.Effort)
	// Blank action items are stripped.
	assert.Len(t, generated.Actions, 2)
}

func TestSynthesize_InvalidIconReplacedWithTrackDefault(t *testing.T) {
	content := `[
  {"title":"T","track":"Academics","icon":"sparkles","rationale":"r",
   "mentor_path":"m","mentee_state":"s","gap_narrative":"g",
   "estimated_weeks":4,"impact":3,"effort":2,"actions":["a"]}
]`
	s := NewSynthesizer(&fakeLLM{content: content}, testLogger(t))

	milestones, err := s.Synthesize(context.Background(), menteeText, mentorText, 1)
	require.NoError(t, err)
	require.Len(t, milestones, 1)
	assert.True(t, milestones[0].Icon.Valid())
	assert.Equal(t, trackIcons[model.TrackAcademics], milestones[0].Icon)
}
