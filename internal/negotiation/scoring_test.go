package negotiation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/owlconnect/matching-platform/internal/model"
)

func alignedMentee() *model.MenteeProfile {
	return &model.MenteeProfile{
		ID:           "mentee-1",
		Name:         "Jordan",
		Major:        "Computer Science",
		Skills:       []string{"Python", "machine learning"},
		Hobbies:      []string{"hiking", "robotics"},
		MBTI:         "INTJ",
		CareerGoals:  []string{"machine learning engineer"},
		Availability: []string{"Tue evening"},
	}
}

func alignedMentor() *model.MentorProfile {
	return &model.MentorProfile{
		ID:               "m-strong",
		Name:             "Sam Rivera",
		Skills:           []string{"Python", "machine learning", "computer science"},
		Interests:        []string{"hiking", "robotics"},
		MentorshipTopics: []string{"machine learning careers", "computer science"},
		Availability:     []string{"Tue evening"},
		MBTI:             "INTJ",
	}
}

func unrelatedMentor() *model.MentorProfile {
	return &model.MentorProfile{
		ID:               "m-weak",
		Name:             "Pat Doyle",
		Skills:           []string{"watercolor"},
		Interests:        []string{"opera"},
		MentorshipTopics: []string{"fine arts"},
		MBTI:             "ESFP",
	}
}

func TestBaseAlignment_StrongPair(t *testing.T) {
	score := BaseAlignment(alignedMentee(), alignedMentor())
	assert.GreaterOrEqual(t, score, StrongMatchScore)
	assert.LessOrEqual(t, score, 100.0)
}

func TestBaseAlignment_UnrelatedPair(t *testing.T) {
	score := BaseAlignment(alignedMentee(), unrelatedMentor())
	assert.Less(t, score, rejectBelowScore)
}

func TestEnthusiasmDelta(t *testing.T) {
	assert.Equal(t, enthusiasmStep, EnthusiasmDelta("I'm excited about this!"))
	assert.Equal(t, -enthusiasmStep, EnthusiasmDelta("Unfortunately my schedule is full."))
	assert.Equal(t, 0.0, EnthusiasmDelta("Tell me about your coursework."))

	// One positive and one negative cue cancel out.
	assert.Equal(t, 0.0, EnthusiasmDelta("I'm excited, but not sure about the timing."))
}

func TestAgreementAndDeclineCues(t *testing.T) {
	assert.True(t, IsAgreement("I want to work with you on this."))
	assert.True(t, IsAgreement("Tuesday works for me."))
	assert.False(t, IsAgreement("Let me think it over."))

	assert.True(t, IsDecline("I'm not interested in this pairing."))
	assert.True(t, IsDecline("I think this won't work out."))
	assert.False(t, IsDecline("That might work."))
}
