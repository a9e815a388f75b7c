package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owlconnect/matching-platform/internal/model"
)

func state(mentorID, name string, score float64, status model.Status) model.NegotiationState {
	return model.NegotiationState{
		MentorID:   mentorID,
		MentorName: name,
		Score:      score,
		Status:     status,
	}
}

func TestRank_DenseOverSuccessfulOnly(t *testing.T) {
	states := []model.NegotiationState{
		state("m1", "Alice", 92, model.StatusSuccessful),
		state("m2", "Bob", 55, model.StatusRejected),
		state("m3", "Carol", 78, model.StatusSuccessful),
		state("m4", "Dan", 99, model.StatusExhausted),
		state("m5", "Eve", 40, model.StatusInProgress),
	}

	ranked := Rank(states)
	require.Len(t, ranked, 2)

	assert.Equal(t, "m1", ranked[0].MentorID)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "m3", ranked[1].MentorID)
	assert.Equal(t, 2, ranked[1].Rank)
}

func TestRank_TiesBreakByMentorID(t *testing.T) {
	states := []model.NegotiationState{
		state("m9", "Zoe", 80, model.StatusSuccessful),
		state("m2", "Ann", 80, model.StatusSuccessful),
		state("m5", "Kim", 90, model.StatusSuccessful),
	}

	ranked := Rank(states)
	require.Len(t, ranked, 3)
	assert.Equal(t, "m5", ranked[0].MentorID)
	assert.Equal(t, "m2", ranked[1].MentorID)
	assert.Equal(t, "m9", ranked[2].MentorID)
	assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank})
}

func TestRank_Idempotent(t *testing.T) {
	states := []model.NegotiationState{
		state("m1", "Alice", 70, model.StatusSuccessful),
		state("m2", "Bob", 85, model.StatusSuccessful),
	}

	first := Rank(states)
	second := Rank(states)
	assert.Equal(t, first, second)
}

func TestRank_DeduplicatesMentor(t *testing.T) {
	states := []model.NegotiationState{
		state("m1", "Alice", 70, model.StatusSuccessful),
		state("m1", "Alice", 90, model.StatusSuccessful),
	}

	ranked := Rank(states)
	require.Len(t, ranked, 1)
	assert.Equal(t, 70.0, ranked[0].Score)
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil))
	assert.Empty(t, Rank([]model.NegotiationState{
		state("m1", "Alice", 70, model.StatusRejected),
	}))
}
