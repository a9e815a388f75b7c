package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owlconnect/matching-platform/internal/model"
)

func mentee() *model.MenteeProfile {
	return &model.MenteeProfile{ID: "p1", Name: "Jordan"}
}

func candidates() []model.MentorProfile {
	return []model.MentorProfile{
		{ID: "m1", Name: "Alice"},
		{ID: "m2", Name: "Bob"},
	}
}

func TestSession_BeginIsIdempotent(t *testing.T) {
	s := New("s1", mentee(), 16)
	assert.True(t, s.Begin())
	assert.False(t, s.Begin())
}

func TestSession_StatesSnapshotInSelectionOrder(t *testing.T) {
	s := New("s1", mentee(), 16)
	s.SetCandidates(candidates())

	states := s.States()
	require.Len(t, states, 2)
	assert.Equal(t, "m1", states[0].MentorID)
	assert.Equal(t, "m2", states[1].MentorID)
	assert.Equal(t, model.StatusPending, states[0].Status)

	// Snapshots are deep copies: mutating one does not leak back.
	states[0].Dialogue = append(states[0].Dialogue, model.Utterance{Text: "hi"})
	assert.Empty(t, s.States()[0].Dialogue)
}

func TestSession_UpdateSingleCandidate(t *testing.T) {
	s := New("s1", mentee(), 16)
	s.SetCandidates(candidates())

	s.Update("m2", func(st *model.NegotiationState) {
		st.Status = model.StatusSuccessful
		st.Score = 91
	})

	states := s.States()
	assert.Equal(t, model.StatusPending, states[0].Status)
	assert.Equal(t, model.StatusSuccessful, states[1].Status)
	assert.Equal(t, 91.0, states[1].Score)
}

func TestSession_Complete(t *testing.T) {
	s := New("s1", mentee(), 16)
	s.SetCandidates(candidates())
	assert.False(t, s.Complete())

	s.Update("m1", func(st *model.NegotiationState) { st.Status = model.StatusSuccessful })
	assert.False(t, s.Complete())

	s.Update("m2", func(st *model.NegotiationState) { st.Status = model.StatusRejected })
	assert.True(t, s.Complete())
}

func TestSession_Expiry(t *testing.T) {
	s := New("s1", mentee(), 16)
	now := time.Now()

	// Unfinished sessions never expire.
	assert.False(t, s.Expired(time.Minute, now.Add(time.Hour)))

	s.Finish()
	assert.False(t, s.Expired(time.Hour, now))
	assert.True(t, s.Expired(time.Millisecond, now.Add(time.Minute)))
}

func TestRegistry_ObtainCreatesAndResumes(t *testing.T) {
	r := NewRegistry(time.Minute, 16)

	s1 := r.Obtain("s1", mentee())
	s2 := r.Obtain("s1", nil)
	assert.Same(t, s1, s2)

	got, err := r.Get("s1")
	require.NoError(t, err)
	assert.Same(t, s1, got)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry(time.Minute, 16)
	_, err := r.Get("nope")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestRegistry_RemoveClosesStream(t *testing.T) {
	r := NewRegistry(time.Minute, 16)
	s := r.Obtain("s1", mentee())

	r.Remove("s1")
	assert.True(t, s.Mux.Closed())
	_, err := r.Get("s1")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestRegistry_ReapRespectsRetention(t *testing.T) {
	r := NewRegistry(10*time.Minute, 16)

	finished := r.Obtain("finished", mentee())
	finished.Finish()
	r.Obtain("running", mentee())

	// Within the retention window nothing is reaped.
	r.reap(time.Now().Add(5 * time.Minute))
	_, err := r.Get("finished")
	assert.NoError(t, err)

	// Past the window only finished sessions go; running ones stay.
	r.reap(time.Now().Add(11 * time.Minute))
	_, err = r.Get("finished")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
	assert.True(t, finished.Mux.Closed())

	_, err = r.Get("running")
	assert.NoError(t, err)
}
