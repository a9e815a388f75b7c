package directory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owlconnect/matching-platform/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleMentor(id, name string) *model.MentorProfile {
	return &model.MentorProfile{
		ID:               id,
		Name:             name,
		Title:            "Staff Engineer",
		Employer:         "Acme",
		MBTI:             "ENTJ",
		ExperienceYears:  12,
		MaxMentees:       3,
		Skills:           []string{"Go", "distributed systems"},
		Interests:        []string{"climbing"},
		MentorshipTopics: []string{"backend careers"},
		Availability:     []string{"Wed evening"},
	}
}

func TestStore_PutAndGetMentor(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutMentor(ctx, sampleMentor("m1", "Alice")))

	got, err := s.GetMentor(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, []string{"Go", "distributed systems"}, got.Skills)
	assert.Equal(t, []string{"Wed evening"}, got.Availability)
	assert.Equal(t, 12, got.ExperienceYears)
}

func TestStore_GetMentorNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetMentor(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrMentorNotFound)
}

func TestStore_ListMentorsOrderedByName(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutMentor(ctx, sampleMentor("m2", "Zoe")))
	require.NoError(t, s.PutMentor(ctx, sampleMentor("m1", "Alice")))

	mentors, err := s.ListMentors(ctx)
	require.NoError(t, err)
	require.Len(t, mentors, 2)
	assert.Equal(t, "Alice", mentors[0].Name)
	assert.Equal(t, "Zoe", mentors[1].Name)
}

func TestStore_PutMentorReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutMentor(ctx, sampleMentor("m1", "Alice")))
	updated := sampleMentor("m1", "Alice B.")
	require.NoError(t, s.PutMentor(ctx, updated))

	mentors, err := s.ListMentors(ctx)
	require.NoError(t, err)
	require.Len(t, mentors, 1)
	assert.Equal(t, "Alice B.", mentors[0].Name)
}

func TestStore_NewestMentee(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.NewestMentee(ctx)
	assert.ErrorIs(t, err, model.ErrMenteeNotFound)

	older := &model.MenteeProfile{
		ID:        "p1",
		Name:      "First",
		CreatedAt: time.Now().Add(-time.Hour),
	}
	newer := &model.MenteeProfile{
		ID:           "p2",
		Name:         "Second",
		Major:        "Physics",
		Skills:       []string{"MATLAB"},
		Hobbies:      []string{"chess"},
		CreatedAt:    time.Now(),
		Availability: []string{"Fri morning"},
	}
	require.NoError(t, s.CreateMentee(ctx, older))
	require.NoError(t, s.CreateMentee(ctx, newer))

	got, err := s.NewestMentee(ctx)
	require.NoError(t, err)
	assert.Equal(t, "p2", got.ID)
	assert.Equal(t, "Physics", got.Major)
	assert.Equal(t, []string{"MATLAB"}, got.Skills)
	assert.Equal(t, []string{"chess"}, got.Hobbies)
}

func TestStore_Ping(t *testing.T) {
	s := openTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
