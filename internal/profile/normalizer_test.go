package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owlconnect/matching-platform/internal/model"
)

const narrative = "Hobbies and Interests: hiking, robotics and photography. " +
	"Personality and MBTI: I am an INTJ who likes structure. " +
	"Career Goals and Aspirations: become a machine learning engineer at a research lab."

func fullRequest() *model.OnboardingRequest {
	return &model.OnboardingRequest{
		ParagraphText: narrative,
		ResumeData: &model.ResumeData{
			Contact: model.Contact{Name: "Jordan Lee", Email: "jordan@example.edu"},
			Skills: map[string][]string{
				"languages":  {"Python", "Go"},
				"frameworks": {"PyTorch"},
			},
			Experience: []model.ExperienceEntry{
				{Role: "Research Assistant", Company: "Vision Lab"},
				{Role: "Teaching Assistant"},
			},
		},
		TranscriptData: &model.TranscriptData{
			Majors: []string{"Computer Science", "Mathematics"},
			CoursesCompleted: []model.CourseEntry{
				{Code: "CS4780", Title: "Machine Learning"},
				{Code: "CS2110", Title: "Data Structures"},
			},
		},
		Availability: []string{"Tue evening"},
	}
}

func TestNormalize_FullSubmission(t *testing.T) {
	p := Normalize(fullRequest())

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Jordan Lee", p.Name)
	assert.Equal(t, "jordan@example.edu", p.Email)
	assert.Equal(t, "Computer Science", p.Major)
	assert.ElementsMatch(t, []string{"Python", "Go", "PyTorch"}, p.Skills)
	assert.Equal(t, []string{"Research Assistant", "Teaching Assistant"}, p.Experience)
	assert.Equal(t, []string{"Machine Learning", "Data Structures"}, p.Courses)
	assert.Equal(t, []string{"Tue evening"}, p.Availability)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestNormalize_NarrativeSections(t *testing.T) {
	p := Normalize(fullRequest())

	assert.Equal(t, []string{"hiking", "robotics", "photography"}, p.Hobbies)
	assert.Equal(t, "INTJ", p.MBTI)
	require.Len(t, p.CareerGoals, 1)
	assert.Contains(t, p.CareerGoals[0], "machine learning engineer")
}

func TestNormalize_ParagraphOnly(t *testing.T) {
	p := Normalize(&model.OnboardingRequest{ParagraphText: "I like turtles."})

	assert.Equal(t, "Mentee", p.Name)
	assert.Equal(t, "I like turtles.", p.Paragraph)
	assert.Empty(t, p.Hobbies)
	assert.Empty(t, p.MBTI)
	assert.Empty(t, p.CareerGoals)
}

func TestNormalize_UniqueSortableIDs(t *testing.T) {
	a := Normalize(&model.OnboardingRequest{ParagraphText: "a"})
	b := Normalize(&model.OnboardingRequest{ParagraphText: "b"})
	assert.NotEqual(t, a.ID, b.ID)
}

func TestExtractMBTI(t *testing.T) {
	assert.Equal(t, "ENFP", extractMBTI("I test as an ENFP."))
	assert.Equal(t, "", extractMBTI("I have no type."))
	// Lowercase words of length four are not MBTI codes.
	assert.Equal(t, "", extractMBTI("I am very calm and warm."))
}
