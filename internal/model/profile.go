// Package model defines data structures for the matching platform.
package model

import (
	"strings"
	"time"
)

// MenteeProfile is the canonical mentee record produced by the profile
// normalizer from one onboarding submission. Immutable for the lifetime
// of any session that references it.
type MenteeProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// Academic data (transcript-derived)
	Major   string   `json:"major,omitempty"`
	Courses []string `json:"courses,omitempty"`

	// Resume data
	Email      string   `json:"email,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Experience []string `json:"experience,omitempty"`

	// Free-text narrative sections
	Hobbies      []string `json:"hobbies,omitempty"`
	MBTI         string   `json:"mbti,omitempty"`
	CareerGoals  []string `json:"career_goals,omitempty"`
	Availability []string `json:"availability,omitempty"`

	// Paragraph is the full descriptive narrative as submitted.
	Paragraph string `json:"paragraph,omitempty"`
}

// Interests returns the mentee's combined interest terms used for
// overlap scoring.
func (p *MenteeProfile) Interests() []string {
	out := make([]string, 0, len(p.Hobbies)+len(p.CareerGoals)+1)
	out = append(out, p.Hobbies...)
	out = append(out, p.CareerGoals...)
	if p.Major != "" {
		out = append(out, p.Major)
	}
	return out
}

// Describe renders the profile as one descriptive paragraph, used as the
// mentee side of roadmap synthesis and agent prompting.
func (p *MenteeProfile) Describe() string {
	if p.Paragraph != "" {
		return p.Paragraph
	}
	var b strings.Builder
	b.WriteString(p.Name)
	if p.Major != "" {
		b.WriteString(", studying ")
		b.WriteString(p.Major)
	}
	if len(p.Skills) > 0 {
		b.WriteString(". Skills: ")
		b.WriteString(strings.Join(p.Skills, ", "))
	}
	if len(p.CareerGoals) > 0 {
		b.WriteString(". Goals: ")
		b.WriteString(strings.Join(p.CareerGoals, ", "))
	}
	return b.String()
}

// MentorProfile is a long-lived directory record, read-only to every
// component except the directory itself.
type MentorProfile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`

	// Professional data
	Title    string `json:"title,omitempty"`
	Employer string `json:"employer,omitempty"`
	Location string `json:"location,omitempty"`

	// Academic history
	Education []string `json:"education,omitempty"`

	// Matching signals
	Skills           []string `json:"skills,omitempty"`
	Tools            []string `json:"tools,omitempty"`
	Interests        []string `json:"interests,omitempty"`
	MentorshipTopics []string `json:"mentorship_topics,omitempty"`
	Availability     []string `json:"availability,omitempty"`
	CommStyle        string   `json:"communication_style,omitempty"`
	MBTI             string   `json:"mbti,omitempty"`
	ExperienceYears  int      `json:"experience_years,omitempty"`
	MaxMentees       int      `json:"max_mentees,omitempty"`
}

// Describe renders the mentor profile as descriptive text for roadmap
// synthesis and agent prompting.
func (p *MentorProfile) Describe() string {
	var b strings.Builder
	b.WriteString(p.Name)
	if p.Title != "" {
		b.WriteString(", ")
		b.WriteString(p.Title)
	}
	if p.Employer != "" {
		b.WriteString(" at ")
		b.WriteString(p.Employer)
	}
	if len(p.Skills) > 0 {
		b.WriteString(". Expertise: ")
		b.WriteString(strings.Join(p.Skills, ", "))
	}
	if len(p.MentorshipTopics) > 0 {
		b.WriteString(". Mentors on: ")
		b.WriteString(strings.Join(p.MentorshipTopics, ", "))
	}
	if len(p.Availability) > 0 {
		b.WriteString(". Available: ")
		b.WriteString(strings.Join(p.Availability, ", "))
	}
	return b.String()
}
