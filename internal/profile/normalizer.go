// Package profile converts raw onboarding payloads into canonical
// mentee profiles.
package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/owlconnect/matching-platform/internal/model"
)

// Section markers recognized inside the free-text narrative paragraph.
const (
	markerHobbies = "Hobbies and Interests:"
	markerMBTI    = "Personality and MBTI:"
	markerGoals   = "Career Goals and Aspirations:"
)

// Normalize builds an immutable MenteeProfile from one onboarding
// submission. Structured resume/transcript data is flattened into the
// matching-signal fields; the narrative paragraph is split on its
// section markers when present.
func Normalize(req *model.OnboardingRequest) *model.MenteeProfile {
	p := &model.MenteeProfile{
		ID:           uuid.Must(uuid.NewV7()).String(),
		CreatedAt:    time.Now(),
		Paragraph:    strings.TrimSpace(req.ParagraphText),
		Availability: req.Availability,
	}

	if req.ResumeData != nil {
		p.Name = req.ResumeData.Contact.Name
		p.Email = req.ResumeData.Contact.Email
		for _, vals := range req.ResumeData.Skills {
			p.Skills = append(p.Skills, vals...)
		}
		for _, exp := range req.ResumeData.Experience {
			p.Experience = append(p.Experience, exp.Role)
		}
	}

	if req.TranscriptData != nil {
		if len(req.TranscriptData.Majors) > 0 {
			p.Major = req.TranscriptData.Majors[0]
		}
		for _, c := range req.TranscriptData.CoursesCompleted {
			p.Courses = append(p.Courses, c.Title)
		}
	}

	hobbies, mbti, goals := splitNarrative(p.Paragraph)
	p.Hobbies = hobbies
	p.MBTI = mbti
	p.CareerGoals = goals

	if p.Name == "" {
		p.Name = "Mentee"
	}
	return p
}

// splitNarrative extracts the hobby, MBTI and career-goal sections from
// the narrative paragraph. A paragraph without markers yields no
// structured sections; the raw text still feeds matching via Describe.
func splitNarrative(text string) (hobbies []string, mbti string, goals []string) {
	if h := between(text, markerHobbies, markerMBTI); h != "" {
		hobbies = splitTerms(h)
	}
	if m := between(text, markerMBTI, markerGoals); m != "" {
		mbti = extractMBTI(m)
	}
	if idx := strings.Index(text, markerGoals); idx >= 0 {
		if g := strings.TrimSpace(text[idx+len(markerGoals):]); g != "" {
			goals = []string{g}
		}
	}
	return hobbies, mbti, goals
}

// between returns the trimmed text after start and before end. When end
// is absent the remainder after start is returned.
func between(text, start, end string) string {
	i := strings.Index(text, start)
	if i < 0 {
		return ""
	}
	rest := text[i+len(start):]
	if j := strings.Index(rest, end); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}

// splitTerms breaks a free-text section into individual terms on commas,
// semicolons and " and ".
func splitTerms(text string) []string {
	text = strings.ReplaceAll(text, " and ", ",")
	text = strings.ReplaceAll(text, ";", ",")
	var out []string
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), "."))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// extractMBTI pulls the first 4-letter MBTI code out of a section, e.g.
// "I am an INTJ." -> "INTJ".
func extractMBTI(text string) string {
	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, ".,!?;:()")
		if len(word) != 4 {
			continue
		}
		upper := strings.ToUpper(word)
		if upper != word {
			continue
		}
		if strings.ContainsAny(upper[:1], "EI") &&
			strings.ContainsAny(upper[1:2], "SN") &&
			strings.ContainsAny(upper[2:3], "TF") &&
			strings.ContainsAny(upper[3:], "JP") {
			return upper
		}
	}
	return ""
}
