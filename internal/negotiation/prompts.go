package negotiation

import (
	"fmt"
	"strings"

	"github.com/owlconnect/matching-platform/internal/model"
)

// mentorSystem builds the mentor agent's persona prompt. The mentor
// pitches what it can concretely offer and must stay inside its stated
// profession.
func mentorSystem(mentor *model.MentorProfile, mentee *model.MenteeProfile) string {
	return fmt.Sprintf(
		"You are %s, a mentor with %d years of experience in %s.\n"+
			"You're talking to %s, a mentee interested in %s.\n"+
			"Their goals include: %s\n\n"+
			"Guidelines: Be professional but personable. Be specific about what "+
			"you can offer, propose concrete meeting slots from your availability "+
			"(%s), and avoid repetition. Do not claim expertise outside your "+
			"profession, and do not overstate your capabilities.",
		mentor.Name, mentor.ExperienceYears, joinOr(mentor.Skills, "your field"),
		mentee.Name, joinOr(mentee.Interests(), "finding a mentor"),
		joinOr(mentee.CareerGoals, "growing professionally"),
		joinOr(mentor.Availability, "to be agreed"),
	)
}

// menteeSystem builds the mentee agent's persona prompt. The mentee is
// deliberately selective: it probes fit and must explicitly accept or
// decline rather than drift.
func menteeSystem(mentee *model.MenteeProfile, mentor *model.MentorProfile) string {
	return fmt.Sprintf(
		"You are %s, a student with skills in %s.\n"+
			"You're available on %s and talking to %s, a potential mentor with "+
			"expertise in %s.\n"+
			"Your goals: %s\n\n"+
			"Guidelines: Be clear about what you hope to learn, ask specific "+
			"questions, and weigh fit critically. You are looking for the best "+
			"possible mentor, so do not be agreeable by default. Once you have "+
			"probed fit for a few turns, explicitly state either that you want "+
			"to work with this mentor or that you do not.",
		mentee.Name, joinOr(mentee.Skills, "your studies"),
		joinOr(mentee.Availability, "a flexible schedule"),
		mentor.Name, joinOr(mentor.Skills, "their field"),
		joinOr(mentee.CareerGoals, "finding direction"),
	)
}

// openingPrompt starts the conversation from the mentor's side.
func openingPrompt() string {
	return "Start the mentorship conversation.\n" +
		"- Briefly introduce yourself (1 sentence)\n" +
		"- Mention 1-2 specific ways you can help\n" +
		"- Propose a concrete meeting slot from your availability\n" +
		"Keep it to 2-3 sentences and stay strictly within your profile."
}

// continuationPrompt carries the last few utterances as context and asks
// for the next turn.
func continuationPrompt(dialogue []model.Utterance) string {
	recent := dialogue
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	lines := make([]string, 0, len(recent))
	for _, u := range recent {
		lines = append(lines, u.Text)
	}
	return fmt.Sprintf(
		"Continue the conversation considering:\n%s\n\n"+
			"Guidelines:\n"+
			"1) Acknowledge the last message specifically\n"+
			"2) Discuss mentor/mentee compatibility and concrete terms\n"+
			"3) At most 3 sentences\n"+
			"4) Avoid repetition",
		strings.Join(lines, "\n"),
	)
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
