// Package negotiation runs bounded-round simulated dialogues between a
// mentee agent and mentor agents, tracking per-candidate compatibility.
package negotiation

import (
	"strings"

	"github.com/owlconnect/matching-platform/internal/model"
	"github.com/owlconnect/matching-platform/internal/selector"
)

// Score band constants. A candidate at or above StrongMatchScore converges
// quickly; one below rejectBelowScore is declined once the agents have had
// a chance to probe fit.
const (
	StrongMatchScore = 85.0
	rejectBelowScore = 35.0

	enthusiasmStep = 3.0
	maxScore       = 100.0
)

// BaseAlignment computes the deterministic starting compatibility score
// (0..100) from profile alignment: interpersonal fit (interests + MBTI)
// weighted 40%, professional fit (skills, goals, mentorship topics)
// weighted 60%, with availability overlap folded into both.
func BaseAlignment(mentee *model.MenteeProfile, mentor *model.MentorProfile) float64 {
	interests := selector.TermOverlap(mentee.Hobbies, mentor.Interests)
	mbti := selector.MBTISimilarity(mentee.MBTI, mentor.MBTI)
	interpersonal := 0.7*interests + 0.3*mbti

	goals := append(append([]string{}, mentee.CareerGoals...), mentee.Major)
	expertise := append(append([]string{}, mentor.Skills...), mentor.MentorshipTopics...)
	skillFit := selector.TermOverlap(mentee.Skills, mentor.Skills)
	goalFit := selector.TermOverlap(goals, expertise)
	professional := 0.5*goalFit + 0.5*skillFit

	avail := selector.AvailabilityOverlap(mentee.Availability, mentor.Availability)

	score := (0.4*interpersonal + 0.6*professional) * 80
	score += avail * 20
	return clamp(score)
}

// Positive and negative enthusiasm cues recognized in generated
// utterances. The delta is deliberately small: profile alignment, not
// model phrasing, dominates the score.
var (
	positiveCues = []string{
		"excited", "great fit", "perfect", "love to", "that works",
		"looking forward", "sounds good", "happy to",
	}
	negativeCues = []string{
		"not sure", "unfortunately", "concern", "outside my",
		"not a good fit", "hesitant", "doubt",
	}
)

// EnthusiasmDelta scores the reciprocal-enthusiasm signal of one
// utterance.
func EnthusiasmDelta(text string) float64 {
	low := strings.ToLower(text)
	delta := 0.0
	for _, cue := range positiveCues {
		if strings.Contains(low, cue) {
			delta += enthusiasmStep
			break
		}
	}
	for _, cue := range negativeCues {
		if strings.Contains(low, cue) {
			delta -= enthusiasmStep
			break
		}
	}
	return delta
}

// Agreement phrases an agent uses to explicitly accept the mentorship.
var agreementCues = []string{
	"i want to work with",
	"i'd love to work with",
	"let's work together",
	"i accept",
	"works for me",
	"works perfectly",
	"i'm in",
}

// Decline phrases an agent uses to explicitly end the negotiation.
var declineCues = []string{
	"not interested",
	"i decline",
	"won't work",
	"do not want to work with",
	"don't want to work with",
	"not the right mentor",
	"look elsewhere",
}

// IsAgreement reports whether an utterance explicitly accepts.
func IsAgreement(text string) bool {
	return containsAny(text, agreementCues)
}

// IsDecline reports whether an utterance explicitly declines.
func IsDecline(text string) bool {
	return containsAny(text, declineCues)
}

func containsAny(text string, cues []string) bool {
	low := strings.ToLower(text)
	for _, cue := range cues {
		if strings.Contains(low, cue) {
			return true
		}
	}
	return false
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
