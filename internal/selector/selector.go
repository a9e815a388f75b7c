// Package selector produces the initial candidate mentor shortlist for a
// mentee via coarse compatibility filtering. The returned order is a
// relevance hint only; final order is decided by negotiation.
package selector

import (
	"context"
	"sort"
	"strings"

	"github.com/owlconnect/matching-platform/internal/model"
)

// Directory is the read-only mentor lookup the selector filters.
type Directory interface {
	ListMentors(ctx context.Context) ([]model.MentorProfile, error)
}

// Candidate pairs a mentor with its coarse relevance score.
type Candidate struct {
	Mentor model.MentorProfile
	Score  float64
}

// Select filters the directory to mentors with non-trivial overlap with
// the mentee's interests, major and goals. If the directory is non-empty
// the result is never empty: when filtering removes everyone, all mentors
// are returned in coarse score order instead.
func Select(ctx context.Context, dir Directory, mentee *model.MenteeProfile) ([]Candidate, error) {
	mentors, err := dir.ListMentors(ctx)
	if err != nil {
		return nil, err
	}
	if len(mentors) == 0 {
		return nil, nil
	}

	scored := make([]Candidate, 0, len(mentors))
	for _, m := range mentors {
		scored = append(scored, Candidate{Mentor: m, Score: Relevance(mentee, &m)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Mentor.ID < scored[j].Mentor.ID
	})

	candidates := make([]Candidate, 0, len(scored))
	for _, c := range scored {
		if c.Score > 0 {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		// Coarse filtering is a hint, not a gate: a non-empty directory
		// always yields at least one candidate for negotiation.
		return scored, nil
	}
	return candidates, nil
}

// Relevance scores how well a mentor matches a mentee on a 0..1 scale.
// Weighted factors: skill/interest overlap 40%, mentorship topic overlap
// 30%, availability overlap 20%, MBTI similarity 10%.
func Relevance(mentee *model.MenteeProfile, mentor *model.MentorProfile) float64 {
	menteeTerms := append(append([]string{}, mentee.Interests()...), mentee.Skills...)
	mentorTerms := append(append([]string{}, mentor.Skills...), mentor.Interests...)
	mentorTerms = append(mentorTerms, mentor.Tools...)

	score := 0.4 * TermOverlap(menteeTerms, mentorTerms)
	score += 0.3 * TermOverlap(mentee.Interests(), mentor.MentorshipTopics)
	score += 0.2 * AvailabilityOverlap(mentee.Availability, mentor.Availability)
	score += 0.1 * MBTISimilarity(mentee.MBTI, mentor.MBTI)
	return score
}

// TermOverlap measures keyword overlap between two term lists on a 0..1
// scale: the fraction of terms in a whose keywords appear in b's text.
func TermOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	bText := strings.ToLower(strings.Join(b, " "))
	matched := 0
	counted := 0
	for _, term := range a {
		keywords := Keywords(term)
		if len(keywords) == 0 {
			continue
		}
		counted++
		for _, kw := range keywords {
			if strings.Contains(bText, kw) {
				matched++
				break
			}
		}
	}
	if counted == 0 {
		return 0
	}
	return float64(matched) / float64(counted)
}

// AvailabilityOverlap measures shared availability slots on a 0..1 scale.
// Slots match when they share a day token (e.g. "Tue") and overlap on any
// remaining token.
func AvailabilityOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	matched := 0
	for _, slotA := range a {
		for _, slotB := range b {
			if slotsOverlap(slotA, slotB) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(a))
}

func slotsOverlap(a, b string) bool {
	aw := strings.Fields(strings.ToLower(a))
	bw := strings.Fields(strings.ToLower(b))
	if len(aw) == 0 || len(bw) == 0 {
		return false
	}
	// Day tokens must agree (prefix match tolerates "Tue" vs "Tuesday").
	if !tokenPrefixMatch(aw[0], bw[0]) {
		return false
	}
	if len(aw) == 1 || len(bw) == 1 {
		return true
	}
	for _, t := range aw[1:] {
		for _, u := range bw[1:] {
			if tokenPrefixMatch(t, u) {
				return true
			}
		}
	}
	return false
}

func tokenPrefixMatch(a, b string) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	return len(a) >= 3 && strings.HasPrefix(b, a) || a == b
}

// MBTISimilarity scores two MBTI codes from 0 to 1 by shared letters.
func MBTISimilarity(a, b string) float64 {
	if len(a) != 4 || len(b) != 4 {
		return 0
	}
	a = strings.ToUpper(a)
	b = strings.ToUpper(b)
	shared := 0
	for i := 0; i < 4; i++ {
		if a[i] == b[i] {
			shared++
		}
	}
	return float64(shared) / 4.0
}

// Keywords extracts meaningful lowercase keywords from a term, dropping
// stop words and short tokens.
func Keywords(term string) []string {
	stopWords := map[string]bool{
		"the": true, "and": true, "for": true, "with": true,
		"about": true, "into": true, "working": true, "become": true,
	}
	var out []string
	for _, word := range strings.Fields(strings.ToLower(term)) {
		word = strings.Trim(word, ".,!?;:()")
		if len(word) > 3 && !stopWords[word] {
			out = append(out, word)
		}
	}
	return out
}
