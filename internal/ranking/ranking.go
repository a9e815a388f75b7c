// Package ranking derives the final mentor ordering from terminal
// negotiation outcomes.
package ranking

import (
	"sort"

	"github.com/owlconnect/matching-platform/internal/model"
)

// Rank produces the dense 1..K ranking over candidates whose negotiation
// reached Successful. Rejected and exhausted candidates are excluded
// entirely; non-terminal candidates are ignored, so incremental calls
// return the best-known ranking. Pure function: safe to call repeatedly,
// idempotent over unchanged input.
func Rank(states []model.NegotiationState) []model.RankedMentor {
	successful := make([]model.NegotiationState, 0, len(states))
	seen := make(map[string]bool, len(states))
	for _, st := range states {
		if st.Status != model.StatusSuccessful || seen[st.MentorID] {
			continue
		}
		seen[st.MentorID] = true
		successful = append(successful, st)
	}

	sort.SliceStable(successful, func(i, j int) bool {
		if successful[i].Score != successful[j].Score {
			return successful[i].Score > successful[j].Score
		}
		return successful[i].MentorID < successful[j].MentorID
	})

	ranked := make([]model.RankedMentor, 0, len(successful))
	for i, st := range successful {
		ranked = append(ranked, model.RankedMentor{
			MentorID: st.MentorID,
			Name:     st.MentorName,
			Score:    st.Score,
			Rank:     i + 1,
		})
	}
	return ranked
}
