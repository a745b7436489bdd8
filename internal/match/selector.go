// internal/match/selector.go
package match

import (
	"sort"

	"freelance-match/internal/models"
)

// SelectCandidates scores every pool member and keeps the topK by lexical
// score, bounding the cost of the downstream external call. Ties keep the
// pool order so repeated runs over the same pool are reproducible.
func SelectCandidates(description string, pool []models.Freelancer, topK int, cfg ScorerConfig) []models.Candidate {
	if topK < 1 || len(pool) == 0 {
		return nil
	}

	candidates := make([]models.Candidate, 0, len(pool))
	for _, f := range pool {
		candidates = append(candidates, models.Candidate{
			Freelancer: f,
			Score:      LexicalScore(description, f.SkillTags(), f.Rating, cfg),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates
}
