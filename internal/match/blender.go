// internal/match/blender.go
package match

import (
	"sort"

	"freelance-match/internal/models"
	"freelance-match/internal/rerank"
)

// FallbackRationale is attached whenever a candidate has no external
// opinion, either because the capability was down or because the reply
// omitted the candidate.
const FallbackRationale = "Good skills fit and strong rating."

// BlendConfig sets the share of the external score in the final blend.
type BlendConfig struct {
	RerankWeight float64
}

// DefaultBlendConfig is the historical 50/50 merge.
func DefaultBlendConfig() BlendConfig {
	return BlendConfig{RerankWeight: 0.5}
}

// Blend merges lexical scores with external judgments. A nil or partial
// judgment map is fine: candidates without an entry keep their lexical
// score and get the generic rationale. The result is re-sorted by final
// score; ties keep the pre-blend order.
func Blend(candidates []models.Candidate, judgments map[string]rerank.Judgment, cfg BlendConfig) []models.Ranked {
	ranked := make([]models.Ranked, 0, len(candidates))
	for _, cand := range candidates {
		r := models.Ranked{
			Freelancer: cand.Freelancer,
			Score:      cand.Score,
			Rationale:  FallbackRationale,
		}
		if j, ok := judgments[cand.Freelancer.ID]; ok {
			r.Score = (1-cfg.RerankWeight)*cand.Score + cfg.RerankWeight*clamp01(j.Score)
			r.Rationale = j.Rationale
		}
		ranked = append(ranked, r)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
