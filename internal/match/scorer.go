// internal/match/scorer.go
package match

import (
	"strings"

	"freelance-match/internal/models"
)

// ScorerConfig carries the lexical scoring weights and the neutral rating
// prior used for unrated freelancers.
type ScorerConfig struct {
	SkillWeight   float64
	RatingWeight  float64
	DefaultRating float64
}

// DefaultScorerConfig reproduces the product's historical weighting.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		SkillWeight:   0.6,
		RatingWeight:  0.4,
		DefaultRating: 4.0,
	}
}

// LexicalScore computes the deterministic 0..1 similarity between a project
// description and a freelancer's skill tags, blended with the reputation
// rating. Pure; an empty or non-matching tag set just contributes a zero
// hit fraction.
func LexicalScore(description string, tags []string, rating *float64, cfg ScorerConfig) float64 {
	// Substring match over the normalized description, same keyword-overlap
	// heuristic as the original product.
	text := models.NormalizeToken(description)

	hits := 0
	for _, tag := range tags {
		if tag != "" && strings.Contains(text, tag) {
			hits++
		}
	}

	denom := len(tags)
	if denom < 1 {
		denom = 1
	}
	hitFraction := float64(hits) / float64(denom)

	r := cfg.DefaultRating
	if rating != nil {
		r = *rating
	}
	ratingFraction := r / 5.0

	return clamp01(cfg.SkillWeight*hitFraction + cfg.RatingWeight*ratingFraction)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
