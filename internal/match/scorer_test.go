// internal/match/scorer_test.go
package match

import (
	"math"
	"testing"

	"freelance-match/internal/models"

	"github.com/stretchr/testify/assert"
)

func ratingOf(v float64) *float64 {
	return &v
}

// ==========================
// Lexical Scoring Tests
// ==========================

func TestLexicalScore(t *testing.T) {
	cfg := DefaultScorerConfig()

	tests := []struct {
		name        string
		description string
		tags        []string
		rating      *float64
		expected    float64
	}{
		{
			name:        "all tags hit with high rating",
			description: "Build a Next.js app with a React component library",
			tags:        []string{"react", "nextjs"},
			rating:      ratingOf(4.8),
			expected:    0.6*1.0 + 0.4*(4.8/5.0),
		},
		{
			name:        "no tags hit falls back to rating share",
			description: "Build a Next.js app with a React component library",
			tags:        []string{"python", "ml"},
			rating:      ratingOf(4.5),
			expected:    0.4 * (4.5 / 5.0),
		},
		{
			name:        "empty tag set scores only the rating share",
			description: "Anything at all",
			tags:        nil,
			rating:      ratingOf(3.0),
			expected:    0.4 * (3.0 / 5.0),
		},
		{
			name:        "nil rating uses the neutral prior",
			description: "Unrelated description",
			tags:        []string{"go"},
			rating:      nil,
			expected:    0.4 * (4.0 / 5.0),
		},
		{
			name:        "partial hits scale by hit fraction",
			description: "Need a react developer",
			tags:        []string{"react", "vue", "angular", "svelte"},
			rating:      ratingOf(5.0),
			expected:    0.6*0.25 + 0.4*1.0,
		},
		{
			name:        "punctuated skill names still match",
			description: "Migrate our site to Next.js",
			tags:        []string{"nextjs"},
			rating:      ratingOf(5.0),
			expected:    0.6*1.0 + 0.4*1.0,
		},
		{
			name:        "empty description scores rating only",
			description: "",
			tags:        []string{"react"},
			rating:      ratingOf(4.0),
			expected:    0.4 * 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LexicalScore(tt.description, tt.tags, tt.rating, cfg)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestLexicalScore_AlwaysInUnitRange(t *testing.T) {
	cfg := DefaultScorerConfig()

	descriptions := []string{"", "react react react", "totally unrelated text"}
	ratings := []*float64{nil, ratingOf(0), ratingOf(2.5), ratingOf(5), ratingOf(7)}

	for _, d := range descriptions {
		for _, r := range ratings {
			got := LexicalScore(d, []string{"react", "go"}, r, cfg)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
			assert.False(t, math.IsNaN(got))
		}
	}
}

func TestLexicalScore_Deterministic(t *testing.T) {
	cfg := DefaultScorerConfig()
	f := models.Freelancer{Skills: "react, nextjs ,typescript"}

	first := LexicalScore("Build a Next.js app", f.SkillTags(), ratingOf(4.8), cfg)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, LexicalScore("Build a Next.js app", f.SkillTags(), ratingOf(4.8), cfg))
	}
}
