// internal/models/freelancer_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillTags(t *testing.T) {
	tests := []struct {
		name     string
		skills   string
		expected []string
	}{
		{
			name:     "comma separated",
			skills:   "react,nextjs,typescript",
			expected: []string{"react", "nextjs", "typescript"},
		},
		{
			name:     "mixed delimiters and casing",
			skills:   "React; Next.js  TypeScript",
			expected: []string{"react", "nextjs", "typescript"},
		},
		{
			name:     "duplicates keep first occurrence",
			skills:   "go,GO,Go,postgres",
			expected: []string{"go", "postgres"},
		},
		{
			name:     "empty string",
			skills:   "",
			expected: []string{},
		},
		{
			name:     "only delimiters",
			skills:   " ,;, ",
			expected: []string{},
		},
		{
			name:     "punctuation stripped inside tags",
			skills:   "node.js,c++",
			expected: []string{"nodejs", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Freelancer{Skills: tt.skills}
			assert.Equal(t, tt.expected, f.SkillTags())
		})
	}
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "nextjs", NormalizeToken("Next.js"))
	assert.Equal(t, "  react  ", NormalizeToken("  ReAcT!  "))
	assert.Equal(t, "build a nextjs app", NormalizeToken("Build a Next.js app!"))
	assert.Equal(t, "", NormalizeToken("!!!"))
}
