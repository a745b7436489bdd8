// internal/models/freelancer.go
package models

import "strings"

// Freelancer is a profile row from the freelancer pool. Profile management
// owns these records; the matching engine only reads them.
type Freelancer struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Bio          string   `json:"bio"`
	Skills       string   `json:"skills"` // comma-delimited tags
	HourlyRate   float64  `json:"hourlyRate"`
	Rating       *float64 `json:"rating,omitempty"` // 0..5, nil when unrated
	Availability string   `json:"availability"`
	Location     string   `json:"location"`
}

// SkillTags splits the delimited skills string into normalized tags:
// lowercased, punctuation stripped, duplicates dropped, first-seen order kept.
func (f Freelancer) SkillTags() []string {
	raw := strings.FieldsFunc(f.Skills, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})

	seen := make(map[string]bool, len(raw))
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		tag := NormalizeToken(t)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// NormalizeToken lowercases s and strips everything that is not a letter,
// digit or space, so "Next.js" and "nextjs" compare equal.
func NormalizeToken(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
