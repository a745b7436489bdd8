// internal/models/candidate.go
package models

// Candidate pairs a freelancer with its lexical score during a single
// ranking computation. Never persisted.
type Candidate struct {
	Freelancer Freelancer `json:"freelancer"`
	Score      float64    `json:"score"`
}

// Ranked is one blended pipeline result.
type Ranked struct {
	Freelancer Freelancer `json:"freelancer"`
	Score      float64    `json:"score"`
	Rationale  string     `json:"rationale"`
}
