// internal/models/recommendation.go
package models

import "time"

// Recommendation is a derived, recomputable fact keyed by the
// (project, freelancer) pair. Re-running the engine overwrites score and
// rationale; the shortlisted flag belongs to the human curator and is only
// touched through an explicit toggle.
type Recommendation struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"projectId"`
	FreelancerID string    `json:"freelancerId"`
	Score        float64   `json:"score"`
	Rationale    string    `json:"rationale"`
	Shortlisted  bool      `json:"shortlisted"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// StoredRecommendation is a recommendation joined with the matched
// freelancer's profile, as served by read endpoints.
type StoredRecommendation struct {
	Recommendation
	Freelancer Freelancer `json:"freelancer"`
}
