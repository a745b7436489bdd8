// internal/api/handlers.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"freelance-match/internal/engine"
	"freelance-match/internal/models"
)

// Ranker is the slice of the engine the HTTP layer needs.
type Ranker interface {
	RunAndPersist(ctx context.Context, actorID, projectID string) (int, error)
	FetchPersisted(ctx context.Context, actorID, projectID string) ([]models.StoredRecommendation, error)
	QueryEphemeral(ctx context.Context, prompt string) (*engine.EphemeralResult, error)
	SetShortlisted(ctx context.Context, actorID, projectID, freelancerID string, shortlisted bool) error
}

type ProjectsHandler struct {
	Engine Ranker
}

// Match runs the ranking pipeline for POST /api/projects/{id}/match.
func (h ProjectsHandler) Match(w http.ResponseWriter, r *http.Request, projectID string) {
	written, err := h.Engine.RunAndPersist(r.Context(), ActorIDFrom(r.Context()), projectID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "recommendations": written})
}

// Recommendations serves GET /api/projects/{id}/recommendations.
func (h ProjectsHandler) Recommendations(w http.ResponseWriter, r *http.Request, projectID string) {
	recs, err := h.Engine.FetchPersisted(r.Context(), ActorIDFrom(r.Context()), projectID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if recs == nil {
		recs = []models.StoredRecommendation{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
}

type shortlistRequest struct {
	Shortlisted bool `json:"shortlisted"`
}

// Shortlist serves PUT /api/projects/{id}/recommendations/{freelancerId}/shortlist.
func (h ProjectsHandler) Shortlist(w http.ResponseWriter, r *http.Request, projectID, freelancerID string) {
	var req shortlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if err := h.Engine.SetShortlisted(r.Context(), ActorIDFrom(r.Context()), projectID, freelancerID, req.Shortlisted); err != nil {
		writeAppError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "shortlisted": req.Shortlisted})
}

// ByPath dispatches the /api/projects/ subtree. Expected shapes:
//
//	POST /api/projects/{id}/match
//	GET  /api/projects/{id}/recommendations
//	PUT  /api/projects/{id}/recommendations/{freelancerId}/shortlist
func (h ProjectsHandler) ByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/projects/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	switch {
	case len(parts) == 2 && parts[1] == "match":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.Match(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "recommendations":
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.Recommendations(w, r, parts[0])
	case len(parts) == 4 && parts[1] == "recommendations" && parts[3] == "shortlist":
		if r.Method != http.MethodPut {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.Shortlist(w, r, parts[0], parts[2])
	default:
		http.NotFound(w, r)
	}
}

type MatchHandler struct {
	Engine Ranker
}

type queryRequest struct {
	Prompt string `json:"prompt"`
}

// Query serves POST /api/match/query, an ephemeral ranking with clarifying
// questions and no persistence.
func (h MatchHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	res, err := h.Engine.QueryEphemeral(r.Context(), req.Prompt)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if res.Results == nil {
		res.Results = []models.Ranked{}
	}
	WriteJSON(w, http.StatusOK, res)
}

type HealthHandler struct{}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}
