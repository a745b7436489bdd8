// internal/store/recommendations.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	apperrors "freelance-match/internal/common/errors"
	"freelance-match/internal/models"

	"github.com/google/uuid"
)

// RecommendationStore persists ranked results keyed by (project, freelancer).
type RecommendationStore struct {
	db *sql.DB
}

func NewRecommendationStore(db *sql.DB) *RecommendationStore {
	return &RecommendationStore{db: db}
}

// UpsertBatch writes one ranking run inside a single transaction. A conflict
// on (project_id, freelancer_id) refreshes score and rationale but leaves the
// shortlisted flag alone.
func (s *RecommendationStore) UpsertBatch(ctx context.Context, projectID string, ranked []models.Ranked) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStoreFailedError(fmt.Errorf("begin upsert: %w", err))
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO recommendations (id, project_id, freelancer_id, score, rationale)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (project_id, freelancer_id)
		DO UPDATE SET score = EXCLUDED.score, rationale = EXCLUDED.rationale, updated_at = now()`)
	if err != nil {
		return apperrors.NewStoreFailedError(fmt.Errorf("prepare upsert: %w", err))
	}
	defer stmt.Close()

	for _, r := range ranked {
		if _, err := stmt.ExecContext(ctx, uuid.NewString(), projectID, r.Freelancer.ID, r.Score, r.Rationale); err != nil {
			return apperrors.NewStoreFailedError(fmt.Errorf("upsert recommendation %s: %w", r.Freelancer.ID, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewStoreFailedError(fmt.Errorf("commit upsert: %w", err))
	}
	return nil
}

// ListByProject returns stored recommendations joined with freelancer
// profiles, best score first, freelancer id breaking ties.
func (s *RecommendationStore) ListByProject(ctx context.Context, projectID string) ([]models.StoredRecommendation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.project_id, r.freelancer_id, r.score, r.rationale, r.shortlisted,
		       r.created_at, r.updated_at,
		       f.id, f.name, f.bio, f.skills, f.hourly_rate, f.rating, f.availability, f.location
		FROM recommendations r
		JOIN freelancers f ON f.id = r.freelancer_id
		WHERE r.project_id = $1
		ORDER BY r.score DESC, r.freelancer_id ASC`, projectID)
	if err != nil {
		return nil, apperrors.NewStoreFailedError(fmt.Errorf("list recommendations: %w", err))
	}
	defer rows.Close()

	var out []models.StoredRecommendation
	for rows.Next() {
		var rec models.StoredRecommendation
		var rating sql.NullFloat64
		if err := rows.Scan(
			&rec.ID, &rec.ProjectID, &rec.FreelancerID, &rec.Score, &rec.Rationale, &rec.Shortlisted,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.Freelancer.ID, &rec.Freelancer.Name, &rec.Freelancer.Bio, &rec.Freelancer.Skills,
			&rec.Freelancer.HourlyRate, &rating, &rec.Freelancer.Availability, &rec.Freelancer.Location,
		); err != nil {
			return nil, apperrors.NewStoreFailedError(fmt.Errorf("scan recommendation: %w", err))
		}
		if rating.Valid {
			r := rating.Float64
			rec.Freelancer.Rating = &r
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreFailedError(fmt.Errorf("list recommendations: %w", err))
	}
	return out, nil
}

// SetShortlisted flips the shortlist flag, creating a placeholder row when no
// recommendation exists yet for the pair.
func (s *RecommendationStore) SetShortlisted(ctx context.Context, projectID, freelancerID string, shortlisted bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recommendations (id, project_id, freelancer_id, score, rationale, shortlisted)
		VALUES ($1, $2, $3, 0, '', $4)
		ON CONFLICT (project_id, freelancer_id)
		DO UPDATE SET shortlisted = EXCLUDED.shortlisted, updated_at = now()`,
		uuid.NewString(), projectID, freelancerID, shortlisted)
	if err != nil {
		return apperrors.NewStoreFailedError(fmt.Errorf("set shortlisted: %w", err))
	}
	return nil
}
