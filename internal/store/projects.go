// internal/store/projects.go
package store

import (
	"context"
	"database/sql"
	"errors"

	apperrors "freelance-match/internal/common/errors"
	"freelance-match/internal/models"
)

// ProjectStore looks up projects scoped to their owning user.
type ProjectStore struct {
	db *sql.DB
}

func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// GetOwnedBy returns the project only when actorID owns it. Absent and
// not-owned are the same PROJECT_NOT_FOUND to the caller.
func (s *ProjectStore) GetOwnedBy(ctx context.Context, projectID, actorID string) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, status, user_id
		FROM projects
		WHERE id = $1 AND user_id = $2`, projectID, actorID)

	var p models.Project
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewProjectNotFoundError(projectID)
	}
	if err != nil {
		return nil, apperrors.NewStoreFailedError(err)
	}
	return &p, nil
}
