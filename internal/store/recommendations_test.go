// internal/store/recommendations_test.go
package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	apperrors "freelance-match/internal/common/errors"
	"freelance-match/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankedFixture() []models.Ranked {
	rating := 4.8
	return []models.Ranked{
		{Freelancer: models.Freelancer{ID: "f1", Rating: &rating}, Score: 0.92, Rationale: "Strong frontend match."},
		{Freelancer: models.Freelancer{ID: "f2"}, Score: 0.4, Rationale: "Good skills fit and strong rating."},
	}
}

// ==========================
// Upsert Tests
// ==========================

func TestRecommendationStore_UpsertBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO recommendations"))
	prep.ExpectExec().
		WithArgs(sqlmock.AnyArg(), "proj-1", "f1", 0.92, "Strong frontend match.").
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs(sqlmock.AnyArg(), "proj-1", "f2", 0.4, "Good skills fit and strong rating.").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := NewRecommendationStore(db)
	err = s.UpsertBatch(context.Background(), "proj-1", rankedFixture())

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecommendationStore_UpsertBatch_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO recommendations"))
	prep.ExpectExec().
		WithArgs(sqlmock.AnyArg(), "proj-1", "f1", 0.92, "Strong frontend match.").
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs(sqlmock.AnyArg(), "proj-1", "f2", 0.4, "Good skills fit and strong rating.").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	s := NewRecommendationStore(db)
	err = s.UpsertBatch(context.Background(), "proj-1", rankedFixture())

	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStoreFailed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecommendationStore_UpsertBatch_PreservesShortlistColumn(t *testing.T) {
	// The conflict clause must only touch score, rationale and updated_at.
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta("DO UPDATE SET score = EXCLUDED.score, rationale = EXCLUDED.rationale, updated_at = now()"))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := NewRecommendationStore(db)
	err = s.UpsertBatch(context.Background(), "proj-1", rankedFixture()[:1])

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Read Tests
// ==========================

func TestRecommendationStore_ListByProject(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	columns := []string{
		"id", "project_id", "freelancer_id", "score", "rationale", "shortlisted",
		"created_at", "updated_at",
		"f_id", "f_name", "f_bio", "f_skills", "f_hourly_rate", "f_rating", "f_availability", "f_location",
	}
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY r.score DESC, r.freelancer_id ASC")).
		WithArgs("proj-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("rec-1", "proj-1", "f1", 0.92, "Strong frontend match.", true,
				now, now, "f1", "Asha", "Frontend dev", "react,nextjs", 65.0, 4.8, "full-time", "Remote").
			AddRow("rec-2", "proj-1", "f2", 0.4, "Good skills fit and strong rating.", false,
				now, now, "f2", "Marco", "Data scientist", "python,ml", 80.0, nil, "part-time", "Madrid"))

	s := NewRecommendationStore(db)
	recs, err := s.ListByProject(context.Background(), "proj-1")

	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "f1", recs[0].FreelancerID)
	assert.True(t, recs[0].Shortlisted)
	assert.Equal(t, "Asha", recs[0].Freelancer.Name)
	assert.Nil(t, recs[1].Freelancer.Rating)
}

func TestRecommendationStore_ListByProject_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM recommendations")).
		WithArgs("proj-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	s := NewRecommendationStore(db)
	recs, err := s.ListByProject(context.Background(), "proj-1")

	require.NoError(t, err)
	assert.Empty(t, recs)
}

// ==========================
// Shortlist Tests
// ==========================

func TestRecommendationStore_SetShortlisted(t *testing.T) {
	tests := []struct {
		name        string
		shortlisted bool
	}{
		{name: "shortlist on", shortlisted: true},
		{name: "shortlist off", shortlisted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(regexp.QuoteMeta("DO UPDATE SET shortlisted = EXCLUDED.shortlisted")).
				WithArgs(sqlmock.AnyArg(), "proj-1", "f1", tt.shortlisted).
				WillReturnResult(sqlmock.NewResult(0, 1))

			s := NewRecommendationStore(db)
			err = s.SetShortlisted(context.Background(), "proj-1", "f1", tt.shortlisted)

			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRecommendationStore_SetShortlisted_StoreError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recommendations")).
		WillReturnError(assert.AnError)

	s := NewRecommendationStore(db)
	err = s.SetShortlisted(context.Background(), "proj-1", "f1", true)

	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStoreFailed))
}
