// internal/store/freelancers.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"freelance-match/internal/common/logger"
	"freelance-match/internal/models"

	"github.com/redis/go-redis/v9"
)

const poolCacheKey = "freelancers:pool"

// FreelancerStore serves the full freelancer pool. The engine always scores
// the whole pool, so the snapshot is cached as one Redis value; any cache
// error falls through to Postgres silently.
type FreelancerStore struct {
	db       *sql.DB
	cache    *redis.Client // nil disables caching
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewFreelancerStore(db *sql.DB, cache *redis.Client, cacheTTL time.Duration, log logger.Logger) *FreelancerStore {
	return &FreelancerStore{
		db:       db,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log.WithFields(map[string]interface{}{"store": "freelancers"}),
	}
}

// ListAll returns every freelancer profile in listing order.
func (s *FreelancerStore) ListAll(ctx context.Context) ([]models.Freelancer, error) {
	if s.cache != nil {
		if val, err := s.cache.Get(ctx, poolCacheKey).Result(); err == nil {
			var pool []models.Freelancer
			if err := json.Unmarshal([]byte(val), &pool); err == nil {
				return pool, nil
			}
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, bio, skills, hourly_rate, rating, availability, location
		FROM freelancers
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list freelancers: %w", err)
	}
	defer rows.Close()

	var pool []models.Freelancer
	for rows.Next() {
		var f models.Freelancer
		var rating sql.NullFloat64
		if err := rows.Scan(&f.ID, &f.Name, &f.Bio, &f.Skills, &f.HourlyRate, &rating, &f.Availability, &f.Location); err != nil {
			return nil, fmt.Errorf("scan freelancer: %w", err)
		}
		if rating.Valid {
			r := rating.Float64
			f.Rating = &r
		}
		pool = append(pool, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list freelancers: %w", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(pool); err == nil {
			if err := s.cache.Set(ctx, poolCacheKey, data, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("pool cache write failed", map[string]interface{}{"error": err})
			}
		}
	}

	return pool, nil
}
