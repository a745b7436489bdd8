// internal/engine/service.go
package engine

import (
	"context"
	"strings"
	"time"

	apperrors "freelance-match/internal/common/errors"
	"freelance-match/internal/common/logger"
	"freelance-match/internal/common/metrics"
	"freelance-match/internal/match"
	"freelance-match/internal/models"
	"freelance-match/internal/rerank"

	"github.com/google/uuid"
)

// FreelancerSource serves the candidate pool.
type FreelancerSource interface {
	ListAll(ctx context.Context) ([]models.Freelancer, error)
}

// ProjectSource resolves projects scoped to their owner.
type ProjectSource interface {
	GetOwnedBy(ctx context.Context, projectID, actorID string) (*models.Project, error)
}

// RecommendationSink persists and reads back ranking results.
type RecommendationSink interface {
	UpsertBatch(ctx context.Context, projectID string, ranked []models.Ranked) error
	ListByProject(ctx context.Context, projectID string) ([]models.StoredRecommendation, error)
	SetShortlisted(ctx context.Context, projectID, freelancerID string, shortlisted bool) error
}

// Reranker asks an external judge to refine candidate scores.
type Reranker interface {
	Available() bool
	Rerank(ctx context.Context, description string, candidates []models.Candidate) (map[string]rerank.Judgment, error)
}

// ClarifyingQuestions accompany ephemeral query results so the caller can
// tighten a vague brief.
var ClarifyingQuestions = []string{
	"What is your target timeline and budget range?",
	"Do you prefer specific tech stack or tools?",
	"Is this a one-off project or ongoing engagement?",
}

// Config carries the tunables of one ranking pipeline.
type Config struct {
	TopK           int
	MinPromptChars int
	Scorer         match.ScorerConfig
	Blend          match.BlendConfig
}

func DefaultConfig() Config {
	return Config{
		TopK:           5,
		MinPromptChars: 10,
		Scorer:         match.DefaultScorerConfig(),
		Blend:          match.DefaultBlendConfig(),
	}
}

// Service runs the full pipeline: pool scan, lexical scoring, top-K cut,
// optional rerank, blend, persistence.
type Service struct {
	config      Config
	freelancers FreelancerSource
	projects    ProjectSource
	sink        RecommendationSink
	reranker    Reranker
	logger      logger.Logger
}

func NewService(cfg Config, freelancers FreelancerSource, projects ProjectSource, sink RecommendationSink, reranker Reranker, log logger.Logger) *Service {
	return &Service{
		config:      cfg,
		freelancers: freelancers,
		projects:    projects,
		sink:        sink,
		reranker:    reranker,
		logger:      log.WithFields(map[string]interface{}{"component": "engine"}),
	}
}

// EphemeralResult is a ranking computed from a raw prompt, never persisted.
type EphemeralResult struct {
	Results   []models.Ranked `json:"results"`
	Questions []string        `json:"questions"`
}

// RunAndPersist ranks the pool against the project's description and stores
// the outcome. Returns the number of recommendations written.
func (s *Service) RunAndPersist(ctx context.Context, actorID, projectID string) (int, error) {
	runID := uuid.NewString()
	log := s.logger.WithFields(map[string]interface{}{"run_id": runID, "project_id": projectID})
	start := time.Now()

	project, err := s.projects.GetOwnedBy(ctx, projectID, actorID)
	if err != nil {
		metrics.RankingRunsTotal.WithLabelValues("match", "error").Inc()
		return 0, err
	}

	ranked, err := s.rank(ctx, log, project.Description)
	if err != nil {
		metrics.RankingRunsTotal.WithLabelValues("match", "error").Inc()
		return 0, err
	}

	if err := s.sink.UpsertBatch(ctx, projectID, ranked); err != nil {
		metrics.RankingRunsTotal.WithLabelValues("match", "error").Inc()
		return 0, err
	}

	metrics.RankingRunsTotal.WithLabelValues("match", "success").Inc()
	metrics.RankingRunDuration.WithLabelValues("match").Observe(time.Since(start).Seconds())
	metrics.RecommendationsWritten.Add(float64(len(ranked)))
	log.Info("ranking run persisted", map[string]interface{}{
		"written":     len(ranked),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return len(ranked), nil
}

// FetchPersisted returns the stored recommendations for an owned project.
func (s *Service) FetchPersisted(ctx context.Context, actorID, projectID string) ([]models.StoredRecommendation, error) {
	if _, err := s.projects.GetOwnedBy(ctx, projectID, actorID); err != nil {
		return nil, err
	}
	return s.sink.ListByProject(ctx, projectID)
}

// QueryEphemeral ranks the pool against a free-form prompt without touching
// storage. Prompts shorter than the configured minimum are rejected before
// any pool or external access.
func (s *Service) QueryEphemeral(ctx context.Context, prompt string) (*EphemeralResult, error) {
	if len(strings.TrimSpace(prompt)) < s.config.MinPromptChars {
		return nil, apperrors.NewValidationError("prompt too short, describe the project in more detail")
	}

	runID := uuid.NewString()
	log := s.logger.WithFields(map[string]interface{}{"run_id": runID, "ephemeral": true})

	ranked, err := s.rank(ctx, log, prompt)
	if err != nil {
		metrics.RankingRunsTotal.WithLabelValues("query", "error").Inc()
		return nil, err
	}

	metrics.RankingRunsTotal.WithLabelValues("query", "success").Inc()
	return &EphemeralResult{Results: ranked, Questions: ClarifyingQuestions}, nil
}

// SetShortlisted toggles the curator flag on an owned project's pair.
func (s *Service) SetShortlisted(ctx context.Context, actorID, projectID, freelancerID string, shortlisted bool) error {
	if _, err := s.projects.GetOwnedBy(ctx, projectID, actorID); err != nil {
		return err
	}
	return s.sink.SetShortlisted(ctx, projectID, freelancerID, shortlisted)
}

// rank runs scoring, selection, rerank and blend against a description.
func (s *Service) rank(ctx context.Context, log logger.Logger, description string) ([]models.Ranked, error) {
	pool, err := s.freelancers.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewStoreFailedError(err)
	}

	candidates := match.SelectCandidates(description, pool, s.config.TopK, s.config.Scorer)
	if len(candidates) == 0 {
		log.Info("empty candidate pool", nil)
		return nil, nil
	}

	judgments := s.rerankOrFallback(ctx, log, description, candidates)
	return match.Blend(candidates, judgments, s.config.Blend), nil
}

// rerankOrFallback returns external judgments, or nil when the judge is
// unavailable or fails. The run itself never fails on the judge.
func (s *Service) rerankOrFallback(ctx context.Context, log logger.Logger, description string, candidates []models.Candidate) map[string]rerank.Judgment {
	if s.reranker == nil || !s.reranker.Available() {
		metrics.RerankFallbacksTotal.WithLabelValues("unavailable").Inc()
		log.Debug("reranker unavailable, keeping lexical scores", nil)
		return nil
	}

	judgments, err := s.reranker.Rerank(ctx, description, candidates)
	if err != nil {
		metrics.RerankFallbacksTotal.WithLabelValues("failed").Inc()
		log.WithError(err).Warn("rerank failed, keeping lexical scores", nil)
		return nil
	}
	return judgments
}
