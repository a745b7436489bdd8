// cmd/matcher/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"freelance-match/internal/api"
	"freelance-match/internal/common/config"
	"freelance-match/internal/common/database"
	"freelance-match/internal/common/logger"
	"freelance-match/internal/common/observability"
	"freelance-match/internal/engine"
	"freelance-match/internal/match"
	"freelance-match/internal/rerank"
	"freelance-match/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting matching engine...")

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis (optional pool cache) ---
	var poolCache *redis.Client
	if cfg.Database.Redis.Enabled {
		var redisClient *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		poolCache = redisClient.GetClient()
		zapLog.Info("Redis connected successfully")
	} else {
		zapLog.Info("Redis disabled, pool cache off")
	}

	// --- Stores ---
	freelancers := store.NewFreelancerStore(pg.DB, poolCache, config.GetDuration(cfg.Matching.PoolCacheTTL), log)
	projects := store.NewProjectStore(pg.DB)
	recommendations := store.NewRecommendationStore(pg.DB)

	// --- Reranker ---
	reranker := rerank.NewClient(rerank.Config{
		BaseURL:     cfg.APIs.OpenAI.BaseURL,
		APIKey:      cfg.APIs.OpenAI.APIKey,
		Model:       cfg.APIs.OpenAI.Model,
		Temperature: cfg.APIs.OpenAI.Temperature,
		Timeout:     config.GetDuration(cfg.APIs.OpenAI.Timeout),
	}, log)
	if !reranker.Available() {
		zapLog.Warn("no rerank API key configured, rankings stay lexical-only")
	}

	// --- Engine ---
	eng := engine.NewService(engine.Config{
		TopK:           cfg.Matching.TopK,
		MinPromptChars: cfg.Matching.MinPromptChars,
		Scorer: match.ScorerConfig{
			SkillWeight:   cfg.Matching.SkillWeight,
			RatingWeight:  cfg.Matching.RatingWeight,
			DefaultRating: cfg.Matching.DefaultRating,
		},
		Blend: match.BlendConfig{RerankWeight: cfg.Matching.RerankWeight},
	}, freelancers, projects, recommendations, reranker, log)

	// --- HTTP Server ---
	mux := http.NewServeMux()
	mux.Handle("/", api.Handler(eng, log))
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      mux,
		ReadTimeout:  config.GetDuration(cfg.HTTP.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.HTTP.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", cfg.HTTP.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.HTTP.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Matching engine stopped gracefully")
}
