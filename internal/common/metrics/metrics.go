// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RankingRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_runs_total",
			Help: "Total number of ranking runs by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	RankingRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "ranking_run_duration_seconds",
			Help: "Duration of ranking runs in seconds",
		},
		[]string{"operation"},
	)

	RerankFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rerank_fallbacks_total",
			Help: "Ranking runs that fell back to lexical-only scoring",
		},
		[]string{"reason"},
	)

	RecommendationsWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_written_total",
			Help: "Total number of recommendation rows upserted",
		},
	)
)
