package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ranking and profile vector cache metrics.
var (
	RankingPassesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ranking_passes_total",
			Help:      "Ranking passes by mode and fallback reason",
		},
		[]string{"mode", "reason"},
	)

	RankingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ranking_duration_seconds",
			Help:      "End-to-end ranking pass duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"mode"},
	)

	RankingCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ranking_candidates",
			Help:      "Rankable employees considered per pass",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	ProfileVectorLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_vector_lookups_total",
			Help:      "Profile vector cache lookups by result",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	ProfileVectorRebuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_vector_rebuilds_total",
			Help:      "Profile vector rebuilds by outcome",
		},
		[]string{"status"}, // "rebuilt" / "skipped" / "failed"
	)
)

var rankingMetricsRegistered bool

// RegisterRankingMetrics registers ranking metrics. Must be called once from main.
func RegisterRankingMetrics() {
	if rankingMetricsRegistered {
		return
	}
	prometheus.MustRegister(RankingPassesTotal)
	prometheus.MustRegister(RankingDuration)
	prometheus.MustRegister(RankingCandidates)
	prometheus.MustRegister(ProfileVectorLookupsTotal)
	prometheus.MustRegister(ProfileVectorRebuildsTotal)
	rankingMetricsRegistered = true
}

// Register registers every service metric. Must be called once from main.
func Register() {
	RegisterEmbeddingMetrics()
	RegisterCompletionMetrics()
	RegisterRankingMetrics()
	RegisterHTTPMetrics()
	RegisterEventMetrics()
}
