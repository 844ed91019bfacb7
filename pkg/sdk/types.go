package hrsearch

import "time"

// Mode tags which ranking path answered.
type Mode string

// Ranking modes.
const (
	ModePrimary  Mode = "primary"
	ModeFallback Mode = "fallback"
)

// SearchResult is one ranking pass.
type SearchResult struct {
	SearchID   string
	Mode       Mode
	Degraded   bool
	Reason     string // empty for a full-confidence primary answer
	Parsed     *ParsedQuery
	Candidates []Candidate
	// Token usage reported by the server for this request.
	EmbeddingTokens  int
	CompletionTokens int
}

// ParsedQuery is how the service understood the query.
type ParsedQuery struct {
	Skills          []string
	Grade           string
	NormalizedQuery string
}

// Candidate is one ranked employee.
type Candidate struct {
	ID              int64
	FullName        string
	Position        string
	Department      string
	ExperienceYears int
	Skills          []string
	Level           int
	XPPoints        int
	Score           float64
	SemanticScore   float64
	SkillsMatch     float64
	// Components is nil for fallback results.
	Components *ScoreComponents
}

// ScoreComponents is the per-signal breakdown of a primary result.
type ScoreComponents struct {
	Grade      float64
	Overlap    float64
	Reputation float64
}

// RebuildResult reports a single profile vector rebuild.
type RebuildResult struct {
	EmployeeID int64
	Status     string // "rebuilt", "skipped", "failed"
}

// ReindexStats summarizes a full rebuild.
type ReindexStats struct {
	Rebuilt int
	Skipped int
	Failed  int
}

// UsagePeriod is the aggregation granularity for usage reports.
type UsagePeriod string

// UsagePeriod constants.
const (
	PeriodDay   UsagePeriod = "day"
	PeriodMonth UsagePeriod = "month"
)

// UsageReport contains embedding token consumption for a period.
type UsageReport struct {
	Period          UsagePeriod
	PeriodStart     time.Time
	PeriodEnd       time.Time
	TokensUsed      int64
	TokensLimit     int64 // 0 = unlimited
	TokensRemaining int64 // -1 = unlimited
	IsExhausted     bool
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}
