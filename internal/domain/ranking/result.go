// Package ranking holds the outward shape of a ranking pass.
package ranking

import "github.com/kailas-cloud/hrsearch/internal/domain/query"

// Mode tags which path produced a result.
type Mode string

// Ranking modes.
const (
	// Primary is the full semantic + grade + overlap + reputation ranking.
	Primary Mode = "primary"
	// Fallback is keyword-only skill matching used when an upstream step failed.
	Fallback Mode = "fallback"
)

// Fallback reasons.
const (
	ReasonInterpretation = "interpretation_failed"
	ReasonEmbedding      = "query_embedding_unavailable"
	ReasonLoad           = "candidate_load_failed"
	ReasonPanic          = "unexpected_failure"
)

// Breakdown is the per-component score of a primary-path candidate.
type Breakdown struct {
	Semantic   float64
	Grade      float64
	Overlap    float64
	Reputation float64
}

// Candidate is one ranked employee. Primary and fallback produce the same shape;
// fallback fills the fixed indicator values and leaves Breakdown nil.
type Candidate struct {
	EmployeeID      int64
	FullName        string
	Position        string
	Department      string
	ExperienceYears int
	Skills          []string
	Level           int
	XPPoints        int

	// Score is the composite relevance (fallback: always 1.0).
	Score float64
	// SemanticScore repeats Breakdown.Semantic (fallback: 0.0).
	SemanticScore float64
	// SkillsMatch is 1.0 for every fallback hit; primary reports the overlap score.
	SkillsMatch float64

	Breakdown *Breakdown
}

// Result is the tagged outcome of one ranking pass. It is never an error:
// degraded answers are flagged through Mode and Reason. Reason is empty for a
// full-confidence primary answer.
type Result struct {
	SearchID   string
	Mode       Mode
	Reason     string
	Parsed     *query.Parsed
	Candidates []Candidate
}

// Degraded reports whether the answer is less than full confidence: either the
// fallback path produced it or the primary path ran without a query vector.
func (r *Result) Degraded() bool { return r.Mode == Fallback || r.Reason != "" }
