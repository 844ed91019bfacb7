package ranking

import (
	"context"

	"github.com/kailas-cloud/hrsearch/internal/domain"
	"github.com/kailas-cloud/hrsearch/internal/domain/employee"
	"github.com/kailas-cloud/hrsearch/internal/domain/query"
)

// Interpreter turns a raw query into structured metadata.
type Interpreter interface {
	Interpret(ctx context.Context, raw string) (query.Parsed, error)
}

// CandidateSource loads rankable employees with skills attached.
type CandidateSource interface {
	ListRankable(ctx context.Context) ([]employee.Employee, error)
}

// VectorResolver maps employees to their profile vectors. Never fails.
type VectorResolver interface {
	Resolve(ctx context.Context, emps []employee.Employee) map[int64][]float32
}

// Embedder embeds the normalized query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Normalizer turns free text into the canonical bag of words.
type Normalizer interface {
	Normalize(text string) string
}
