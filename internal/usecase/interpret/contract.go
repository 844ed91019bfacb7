package interpret

import (
	"context"

	"github.com/kailas-cloud/hrsearch/internal/domain"
	"github.com/kailas-cloud/hrsearch/internal/domain/query"
)

// Completer is the local interface for the completion provider.
type Completer interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (domain.CompletionResult, error)
}

// Normalizer turns free text into the canonical bag of words.
type Normalizer interface {
	Normalize(text string) string
}

// Cache keeps interpretations keyed by the exact raw query.
type Cache interface {
	Get(raw string) (query.Parsed, bool)
	Put(raw string, p query.Parsed)
}
