package profile

import (
	"context"

	"github.com/kailas-cloud/hrsearch/internal/domain"
	"github.com/kailas-cloud/hrsearch/internal/domain/employee"
	"github.com/kailas-cloud/hrsearch/internal/domain/profile"
)

// VectorStore persists one vector per employee.
type VectorStore interface {
	Get(ctx context.Context, employeeID int64) (profile.Vector, error)
	GetMany(ctx context.Context, ids []int64) (map[int64]profile.Vector, error)
	Upsert(ctx context.Context, v profile.Vector) error
	Delete(ctx context.Context, employeeID int64) error
}

// EmployeeSource loads employees for rebuilds.
type EmployeeSource interface {
	ByID(ctx context.Context, id int64) (employee.Employee, error)
	ListRankable(ctx context.Context) ([]employee.Employee, error)
}

// Embedder is the local interface for the profile embedding provider.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Normalizer turns free text into the canonical bag of words.
type Normalizer interface {
	Normalize(text string) string
}
