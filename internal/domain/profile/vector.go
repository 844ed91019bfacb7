// Package profile holds cached per-employee profile vectors.
package profile

import "time"

// Vector is the embedding of an employee's normalized profile text.
// It is trusted only while SourceText equals a fresh build of the profile text.
type Vector struct {
	employeeID int64
	embedding  []float32
	sourceText string
	createdAt  time.Time
	updatedAt  time.Time
}

// New creates a vector stamped with now as both creation and update time.
func New(employeeID int64, embedding []float32, sourceText string, now time.Time) Vector {
	return Vector{
		employeeID: employeeID,
		embedding:  embedding,
		sourceText: sourceText,
		createdAt:  now,
		updatedAt:  now,
	}
}

// Reconstruct creates a Vector without validation (storage hydration).
func Reconstruct(employeeID int64, embedding []float32, sourceText string, createdAt, updatedAt time.Time) Vector {
	return Vector{
		employeeID: employeeID,
		embedding:  embedding,
		sourceText: sourceText,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Refreshed returns a copy carrying a new embedding and source text,
// keeping the original creation time.
func (v Vector) Refreshed(embedding []float32, sourceText string, now time.Time) Vector {
	return Vector{
		employeeID: v.employeeID,
		embedding:  embedding,
		sourceText: sourceText,
		createdAt:  v.createdAt,
		updatedAt:  now,
	}
}

// EmployeeID returns the owning employee id.
func (v Vector) EmployeeID() int64 { return v.employeeID }

// Embedding returns the vector values.
func (v Vector) Embedding() []float32 { return v.embedding }

// SourceText returns the normalized text the vector was computed from.
func (v Vector) SourceText() string { return v.sourceText }

// CreatedAt returns the first computation time.
func (v Vector) CreatedAt() time.Time { return v.createdAt }

// UpdatedAt returns the last recomputation time.
func (v Vector) UpdatedAt() time.Time { return v.updatedAt }

// Stale reports whether the vector no longer matches freshText.
func (v Vector) Stale(freshText string) bool { return v.sourceText != freshText }
