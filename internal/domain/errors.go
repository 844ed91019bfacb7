package domain

import "errors"

var (
	// ErrInterpretation signals that the completion service produced no extractable JSON.
	ErrInterpretation = errors.New("query interpretation failed")
	// ErrEmbeddingUnavailable signals that no vector could be produced for a text.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")
	// ErrEmployeeNotFound signals a missing employee.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrProfileVectorNotFound signals a missing cached profile vector.
	ErrProfileVectorNotFound = errors.New("profile vector not found")
	// ErrEmbeddingQuotaExceeded signals an exhausted embedding budget.
	ErrEmbeddingQuotaExceeded = errors.New("embedding quota exceeded")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrCompletionProviderError signals a completion provider failure.
	ErrCompletionProviderError = errors.New("completion provider error")
	// ErrInvalidQuery signals a malformed search request.
	ErrInvalidQuery = errors.New("invalid query")
)
