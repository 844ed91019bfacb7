package hrsearch

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors matched by APIError. Use errors.Is() to check.
var (
	ErrNotFound     = errors.New("hrsearch: employee not found")
	ErrUnauthorized = errors.New("hrsearch: unauthorized")
	ErrRateLimited  = errors.New("hrsearch: rate limited")
	ErrInvalid      = errors.New("hrsearch: invalid request")
	ErrServer       = errors.New("hrsearch: server error")
)

// APIError is a non-2xx response from the service.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hrsearch: %d %s: %s", e.Status, e.Code, e.Message)
}

// Is maps the status code onto the sentinel errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrRateLimited:
		return e.Status == http.StatusTooManyRequests
	case ErrInvalid:
		return e.Status == http.StatusBadRequest
	case ErrServer:
		return e.Status >= http.StatusInternalServerError
	}
	return false
}
