// Package profilevec stores one profile vector per employee as a Redis hash.
package profilevec

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hrsearch/internal/domain"
	"github.com/kailas-cloud/hrsearch/internal/domain/profile"
)

var keyPrefix = domain.KeyPrefix + "profile_vector:"

// store is the consumer interface for profile vectors (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
}

// Repo implements the profile vector cache store.
type Repo struct {
	store  store
	logger *zap.Logger
}

// New creates a profile vector repository.
func New(s store, logger *zap.Logger) *Repo {
	return &Repo{store: s, logger: logger}
}

// Get loads the vector of one employee.
func (r *Repo) Get(ctx context.Context, employeeID int64) (profile.Vector, error) {
	m, err := r.store.HGetAll(ctx, key(employeeID))
	if err != nil {
		return profile.Vector{}, fmt.Errorf("get profile vector %d: %w", employeeID, err)
	}
	v, ok, err := fromHash(employeeID, m)
	if err != nil {
		return profile.Vector{}, fmt.Errorf("decode profile vector %d: %w", employeeID, err)
	}
	if !ok {
		return profile.Vector{}, domain.ErrProfileVectorNotFound
	}
	return v, nil
}

// GetMany loads vectors for ids in one round-trip. Absent ids are missing
// from the result. Undecodable entries are logged and treated as absent
// so they get recomputed.
func (r *Repo) GetMany(ctx context.Context, ids []int64) (map[int64]profile.Vector, error) {
	ctx, span := otel.Tracer("repo.profilevec").Start(ctx, "profilevec.GetMany")
	defer span.End()
	span.SetAttributes(attribute.Int("ids", len(ids)))

	if len(ids) == 0 {
		return map[int64]profile.Vector{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = key(id)
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("get profile vectors: %w", err)
	}

	out := make(map[int64]profile.Vector, len(ids))
	for i, m := range hashes {
		v, ok, err := fromHash(ids[i], m)
		if err != nil {
			r.logger.Warn("Corrupt profile vector, will recompute",
				zap.Int64("employee_id", ids[i]), zap.Error(err))
			continue
		}
		if ok {
			out[ids[i]] = v
		}
	}
	return out, nil
}

// Upsert writes the vector, replacing any previous one for the employee.
func (r *Repo) Upsert(ctx context.Context, v profile.Vector) error {
	if err := r.store.HSet(ctx, key(v.EmployeeID()), toHash(v)); err != nil {
		return fmt.Errorf("upsert profile vector %d: %w", v.EmployeeID(), err)
	}
	return nil
}

// Delete removes the vector of a deleted employee. Deleting an absent vector is not an error.
func (r *Repo) Delete(ctx context.Context, employeeID int64) error {
	if err := r.store.Del(ctx, key(employeeID)); err != nil {
		return fmt.Errorf("delete profile vector %d: %w", employeeID, err)
	}
	return nil
}

func key(employeeID int64) string {
	return keyPrefix + strconv.FormatInt(employeeID, 10)
}
