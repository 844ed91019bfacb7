// Package profile maintains the per-employee profile vector cache.
package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/hrsearch/internal/domain"
	"github.com/kailas-cloud/hrsearch/internal/domain/employee"
	"github.com/kailas-cloud/hrsearch/internal/domain/profile"
	"github.com/kailas-cloud/hrsearch/internal/metrics"
)

const defaultMissConcurrency = 4

// Outcome is the result of a single rebuild.
type Outcome string

// Rebuild outcomes.
const (
	Rebuilt Outcome = "rebuilt"
	Skipped Outcome = "skipped"
	Failed  Outcome = "failed"
)

// ReindexStats counts reindex outcomes.
type ReindexStats struct {
	Rebuilt int
	Skipped int
	Failed  int
}

// Service resolves and rebuilds profile vectors.
type Service struct {
	vectors     VectorStore
	employees   EmployeeSource
	embed       Embedder
	norm        Normalizer
	trunc       *Truncator
	concurrency int
	now         func() time.Time
	logger      *zap.Logger
}

// New creates the profile vector service. concurrency bounds parallel
// embedding of cache misses (default 4). trunc may be nil.
func New(
	vectors VectorStore, employees EmployeeSource, embed Embedder, norm Normalizer,
	trunc *Truncator, concurrency int, logger *zap.Logger,
) *Service {
	if concurrency <= 0 {
		concurrency = defaultMissConcurrency
	}
	return &Service{
		vectors:     vectors,
		employees:   employees,
		embed:       embed,
		norm:        norm,
		trunc:       trunc,
		concurrency: concurrency,
		now:         time.Now,
		logger:      logger,
	}
}

// SourceText builds, truncates and normalizes the text an employee's vector is computed from.
func (s *Service) SourceText(e *employee.Employee) string {
	return s.norm.Normalize(s.trunc.Truncate(BuildText(e)))
}

// Resolve returns a vector for every employee. Stored vectors are used as-is;
// misses are embedded and persisted. An employee whose vector cannot be
// produced maps to an empty vector. Never fails.
func (s *Service) Resolve(ctx context.Context, emps []employee.Employee) map[int64][]float32 {
	ctx, span := otel.Tracer("usecase.profile").Start(ctx, "Resolve")
	defer span.End()

	out := make(map[int64][]float32, len(emps))
	if len(emps) == 0 {
		return out
	}

	ids := make([]int64, len(emps))
	for i := range emps {
		ids[i] = emps[i].ID
	}

	stored, err := s.vectors.GetMany(ctx, ids)
	if err != nil {
		// Without the store every miss would be re-embedded on each search.
		s.logger.Warn("Profile vector store unavailable, semantic scores disabled", zap.Error(err))
		span.RecordError(err)
		for _, id := range ids {
			out[id] = nil
		}
		return out
	}

	misses := make([]*employee.Employee, 0)
	for i := range emps {
		if v, ok := stored[emps[i].ID]; ok {
			out[emps[i].ID] = v.Embedding()
			continue
		}
		misses = append(misses, &emps[i])
	}
	metrics.ProfileVectorLookupsTotal.WithLabelValues("hit").Add(float64(len(emps) - len(misses)))
	metrics.ProfileVectorLookupsTotal.WithLabelValues("miss").Add(float64(len(misses)))
	span.SetAttributes(
		attribute.Int("employees", len(emps)),
		attribute.Int("misses", len(misses)),
	)

	vecs := make([][]float32, len(misses))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, e := range misses {
		g.Go(func() error {
			v, err := s.compute(ctx, e, nil)
			if err != nil {
				s.logger.Warn("Profile vector unavailable",
					zap.Int64("employee_id", e.ID),
					zap.Error(err),
				)
				return nil
			}
			vecs[i] = v.Embedding()
			return nil
		})
	}
	_ = g.Wait()

	for i, e := range misses {
		out[e.ID] = vecs[i]
	}
	return out
}

// compute embeds e's profile text and upserts the vector. prev, when set,
// keeps its creation time.
func (s *Service) compute(ctx context.Context, e *employee.Employee, prev *profile.Vector) (profile.Vector, error) {
	text := s.SourceText(e)
	if text == "" {
		return profile.Vector{}, fmt.Errorf("employee %d: empty profile text", e.ID)
	}

	res, err := s.embed.Embed(ctx, text)
	if err != nil {
		return profile.Vector{}, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	if len(res.Embedding) == 0 {
		return profile.Vector{}, fmt.Errorf("%w: empty vector", domain.ErrEmbeddingUnavailable)
	}

	var v profile.Vector
	if prev != nil {
		v = prev.Refreshed(res.Embedding, text, s.now())
	} else {
		v = profile.New(e.ID, res.Embedding, text, s.now())
	}
	if err := s.vectors.Upsert(ctx, v); err != nil {
		// The vector is still usable for this call.
		s.logger.Warn("Failed to persist profile vector",
			zap.Int64("employee_id", e.ID),
			zap.Error(err),
		)
	}
	return v, nil
}

// Rebuild recomputes e's vector after a profile mutation. The embedding call
// is skipped when the stored vector was built from the same text.
// Best-effort: failures are logged and reported as Failed, never returned.
func (s *Service) Rebuild(ctx context.Context, e *employee.Employee) Outcome {
	outcome := s.rebuild(ctx, e)
	metrics.ProfileVectorRebuildsTotal.WithLabelValues(string(outcome)).Inc()
	return outcome
}

func (s *Service) rebuild(ctx context.Context, e *employee.Employee) Outcome {
	if !e.Rankable() {
		return Skipped
	}

	var prev *profile.Vector
	cur, err := s.vectors.Get(ctx, e.ID)
	switch {
	case err == nil:
		if !cur.Stale(s.SourceText(e)) {
			return Skipped
		}
		prev = &cur
	case errors.Is(err, domain.ErrProfileVectorNotFound):
	default:
		s.logger.Warn("Failed to read profile vector before rebuild",
			zap.Int64("employee_id", e.ID),
			zap.Error(err),
		)
	}

	if _, err := s.compute(ctx, e, prev); err != nil {
		s.logger.Warn("Profile vector rebuild failed",
			zap.Int64("employee_id", e.ID),
			zap.Error(err),
		)
		return Failed
	}
	return Rebuilt
}

// RebuildByID loads the employee and rebuilds its vector.
// Only a failed load is returned as an error.
func (s *Service) RebuildByID(ctx context.Context, id int64) (Outcome, error) {
	e, err := s.employees.ByID(ctx, id)
	if err != nil {
		return Failed, fmt.Errorf("load employee %d: %w", id, err)
	}
	return s.Rebuild(ctx, &e), nil
}

// Delete drops the employee's vector. Deleting a missing vector is not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.vectors.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete profile vector %d: %w", id, err)
	}
	return nil
}

// Reindex rebuilds every rankable employee sequentially.
func (s *Service) Reindex(ctx context.Context) (ReindexStats, error) {
	emps, err := s.employees.ListRankable(ctx)
	if err != nil {
		return ReindexStats{}, fmt.Errorf("list employees: %w", err)
	}

	var st ReindexStats
	for i := range emps {
		if err := ctx.Err(); err != nil {
			return st, fmt.Errorf("reindex interrupted: %w", err)
		}
		switch s.Rebuild(ctx, &emps[i]) {
		case Rebuilt:
			st.Rebuilt++
		case Skipped:
			st.Skipped++
		case Failed:
			st.Failed++
		}
	}
	s.logger.Info("Profile vectors reindexed",
		zap.Int("rebuilt", st.Rebuilt),
		zap.Int("skipped", st.Skipped),
		zap.Int("failed", st.Failed),
	)
	return st, nil
}
