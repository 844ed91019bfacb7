// Package ranking orders employees against a free-text hiring query.
package ranking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/hrsearch/internal/domain/employee"
	"github.com/kailas-cloud/hrsearch/internal/domain/query"
	"github.com/kailas-cloud/hrsearch/internal/domain/ranking"
	"github.com/kailas-cloud/hrsearch/internal/metrics"
)

// MaxResults caps every ranking pass.
const MaxResults = 20

// Options tunes the engine.
type Options struct {
	Weights Weights
	Limit   int // default and upper bound for Rank; 0 = MaxResults
}

// Engine ranks employees. Rank never fails: any upstream failure degrades to
// keyword matching and is reported through the result's Mode and Reason.
type Engine struct {
	interp    Interpreter
	employees CandidateSource
	vectors   VectorResolver
	embed     Embedder
	norm      Normalizer
	opts      Options
	logger    *zap.Logger
}

// New creates the ranking engine. Zero weights fall back to DefaultWeights.
func New(
	interp Interpreter, employees CandidateSource, vectors VectorResolver,
	embed Embedder, norm Normalizer, opts Options, logger *zap.Logger,
) *Engine {
	if opts.Weights == (Weights{}) {
		opts.Weights = DefaultWeights()
	}
	if opts.Limit <= 0 || opts.Limit > MaxResults {
		opts.Limit = MaxResults
	}
	return &Engine{
		interp:    interp,
		employees: employees,
		vectors:   vectors,
		embed:     embed,
		norm:      norm,
		opts:      opts,
		logger:    logger,
	}
}

// Rank returns at most limit candidates for raw (limit <= 0 uses the configured default).
func (e *Engine) Rank(ctx context.Context, raw string, limit int) (res ranking.Result) {
	if limit <= 0 || limit > e.opts.Limit {
		limit = e.opts.Limit
	}
	start := time.Now()
	searchID := ulid.Make().String()

	ctx, span := otel.Tracer("usecase.ranking").Start(ctx, "Rank")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Ranking pass panicked",
				zap.String("search_id", searchID),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			res = e.fallback(ctx, searchID, raw, ranking.ReasonPanic, limit)
		}
		metrics.RankingPassesTotal.WithLabelValues(string(res.Mode), res.Reason).Inc()
		metrics.RankingDuration.WithLabelValues(string(res.Mode)).Observe(time.Since(start).Seconds())
		metrics.RankingCandidates.Observe(float64(len(res.Candidates)))
		span.SetAttributes(
			attribute.String("search_id", searchID),
			attribute.String("mode", string(res.Mode)),
			attribute.String("reason", res.Reason),
			attribute.Int("results", len(res.Candidates)),
		)
	}()

	return e.primary(ctx, searchID, raw, limit)
}

func (e *Engine) primary(ctx context.Context, searchID, raw string, limit int) ranking.Result {
	parsed, err := e.interp.Interpret(ctx, raw)
	if err != nil {
		e.logger.Warn("Query interpretation failed, falling back to keywords",
			zap.String("search_id", searchID),
			zap.Error(err),
		)
		return e.fallback(ctx, searchID, raw, ranking.ReasonInterpretation, limit)
	}

	emps, err := e.employees.ListRankable(ctx)
	if err != nil {
		e.logger.Warn("Candidate load failed",
			zap.String("search_id", searchID),
			zap.Error(err),
		)
		return ranking.Result{
			SearchID:   searchID,
			Mode:       ranking.Fallback,
			Reason:     ranking.ReasonLoad,
			Parsed:     &parsed,
			Candidates: []ranking.Candidate{},
		}
	}
	emps = employee.FilterRankable(emps)

	queryVec, vecs, embedErr := e.vectorsFor(ctx, parsed.NormalizedText, emps)

	res := ranking.Result{
		SearchID:   searchID,
		Mode:       ranking.Primary,
		Parsed:     &parsed,
		Candidates: e.score(emps, vecs, queryVec, &parsed, limit),
	}
	if embedErr != nil {
		e.logger.Warn("Query embedding unavailable, semantic scores are zero",
			zap.String("search_id", searchID),
			zap.Error(embedErr),
		)
		res.Reason = ranking.ReasonEmbedding
	}

	e.logger.Info("Ranking pass completed",
		zap.String("search_id", searchID),
		zap.Int("candidates", len(emps)),
		zap.Int("results", len(res.Candidates)),
		zap.Stringer("grade", parsed.Grade),
	)
	return res
}

// vectorsFor embeds the query and resolves profile vectors concurrently.
// Each task captures its own failure; neither aborts the other. A panic in
// either task is re-raised on the calling goroutine once both have finished.
func (e *Engine) vectorsFor(
	ctx context.Context, text string, emps []employee.Employee,
) ([]float32, map[int64][]float32, error) {
	var (
		queryVec []float32
		vecs     map[int64][]float32
		embedErr error
		g        errgroup.Group
		mu       sync.Mutex
		panicked any
	)
	capture := func() {
		if r := recover(); r != nil {
			mu.Lock()
			if panicked == nil {
				panicked = r
			}
			mu.Unlock()
		}
	}
	if text != "" {
		g.Go(func() error {
			defer capture()
			r, err := e.embed.Embed(ctx, text)
			if err != nil {
				embedErr = err
				return nil
			}
			queryVec = r.Embedding
			return nil
		})
	}
	g.Go(func() error {
		defer capture()
		vecs = e.vectors.Resolve(ctx, emps)
		return nil
	})
	_ = g.Wait()
	if panicked != nil {
		panic(panicked)
	}
	return queryVec, vecs, embedErr
}

func (e *Engine) score(
	emps []employee.Employee, vecs map[int64][]float32, queryVec []float32,
	parsed *query.Parsed, limit int,
) []ranking.Candidate {
	terms := make(map[string]struct{})
	for _, t := range parsed.Terms() {
		terms[t] = struct{}{}
	}

	out := make([]ranking.Candidate, len(emps))
	for i := range emps {
		emp := &emps[i]
		skills := make([]string, len(emp.Skills))
		for j, s := range emp.Skills {
			skills[j] = e.norm.Normalize(s.Name)
		}

		b := score(emp, skills, vecs[emp.ID], queryVec, parsed.Grade, terms)
		c := candidate(emp)
		c.Score = Composite(b, e.opts.Weights)
		c.SemanticScore = b.Semantic
		c.SkillsMatch = b.Overlap
		c.Breakdown = &b
		out[i] = c
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// fallback runs keyword matching. A failure here yields an empty result.
func (e *Engine) fallback(ctx context.Context, searchID, raw, reason string, limit int) (res ranking.Result) {
	res = ranking.Result{SearchID: searchID, Mode: ranking.Fallback, Reason: reason, Candidates: []ranking.Candidate{}}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Keyword fallback panicked",
				zap.String("search_id", searchID),
				zap.String("panic", fmt.Sprint(r)),
			)
			res.Candidates = []ranking.Candidate{}
		}
	}()

	emps, err := e.employees.ListRankable(ctx)
	if err != nil {
		e.logger.Warn("Keyword fallback could not load employees",
			zap.String("search_id", searchID),
			zap.Error(err),
		)
		return res
	}
	res.Candidates = keywordMatch(emps, keywords(raw), limit)
	return res
}
