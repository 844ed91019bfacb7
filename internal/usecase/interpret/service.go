// Package interpret turns a raw hiring query into skills, a target grade
// and normalized query text via one completion call.
package interpret

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hrsearch/internal/domain"
	"github.com/kailas-cloud/hrsearch/internal/domain/grade"
	"github.com/kailas-cloud/hrsearch/internal/domain/query"
	"github.com/kailas-cloud/hrsearch/internal/metrics"
)

const (
	defaultMaxTokens   = 500
	defaultTemperature = 0.3
)

// payload is what the model is asked to return.
type payload struct {
	Skills []string `json:"skills" validate:"required,max=64,dive,max=200"`
	Grade  string   `json:"grade" validate:"max=32"`
}

// Options tunes the completion call.
type Options struct {
	MaxTokens   int
	Temperature float32
}

// Service interprets raw queries.
type Service struct {
	completer Completer
	norm      Normalizer
	cache     Cache
	validate  *validator.Validate
	opts      Options
	logger    *zap.Logger
}

// New creates an interpreter. Zero options fall back to 500 tokens at temperature 0.3.
func New(c Completer, n Normalizer, cache Cache, opts Options, logger *zap.Logger) *Service {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.Temperature <= 0 {
		opts.Temperature = defaultTemperature
	}
	return &Service{
		completer: c,
		norm:      n,
		cache:     cache,
		validate:  validator.New(),
		opts:      opts,
		logger:    logger,
	}
}

// Interpret returns the structured form of raw. Any failure to obtain a
// usable JSON object from the model is reported as domain.ErrInterpretation.
func (s *Service) Interpret(ctx context.Context, raw string) (query.Parsed, error) {
	if p, ok := s.cache.Get(raw); ok {
		metrics.QueryCacheTotal.WithLabelValues("hit").Inc()
		return p, nil
	}
	metrics.QueryCacheTotal.WithLabelValues("miss").Inc()

	ctx, span := otel.Tracer("usecase.interpret").Start(ctx, "Interpret")
	defer span.End()

	start := time.Now()
	res, err := s.completer.Complete(ctx, buildRequest(raw, s.opts.MaxTokens, s.opts.Temperature))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return query.Parsed{}, fmt.Errorf("%w: %w", domain.ErrInterpretation, err)
	}
	domain.UsageFromContext(ctx).AddCompletionTokens(res.PromptTokens + res.CompletionTokens)

	pl, err := s.decode(res.Text)
	if err != nil {
		s.logger.Warn("Unusable interpretation response",
			zap.String("query", raw),
			zap.Int("response_len", len(res.Text)),
			zap.Error(err),
		)
		span.SetStatus(codes.Error, "unparseable response")
		return query.Parsed{}, fmt.Errorf("%w: %w", domain.ErrInterpretation, err)
	}

	p := s.build(raw, pl)
	s.cache.Put(raw, p)

	span.SetAttributes(
		attribute.Int("skills", len(p.Skills)),
		attribute.String("grade", p.Grade.String()),
	)
	s.logger.Debug("Query interpreted",
		zap.Strings("skills", p.Skills),
		zap.Stringer("grade", p.Grade),
		zap.Duration("duration", time.Since(start)),
	)
	return p, nil
}

func (s *Service) decode(text string) (payload, error) {
	obj, ok := firstObject(text)
	if !ok {
		return payload{}, errors.New("no JSON object in response")
	}
	var pl payload
	if err := json.Unmarshal([]byte(obj), &pl); err != nil {
		return payload{}, fmt.Errorf("decode response: %w", err)
	}
	if err := s.validate.Struct(pl); err != nil {
		return payload{}, fmt.Errorf("validate response: %w", err)
	}
	return pl, nil
}

func (s *Service) build(raw string, pl payload) query.Parsed {
	skills := make([]string, 0, len(pl.Skills))
	seen := make(map[string]struct{}, len(pl.Skills))
	for _, sk := range pl.Skills {
		sk = strings.TrimSpace(sk)
		key := strings.ToLower(sk)
		if sk == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		skills = append(skills, sk)
	}

	text := raw
	if len(skills) > 0 {
		text += " " + strings.Join(skills, " ")
	}
	return query.Parsed{
		Skills:         skills,
		Grade:          grade.Parse(pl.Grade),
		NormalizedText: s.norm.Normalize(text),
	}
}
