// Package health aggregates dependency checks for the /health endpoint.
package health

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure. Search still answers, possibly in keyword mode.
	Degraded Status = "degraded"
	// Unhealthy indicates the employee store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names reported in Checks.
const (
	ComponentPostgres   = "postgres"
	ComponentRedis      = "redis"
	ComponentEmbedding  = "embedding"
	ComponentCompletion = "completion"
)

const checkTimeout = 3 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	postgres   Pinger
	redis      Pinger
	embedding  ProviderChecker
	completion ProviderChecker
}

// New creates a Service. Any dependency except postgres may be nil.
func New(postgres, redis Pinger, embedding, completion ProviderChecker) *Service {
	return &Service{postgres: postgres, redis: redis, embedding: embedding, completion: completion}
}

// Check runs all checks concurrently. Postgres failing makes the service
// unhealthy; anything else only degrades it.
func (s *Service) Check(ctx context.Context) Report {
	type probe struct {
		name string
		fn   func(context.Context) error
	}
	probes := []probe{{ComponentPostgres, s.postgres.Ping}}
	if s.redis != nil {
		probes = append(probes, probe{ComponentRedis, s.redis.Ping})
	}
	if s.embedding != nil {
		probes = append(probes, probe{ComponentEmbedding, s.embedding.HealthCheck})
	}
	if s.completion != nil {
		probes = append(probes, probe{ComponentCompletion, s.completion.HealthCheck})
	}

	results := make([]CheckResult, len(probes))
	var g errgroup.Group
	for i, p := range probes {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, checkTimeout)
			defer cancel()
			results[i] = CheckOK
			if err := p.fn(cctx); err != nil {
				results[i] = CheckError
			}
			return nil
		})
	}
	_ = g.Wait()

	checks := make(map[string]CheckResult, len(probes))
	status := Healthy
	for i, p := range probes {
		checks[p.name] = results[i]
		if results[i] == CheckError && status == Healthy {
			status = Degraded
		}
	}
	if checks[ComponentPostgres] == CheckError {
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}
