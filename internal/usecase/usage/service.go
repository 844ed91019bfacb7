// Package usage serves embedding token consumption reports.
package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/hrsearch/internal/domain/usage"
)

// Service handles usage reporting.
type Service struct {
	br  BudgetReporter
	now func() time.Time
}

// New creates a Service. br can be nil (no budget configured).
func New(br BudgetReporter) *Service {
	return &Service{br: br, now: func() time.Time { return time.Now().UTC() }}
}

// GetReport builds a usage report for the given period.
// Without a budget it reports zero usage and an unlimited remainder.
func (s *Service) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	if s.br != nil {
		return s.br.Report(period)
	}

	now := s.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	if period == domusage.PeriodDay {
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 0, 1)
	}
	return domusage.NewReport(period, start.UnixMilli(), end.UnixMilli(), 0, 0, -1)
}
