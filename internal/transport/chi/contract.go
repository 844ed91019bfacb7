package chi

import (
	"context"

	"github.com/kailas-cloud/hrsearch/internal/domain/ranking"
	domusage "github.com/kailas-cloud/hrsearch/internal/domain/usage"
	healthuc "github.com/kailas-cloud/hrsearch/internal/usecase/health"
	profileuc "github.com/kailas-cloud/hrsearch/internal/usecase/profile"
)

// Ranker runs a ranking pass.
type Ranker interface {
	Rank(ctx context.Context, raw string, limit int) ranking.Result
}

// ProfileVectors handles profile mutation notifications.
type ProfileVectors interface {
	RebuildByID(ctx context.Context, id int64) (profileuc.Outcome, error)
	Delete(ctx context.Context, id int64) error
	Reindex(ctx context.Context) (profileuc.ReindexStats, error)
}

// UsageReporter reports embedding token consumption.
type UsageReporter interface {
	GetReport(ctx context.Context, period domusage.Period) domusage.Report
}

// HealthChecker aggregates dependency checks.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
