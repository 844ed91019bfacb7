package usage

import domusage "github.com/kailas-cloud/hrsearch/internal/domain/usage"

// BudgetReporter snapshots token consumption for a period.
type BudgetReporter interface {
	Report(p domusage.Period) domusage.Report
}
