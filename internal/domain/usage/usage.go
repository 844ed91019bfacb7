// Package usage describes AI token consumption against the configured budget.
package usage

// Period is the aggregation granularity.
type Period string

// Aggregation period constants.
const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
)

// IsValid checks the period is supported.
func (p Period) IsValid() bool { return p == PeriodDay || p == PeriodMonth }

// Report is an embedding token usage report for a period.
type Report struct {
	period          Period
	periodStart     int64
	periodEnd       int64
	tokensUsed      int64
	tokensLimit     int64
	tokensRemaining int64
}

// NewReport creates a usage report. A zero limit means unlimited;
// remaining is -1 in that case.
func NewReport(period Period, start, end, used, limit, remaining int64) Report {
	return Report{
		period:          period,
		periodStart:     start,
		periodEnd:       end,
		tokensUsed:      used,
		tokensLimit:     limit,
		tokensRemaining: remaining,
	}
}

// Period returns the aggregation granularity.
func (r Report) Period() Period { return r.period }

// PeriodStart returns the period start timestamp (unix millis).
func (r Report) PeriodStart() int64 { return r.periodStart }

// PeriodEnd returns the period end timestamp (unix millis); the budget resets then.
func (r Report) PeriodEnd() int64 { return r.periodEnd }

// TokensUsed returns tokens consumed in the period.
func (r Report) TokensUsed() int64 { return r.tokensUsed }

// TokensLimit returns the cap (0 = unlimited).
func (r Report) TokensLimit() int64 { return r.tokensLimit }

// TokensRemaining returns tokens left (-1 = unlimited).
func (r Report) TokensRemaining() int64 { return r.tokensRemaining }

// Exhausted reports whether a limited budget is spent.
func (r Report) Exhausted() bool { return r.tokensLimit > 0 && r.tokensRemaining <= 0 }
