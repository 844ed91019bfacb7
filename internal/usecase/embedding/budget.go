package embedding

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/hrsearch/internal/domain"
	"github.com/kailas-cloud/hrsearch/internal/domain/usage"
)

// BudgetAction defines behavior when the token budget is exhausted.
type BudgetAction string

// Budget actions.
const (
	BudgetActionWarn   BudgetAction = "warn"
	BudgetActionReject BudgetAction = "reject"
)

// BudgetStore persists counters across restarts. IncrBy must be safe to repeat.
type BudgetStore interface {
	IncrBy(ctx context.Context, key string, val int64) error
	Get(ctx context.Context, key string) (int64, error)
}

// window is the counter for one calendar period.
type window struct {
	period usage.Period
	limit  int64 // 0 = unlimited
	used   int64
	start  time.Time
}

func (w *window) bounds(now time.Time) (time.Time, time.Time) {
	if w.period == usage.PeriodDay {
		s := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return s, s.AddDate(0, 0, 1)
	}
	s := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return s, s.AddDate(0, 1, 0)
}

// roll zeroes the counter once now leaves the current period.
func (w *window) roll(now time.Time) {
	if s, _ := w.bounds(now); s.After(w.start) {
		w.start = s
		w.used = 0
	}
}

func (w *window) exhausted() bool { return w.limit > 0 && w.used >= w.limit }

func (w *window) remaining() int64 {
	if w.limit == 0 {
		return -1
	}
	return max(w.limit-w.used, 0)
}

// Budget tracks embedding tokens against daily and monthly caps.
// Check is in-memory; Record writes behind to the store when one is attached.
type Budget struct {
	mu       sync.Mutex
	day      window
	month    window
	action   BudgetAction
	provider string
	store    BudgetStore
	now      func() time.Time
	logger   *zap.Logger
}

// NewBudget creates a budget with the given caps (0 = unlimited).
func NewBudget(provider string, dailyLimit, monthlyLimit int64, action BudgetAction, logger *zap.Logger) *Budget {
	b := &Budget{
		day:      window{period: usage.PeriodDay, limit: dailyLimit},
		month:    window{period: usage.PeriodMonth, limit: monthlyLimit},
		action:   action,
		provider: provider,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger,
	}
	now := b.now()
	b.day.start, _ = b.day.bounds(now)
	b.month.start, _ = b.month.bounds(now)
	return b
}

// WithStore attaches persistence and seeds the counters from it.
func (b *Budget) WithStore(ctx context.Context, s BudgetStore) *Budget {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.store = s
	now := b.now()
	for _, w := range []*window{&b.day, &b.month} {
		val, err := s.Get(ctx, b.key(w.period, now))
		if err != nil {
			b.logger.Warn("Failed to load budget counter", zap.String("period", string(w.period)), zap.Error(err))
			continue
		}
		w.used = val
	}
	b.logger.Info("Budget loaded",
		zap.String("provider", b.provider),
		zap.Int64("day_used", b.day.used),
		zap.Int64("month_used", b.month.used),
	)
	return b
}

func (b *Budget) key(p usage.Period, t time.Time) string {
	layout := "2006-01"
	if p == usage.PeriodDay {
		layout = "2006-01-02"
	}
	return fmt.Sprintf("%sbudget:%s:%s:%s", domain.KeyPrefix, b.provider, p, t.Format(layout))
}

// Check reports whether a new request may spend tokens.
func (b *Budget) Check(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.day.roll(now)
	b.month.roll(now)

	if !b.day.exhausted() && !b.month.exhausted() {
		return nil
	}
	if b.action == BudgetActionReject {
		return domain.ErrEmbeddingQuotaExceeded
	}
	b.logger.Warn("Token budget exceeded",
		zap.String("provider", b.provider),
		zap.Int64("day_used", b.day.used),
		zap.Int64("day_limit", b.day.limit),
		zap.Int64("month_used", b.month.used),
		zap.Int64("month_limit", b.month.limit),
	)
	return nil
}

// Record adds spent tokens and persists them best-effort.
func (b *Budget) Record(tokens int64) {
	b.mu.Lock()
	now := b.now()
	b.day.roll(now)
	b.month.roll(now)
	b.day.used += tokens
	b.month.used += tokens
	s := b.store
	keys := []string{b.key(usage.PeriodDay, now), b.key(usage.PeriodMonth, now)}
	b.mu.Unlock()

	if s == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for _, k := range keys {
		if err := s.IncrBy(ctx, k, tokens); err != nil {
			b.logger.Warn("Failed to persist budget counter", zap.String("key", k), zap.Error(err))
		}
	}
}

// Remaining returns tokens left in the period (-1 = unlimited).
func (b *Budget) Remaining(p usage.Period) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	w := b.windowFor(p)
	w.roll(b.now())
	return w.remaining()
}

// Report snapshots the period's consumption.
func (b *Budget) Report(p usage.Period) usage.Report {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	w := b.windowFor(p)
	w.roll(now)
	start, end := w.bounds(now)
	return usage.NewReport(p, start.UnixMilli(), end.UnixMilli(), w.used, w.limit, w.remaining())
}

func (b *Budget) windowFor(p usage.Period) *window {
	if p == usage.PeriodDay {
		return &b.day
	}
	return &b.month
}
