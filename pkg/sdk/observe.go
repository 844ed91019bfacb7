package hrsearch

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type clientMetrics struct {
	calls    *prometheus.CounterVec
	attempts *prometheus.HistogramVec
	latency  *prometheus.HistogramVec
}

func newClientMetrics(reg prometheus.Registerer) (*clientMetrics, error) {
	m := &clientMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrsearch", Subsystem: "client",
			Name: "calls_total",
			Help: "API calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		attempts: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hrsearch", Subsystem: "client",
			Name:    "call_attempts",
			Help:    "HTTP attempts per API call, retries included.",
			Buckets: []float64{1, 2, 3, 5},
		}, []string{"operation"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hrsearch", Subsystem: "client",
			Name:    "call_duration_seconds",
			Help:    "API call latency, retries included.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.calls); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.attempts); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.latency); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse lets several clients share one registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("hrsearch: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("hrsearch: metric already registered with incompatible type: %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// outcome buckets err into a low-cardinality label.
func outcome(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.As(err, &apiErr):
		return strconv.Itoa(apiErr.Status/100) + "xx"
	case errors.Is(err, errDecode):
		return "decode"
	default:
		return "transport"
	}
}

// observer reports finished calls. A nil observer is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *clientMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newClientMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

func (o *observer) observe(op string, start time.Time, attempts int, err error) {
	if o == nil {
		return
	}
	took := time.Since(start)
	out := outcome(err)

	if o.metrics != nil {
		o.metrics.calls.WithLabelValues(op, out).Inc()
		o.metrics.attempts.WithLabelValues(op).Observe(float64(attempts))
		o.metrics.latency.WithLabelValues(op).Observe(took.Seconds())
	}

	if o.logger == nil {
		return
	}
	attrs := []any{"op", op, "outcome", out, "attempts", attempts, "duration", took}
	if err != nil {
		o.logger.Warn("hrsearch call failed", append(attrs, "error", err)...)
		return
	}
	o.logger.Debug("hrsearch call done", attrs...)
}
