package metrics

import "github.com/prometheus/client_golang/prometheus"

// ProfileEventsTotal counts consumed profile mutation events.
var ProfileEventsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_events_total",
		Help:      "Profile mutation events by type and result",
	},
	[]string{"type", "result"}, // result: "ok" / "error" / "malformed"
)

var eventMetricsRegistered bool

// RegisterEventMetrics registers event consumer metrics. Must be called once from main.
func RegisterEventMetrics() {
	if eventMetricsRegistered {
		return
	}
	prometheus.MustRegister(ProfileEventsTotal)
	eventMetricsRegistered = true
}
