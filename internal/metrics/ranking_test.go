package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegister_Idempotent(t *testing.T) {
	Register()
	Register()

	if !embMetricsRegistered || !completionMetricsRegistered || !rankingMetricsRegistered || !httpMetricsRegistered {
		t.Fatal("expected every metric group to be registered")
	}
}

func TestRankingPassesTotal_Labels(t *testing.T) {
	RankingPassesTotal.WithLabelValues("fallback", "interpretation_failed").Inc()

	got := testutil.ToFloat64(RankingPassesTotal.WithLabelValues("fallback", "interpretation_failed"))
	if got < 1 {
		t.Errorf("expected fallback pass counter >= 1, got %f", got)
	}
	if n := testutil.CollectAndCount(RankingPassesTotal); n < 1 {
		t.Errorf("expected at least one series, got %d", n)
	}
}
