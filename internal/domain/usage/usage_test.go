package usage

import "testing"

func TestNewReport(t *testing.T) {
	r := NewReport(PeriodMonth, 1700000000, 1702600000, 384200, 1000000, 615800)

	if r.Period() != PeriodMonth {
		t.Errorf("Period() = %q", r.Period())
	}
	if r.PeriodStart() != 1700000000 || r.PeriodEnd() != 1702600000 {
		t.Errorf("period bounds = %d..%d", r.PeriodStart(), r.PeriodEnd())
	}
	if r.TokensUsed() != 384200 {
		t.Errorf("TokensUsed() = %d", r.TokensUsed())
	}
	if r.Exhausted() {
		t.Error("budget with remaining tokens must not be exhausted")
	}
}

func TestExhausted(t *testing.T) {
	tests := []struct {
		name             string
		limit, remaining int64
		want             bool
	}{
		{"unlimited", 0, -1, false},
		{"spent", 100, 0, true},
		{"left", 100, 1, false},
	}
	for _, tc := range tests {
		r := NewReport(PeriodDay, 0, 0, 0, tc.limit, tc.remaining)
		if got := r.Exhausted(); got != tc.want {
			t.Errorf("%s: Exhausted() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestPeriodIsValid(t *testing.T) {
	if !PeriodDay.IsValid() || !PeriodMonth.IsValid() {
		t.Error("day and month must be valid")
	}
	if Period("total").IsValid() {
		t.Error("total is not a supported period")
	}
}
