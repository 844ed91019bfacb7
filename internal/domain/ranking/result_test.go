package ranking

import "testing"

func TestResultDegraded(t *testing.T) {
	tests := []struct {
		name string
		r    Result
		want bool
	}{
		{"primary", Result{Mode: Primary}, false},
		{"primary without query vector", Result{Mode: Primary, Reason: ReasonEmbedding}, true},
		{"fallback", Result{Mode: Fallback, Reason: ReasonInterpretation}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Degraded(); got != tc.want {
				t.Errorf("Degraded() = %v, want %v", got, tc.want)
			}
		})
	}
}
