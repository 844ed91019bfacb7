package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/search", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"mode":"primary"}`))
	})
	r.Post("/employees/{id}/profile-vector", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	r.Delete("/employees/{id}/profile-vector", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	return r
}

func serve(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, http.NoBody))
	return rr
}

func TestMiddleware_ImplicitOK(t *testing.T) {
	h := newTestRouter()
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/search", "200"))

	rr := serve(h, "GET", "/search")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/search", "200"))
	if after-before != 1 {
		t.Errorf("expected one new request, got %v", after-before)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected duration observations")
	}
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	h := newTestRouter()
	series := httpRequestsTotal.WithLabelValues("POST", "/employees/{id}/profile-vector", "202")
	before := testutil.ToFloat64(series)

	serve(h, "POST", "/employees/42/profile-vector")
	serve(h, "POST", "/employees/7/profile-vector")

	if got := testutil.ToFloat64(series) - before; got != 2 {
		t.Errorf("expected both ids on one series, got %v new requests", got)
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	h := newTestRouter()
	tests := []struct {
		method, path, route, status string
	}{
		{"DELETE", "/employees/42/profile-vector", "/employees/{id}/profile-vector", "204"},
		{"GET", "/health", "/health", "503"},
		{"GET", "/nope", unmatchedRoute, "404"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			serve(h, tc.method, tc.path)
			got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.route, tc.status))
			if got < 1 {
				t.Errorf("expected %s %s to count under %s/%s, got %v", tc.method, tc.path, tc.route, tc.status, got)
			}
		})
	}
}

func TestMiddleware_InFlightReturnsToZero(t *testing.T) {
	serve(newTestRouter(), "GET", "/search")
	if got := testutil.ToFloat64(httpInFlight); got != 0 {
		t.Errorf("in-flight = %v, want 0", got)
	}
}
