package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddleware_RecordsDurationAndCount(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/workers/recommend", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{}"))
	})

	req := httptest.NewRequest(http.MethodPost, "/workers/recommend", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/workers/recommend", "200"))
	if got < 1 {
		t.Errorf("expected http_requests_total >= 1, got %f", got)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
	if v := testutil.ToFloat64(httpRequestsInFlight); v != 0 {
		t.Errorf("expected no in-flight requests after completion, got %f", v)
	}
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/recommendations/{log_id}/click", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for _, id := range []string{"a", "b", "c"} {
		req := httptest.NewRequest(http.MethodPost, "/recommendations/"+id+"/click", http.NoBody)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/recommendations/{log_id}/click", "204"))
	if got < 3 {
		t.Errorf("expected 3 requests on the pattern series, got %f", got)
	}
}

func TestMetricsMiddleware_DifferentStatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/unavailable", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	tests := []struct {
		path   string
		status string
	}{
		{"/ok", "200"},
		{"/unavailable", "503"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, http.NoBody)
			r.ServeHTTP(httptest.NewRecorder(), req)

			got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", tc.path, tc.status))
			if got < 1 {
				t.Errorf("expected counter for %s/%s >= 1, got %f", tc.path, tc.status, got)
			}
		})
	}
}

func TestRoutePattern_NoRouteContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", http.NoBody)
	if got := routePattern(req); got != "unknown" {
		t.Errorf("expected unknown, got %q", got)
	}
}

func TestRegisterRecommendMetrics_Idempotent(t *testing.T) {
	RegisterRecommendMetrics()
	RegisterRecommendMetrics()
	if !recommendMetricsRegistered {
		t.Fatal("expected metrics to be registered")
	}
}
