package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	httpRequestsTotal.Reset()
	httpRequestDuration.Reset()
	httpRequestsInFlight.Set(0)

	handlerCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rr := httptest.NewRecorder()

	Metrics(next).ServeHTTP(rr, req)

	if !handlerCalled {
		t.Fatalf("next handler was not invoked")
	}

	if got := testutil.ToFloat64(httpRequestsInFlight); got != 0 {
		t.Fatalf("expected in-flight gauge to return to 0, got %v", got)
	}

	counter := httpRequestsTotal.WithLabelValues(http.MethodPost, "/health", strconv.Itoa(http.StatusCreated))
	if got := testutil.ToFloat64(counter); got != 1 {
		t.Fatalf("expected counter to be 1, got %v", got)
	}
}

func TestMetricsMiddlewareLabelsByRoutePattern(t *testing.T) {
	httpRequestsTotal.Reset()
	httpRequestDuration.Reset()

	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/api/v1/accounts/{id}/balance", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/acc-123/balance?company=co-1", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/accounts/{id}/balance", strconv.Itoa(http.StatusOK))
	if got := testutil.ToFloat64(counter); got != 1 {
		t.Fatalf("expected route-pattern label, got %v", got)
	}
}

func TestRoutePatternFallsBackToRawPath(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/no/such/route", nil)

	if got := routePattern(req); got != "/no/such/route" {
		t.Fatalf("expected raw path fallback, got %q", got)
	}
}
