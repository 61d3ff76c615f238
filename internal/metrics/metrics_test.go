package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/interviews/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/interviews/{id}", "418"))
	req := httptest.NewRequest(http.MethodGet, "/api/interviews/abc", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/interviews/{id}", "418"))
	if after-before != 1 {
		t.Fatalf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(evaluations.WithLabelValues("structured"))
	RecordEvaluation("structured")
	if got := testutil.ToFloat64(evaluations.WithLabelValues("structured")); got-before != 1 {
		t.Fatalf("expected evaluation counter increment, got %v", got-before)
	}

	beforeSwept := testutil.ToFloat64(staleTranscriptions)
	RecordStaleSwept(3)
	if got := testutil.ToFloat64(staleTranscriptions); got-beforeSwept != 3 {
		t.Fatalf("expected swept counter to add 3, got %v", got-beforeSwept)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordInterviewCreated()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "interviewai_interviews_created_total") {
		t.Fatal("expected interview counter in exposition")
	}
}
