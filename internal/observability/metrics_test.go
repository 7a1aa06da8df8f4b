package observability

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yungbote/yoshkaflow-backend/internal/domain/aggregates"
)

func TestObserveStoreOutcomes(t *testing.T) {
	m := NewMetrics()
	m.ObserveStore("users", "get", nil)
	m.ObserveStore("users", "get", aggregates.NotFound("users.get", "missing"))
	m.ObserveStore("users", "get", errors.New("plain"))

	if got := testutil.ToFloat64(m.storeOps.WithLabelValues("users", "get", "ok")); got != 1 {
		t.Fatalf("ok: got %v", got)
	}
	if got := testutil.ToFloat64(m.storeOps.WithLabelValues("users", "get", "not_found")); got != 1 {
		t.Fatalf("not_found: got %v", got)
	}
	if got := testutil.ToFloat64(m.storeOps.WithLabelValues("users", "get", "internal")); got != 1 {
		t.Fatalf("internal: got %v", got)
	}
}

func TestHandlerExposesAPIMetrics(t *testing.T) {
	m := NewMetrics()
	m.ApiInflightInc()
	m.ObserveAPI("GET", "users", "200", 20*time.Millisecond)
	m.ObserveAPIFailure("users", "not_found")
	m.ApiInflightDec()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	for _, want := range []string{
		`yoshkaflow_http_requests_total{method="GET",resource="users",status="200"} 1`,
		`yoshkaflow_http_request_failures_total{code="not_found",resource="users"} 1`,
		`yoshkaflow_http_requests_in_flight 0`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("missing %q in exposition", want)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "status", "200", time.Millisecond)
	m.ObserveAPIFailure("status", "internal")
	m.ObserveStore("users", "get", nil)
	m.ApiInflightInc()
	m.ApiInflightDec()
	if err := m.RegisterDB("main", nil); err != nil {
		t.Fatalf("RegisterDB: %v", err)
	}
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: %d", rec.Code)
	}
}
