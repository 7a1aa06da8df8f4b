package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/yoshkaflow-backend/internal/data/db"
	"github.com/yungbote/yoshkaflow-backend/internal/observability"
)

func testConfig() Config {
	return Config{
		Log:    LogConfig{Mode: "test", Level: "error", Redact: true},
		Server: ServerConfig{Port: 8080},
		Database: DatabaseConfig{Config: db.Config{
			Driver:       db.DriverSQLite,
			DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
			MaxOpenConns: 1,
			LogLevel:     "silent",
		}},
		Otel:        observability.OtelConfig{ServiceName: ServiceName, Version: Version},
		Metrics:     MetricsConfig{Enabled: true},
		AutoMigrate: true,
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func call(t *testing.T, a *App, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return out
}

func TestStatusEndpoint(t *testing.T) {
	a := newTestApp(t)
	rec := call(t, a, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	body := decode[map[string]any](t, rec)
	if body["status"] != "Online" || body["version"] != "1.0.0" || body["timestamp"] == "" {
		t.Fatalf("body: %v", body)
	}
	if rec := call(t, a, http.MethodGet, "/healthcheck", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthcheck: %d", rec.Code)
	}
}

func TestDeletingProductCascadesOverHTTP(t *testing.T) {
	a := newTestApp(t)

	rec := call(t, a, http.MethodPost, "/api/products", `{"name":"Widget"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create product: %d %s", rec.Code, rec.Body.String())
	}
	productID := int64(decode[map[string]any](t, rec)["product_id"].(float64))

	rec = call(t, a, http.MethodPost, "/api/research-tasks",
		`{"product_id":`+itoa(productID)+`,"category":"market","subtask":"pricing"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task: %d %s", rec.Code, rec.Body.String())
	}
	task := decode[map[string]any](t, rec)
	if task["status"] != "pending" {
		t.Fatalf("task status: %v", task["status"])
	}
	taskID := int64(task["task_id"].(float64))

	rec = call(t, a, http.MethodPost, "/api/metrics",
		`{"task_id":`+itoa(taskID)+`,"metric_name":"market_size","raw_data":{"region":"EU"}}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create metric: %d %s", rec.Code, rec.Body.String())
	}
	metricID := int64(decode[map[string]any](t, rec)["metric_id"].(float64))

	score := `{"metric_id":` + itoa(metricID) + `,"overall_confidence_score":0.8}`
	if rec = call(t, a, http.MethodPost, "/api/confidence-scores", score); rec.Code != http.StatusCreated {
		t.Fatalf("create score: %d %s", rec.Code, rec.Body.String())
	}
	if rec = call(t, a, http.MethodPost, "/api/confidence-scores", score); rec.Code != http.StatusBadRequest {
		t.Fatalf("second score: %d %s", rec.Code, rec.Body.String())
	}

	rec = call(t, a, http.MethodGet, "/api/metrics/search?field=raw_data&path=region&value=EU", "")
	if got := decode[[]map[string]any](t, rec); len(got) != 1 {
		t.Fatalf("search: %s", rec.Body.String())
	}
	rec = call(t, a, http.MethodGet, "/api/products/"+itoa(productID)+"/research-tasks", "")
	if got := decode[[]map[string]any](t, rec); len(got) != 1 {
		t.Fatalf("nested tasks: %s", rec.Body.String())
	}
	if rec = call(t, a, http.MethodGet, "/api/metrics/"+itoa(metricID)+"/confidence-score", ""); rec.Code != http.StatusOK {
		t.Fatalf("metric score: %d", rec.Code)
	}

	if rec = call(t, a, http.MethodDelete, "/api/products/"+itoa(productID), ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete product: %d %s", rec.Code, rec.Body.String())
	}

	for _, target := range []string{"/api/research-tasks", "/api/metrics", "/api/confidence-scores"} {
		rec = call(t, a, http.MethodGet, target, "")
		if strings.TrimSpace(rec.Body.String()) != "[]" {
			t.Fatalf("%s after cascade: %s", target, rec.Body.String())
		}
	}
	if rec = call(t, a, http.MethodGet, "/api/research-tasks/"+itoa(taskID), ""); rec.Code != http.StatusNotFound {
		t.Fatalf("task after cascade: %d", rec.Code)
	}
}

func TestErrorKindsMapToStatus(t *testing.T) {
	a := newTestApp(t)
	cases := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"missing user", http.MethodGet, "/api/users/404", "", http.StatusNotFound},
		{"update missing", http.MethodPut, "/api/users/404", `{"name":"a","email":"b"}`, http.StatusNotFound},
		{"blank name", http.MethodPost, "/api/users", `{"name":" ","email":"a@example.com"}`, http.StatusBadRequest},
		{"orphan task", http.MethodPost, "/api/research-tasks", `{"product_id":999,"category":"c","subtask":"s"}`, http.StatusConflict},
	}
	for _, tc := range cases {
		if rec := call(t, a, tc.method, tc.target, tc.body); rec.Code != tc.want {
			t.Fatalf("%s: got=%d want=%d (%s)", tc.name, rec.Code, tc.want, rec.Body.String())
		}
	}
}

func TestMetricsEndpointCountsStoreOperations(t *testing.T) {
	a := newTestApp(t)
	call(t, a, http.MethodGet, "/api/users/1", "")

	rec := call(t, a, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`yoshkaflow_store_operations_total{op="get",outcome="not_found",table="users"} 1`,
		`yoshkaflow_http_requests_total{method="GET",resource="users",status="404"} 1`,
		`yoshkaflow_http_request_failures_total{code="not_found",resource="users"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q", want)
		}
	}
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
