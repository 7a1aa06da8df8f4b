package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/yoshkaflow-backend/internal/domain"
	"github.com/yungbote/yoshkaflow-backend/internal/domain/aggregates"
	"github.com/yungbote/yoshkaflow-backend/internal/http/response"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

// memCRUD is an in-memory CRUD[T] keyed by whatever key/setKey expose.
type memCRUD[T any] struct {
	mu     sync.Mutex
	rows   map[int64]*T
	next   int64
	key    func(*T) int64
	setKey func(*T, int64)
}

func newMemCRUD[T any](key func(*T) int64, setKey func(*T, int64)) *memCRUD[T] {
	return &memCRUD[T]{rows: map[int64]*T{}, key: key, setKey: setKey}
}

func (m *memCRUD[T]) Get(_ context.Context, id int64) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.rows[id]
	if !ok {
		return nil, aggregates.NotFound("mem.get", "%d not found", id)
	}
	return rec, nil
}

func (m *memCRUD[T]) List(context.Context) ([]*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*T
	for i := int64(1); i <= m.next; i++ {
		if rec, ok := m.rows[i]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memCRUD[T]) Add(_ context.Context, rec *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.key(rec) != 0 {
		return aggregates.Validation("mem.add", "id is assigned by the store")
	}
	m.next++
	m.setKey(rec, m.next)
	m.rows[m.next] = rec
	return nil
}

func (m *memCRUD[T]) Update(_ context.Context, rec *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.key(rec)
	if _, ok := m.rows[id]; !ok {
		return aggregates.NotFound("mem.update", "%d not found", id)
	}
	m.rows[id] = rec
	return nil
}

func (m *memCRUD[T]) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return aggregates.NotFound("mem.delete", "%d not found", id)
	}
	delete(m.rows, id)
	return nil
}

type fakeMetrics struct {
	*memCRUD[types.Metric]
	lastField string
	lastValue any
	lastKeys  []string
}

func (f *fakeMetrics) ListByTaskID(context.Context, int64) ([]*types.Metric, error) { return nil, nil }

func (f *fakeMetrics) FindByRawData(_ context.Context, value any, keys ...string) ([]*types.Metric, error) {
	f.lastField, f.lastValue, f.lastKeys = "raw_data", value, keys
	return nil, nil
}

func (f *fakeMetrics) FindWithRawDataKey(_ context.Context, keys ...string) ([]*types.Metric, error) {
	f.lastField, f.lastValue, f.lastKeys = "raw_data_key", nil, keys
	return nil, nil
}

func (f *fakeMetrics) FindByPatternAnalysis(_ context.Context, value any, keys ...string) ([]*types.Metric, error) {
	f.lastField, f.lastValue, f.lastKeys = "pattern_analysis", value, keys
	return nil, nil
}

type pingerFunc func() error

func (f pingerFunc) Ping() error { return f() }

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env response.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v (%s)", err, rec.Body.String())
	}
	return env.Error.Code
}

func TestStatusReportsOnline(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	h := NewHealthHandler(nil)
	h.now = func() time.Time { return fixed }

	r := gin.New()
	r.GET("/", h.Status)
	rec := do(r, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d", rec.Code)
	}
	var body struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
		Version   string    `json:"version"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "Online" || body.Version != "1.0.0" || !body.Timestamp.Equal(fixed) {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestHealthCheckReflectsStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name string
		ping error
		want int
	}{
		{"up", nil, http.StatusOK},
		{"down", errors.New("connection refused"), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := gin.New()
			r.GET("/healthcheck", NewHealthHandler(pingerFunc(func() error { return tc.ping })).HealthCheck)
			if rec := do(r, http.MethodGet, "/healthcheck", ""); rec.Code != tc.want {
				t.Fatalf("status: got=%d want=%d", rec.Code, tc.want)
			}
		})
	}
}

func newUserRouter() (*gin.Engine, *memCRUD[types.User]) {
	gin.SetMode(gin.TestMode)
	svc := newMemCRUD(func(u *types.User) int64 { return u.ID }, func(u *types.User, id int64) { u.ID = id })
	h := NewResource[types.User](logger.Nop(), "users", svc, func(u *types.User, id int64) { u.ID = id })
	r := gin.New()
	h.Register(r.Group("/api/users"))
	return r, svc
}

func TestResourceLifecycle(t *testing.T) {
	r, _ := newUserRouter()

	rec := do(r, http.MethodGet, "/api/users", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("empty list: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(r, http.MethodPost, "/api/users", `{"name":"Ada","email":"ada@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	var created types.User
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	if created.ID != 1 || created.Name != "Ada" {
		t.Fatalf("created: %+v", created)
	}

	// a client-supplied id on create is ignored
	rec = do(r, http.MethodPost, "/api/users", `{"id":4242,"name":"Bob","email":"bob@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create with id: %d %s", rec.Code, rec.Body.String())
	}
	var second types.User
	_ = json.Unmarshal(rec.Body.Bytes(), &second)
	if second.ID != 2 {
		t.Fatalf("create with id: got id=%d want 2", second.ID)
	}
	if rec = do(r, http.MethodGet, "/api/users/4242", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("client id must not be stored: %d", rec.Code)
	}

	// the path id wins over whatever the body carries
	rec = do(r, http.MethodPut, "/api/users/1", `{"id":99,"name":"Ada L","email":"ada@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(r, http.MethodGet, "/api/users/1", "")
	var got types.User
	_ = json.Unmarshal(rec.Body.Bytes(), &got)
	if got.ID != 1 || got.Name != "Ada L" {
		t.Fatalf("get after update: %+v", got)
	}

	if rec = do(r, http.MethodDelete, "/api/users/1", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", rec.Code)
	}
	if rec = do(r, http.MethodGet, "/api/users/1", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: %d", rec.Code)
	}
}

func TestResourceRejectsBadInput(t *testing.T) {
	r, _ := newUserRouter()
	cases := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"non numeric id", http.MethodGet, "/api/users/abc", "", http.StatusBadRequest, "invalid_id"},
		{"zero id", http.MethodDelete, "/api/users/0", "", http.StatusBadRequest, "invalid_id"},
		{"malformed body", http.MethodPost, "/api/users", `{"name":`, http.StatusBadRequest, "invalid_request"},
		{"update missing", http.MethodPut, "/api/users/42", `{"name":"x","email":"y"}`, http.StatusNotFound, "not_found"},
		{"delete missing", http.MethodDelete, "/api/users/42", "", http.StatusNotFound, "not_found"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := do(r, tc.method, tc.target, tc.body)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status: got=%d want=%d (%s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if got := errorCode(t, rec); got != tc.wantCode {
				t.Fatalf("code: got=%q want=%q", got, tc.wantCode)
			}
		})
	}
}

func TestMetricSearchDispatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fm := &fakeMetrics{memCRUD: newMemCRUD(func(m *types.Metric) int64 { return m.MetricID }, func(m *types.Metric, id int64) { m.MetricID = id })}
	h := NewMetricHandlerWithDeps(MetricHandlerDeps{Log: logger.Nop(), Metrics: fm})
	r := gin.New()
	h.Register(r.Group("/api/metrics"))

	cases := []struct {
		name      string
		target    string
		wantField string
		wantValue any
		wantKeys  []string
	}{
		{"raw value", "/api/metrics/search?path=market.region&value=EU", "raw_data", "EU", []string{"market", "region"}},
		{"raw number", "/api/metrics/search?field=raw_data&path=size&value=42", "raw_data", float64(42), []string{"size"}},
		{"raw key only", "/api/metrics/search?path=size", "raw_data_key", nil, []string{"size"}},
		{"pattern", "/api/metrics/search?field=pattern_analysis&path=trend&value=true", "pattern_analysis", true, []string{"trend"}},
	}
	for _, tc := range cases {
		rec := do(r, http.MethodGet, tc.target, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d %s", tc.name, rec.Code, rec.Body.String())
		}
		if fm.lastField != tc.wantField || fm.lastValue != tc.wantValue || strings.Join(fm.lastKeys, ".") != strings.Join(tc.wantKeys, ".") {
			t.Fatalf("%s: got field=%s value=%v keys=%v", tc.name, fm.lastField, fm.lastValue, fm.lastKeys)
		}
	}

	for _, target := range []string{
		"/api/metrics/search?field=notes&path=a&value=b",
		"/api/metrics/search?value=b",
		"/api/metrics/search?path=a..b&value=b",
		"/api/metrics/search?field=pattern_analysis&path=a",
	} {
		if rec := do(r, http.MethodGet, target, ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d", target, rec.Code)
		}
	}
}

func TestDocumentValue(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want any
	}{
		{"EU", "EU"},
		{`"42"`, "42"},
		{"42", float64(42)},
		{"false", false},
		{`{"a":1}`, `{"a":1}`},
		{"null", "null"},
	}
	for _, tc := range cases {
		if got := documentValue(tc.in); got != tc.want {
			t.Fatalf("documentValue(%q): got %#v want %#v", tc.in, got, tc.want)
		}
	}
}
