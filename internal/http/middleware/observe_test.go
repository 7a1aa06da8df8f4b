package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yungbote/yoshkaflow-backend/internal/domain/aggregates"
	"github.com/yungbote/yoshkaflow-backend/internal/observability"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

func TestResourceOf(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"":                                  "unmatched",
		"/":                                 "status",
		"/healthcheck":                      "healthcheck",
		"/metrics":                          "metrics",
		"/api/users":                        "users",
		"/api/research-tasks/:id/evidence":  "research-tasks",
		"/api/metrics/:id/confidence-score": "metrics",
		"/api":                              "api",
	}
	for route, want := range cases {
		if got := resourceOf(route); got != want {
			t.Fatalf("resourceOf(%q): got=%q want=%q", route, got, want)
		}
	}
}

func failingRouter(m *observability.Metrics, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(AttachTraceContext(), RequestLogger(log), Metrics(m))
	r.GET("/api/users/:id", func(c *gin.Context) {
		_ = c.Error(aggregates.NotFound("users.get", "users %s not found", c.Param("id")))
		c.Status(http.StatusNotFound)
	})
	r.GET("/healthcheck", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestMetricsLabelByResourceAndCode(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	m := observability.NewMetrics()
	r := failingRouter(m, nil)
	for _, target := range []string{"/api/users/1", "/api/users/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`yoshkaflow_http_requests_total{method="GET",resource="users",status="404"} 2`,
		`yoshkaflow_http_request_failures_total{code="not_found",resource="users"} 2`,
		`yoshkaflow_http_request_failures_total{code="not_found",resource="unmatched"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("missing %q in exposition:\n%s", want, body)
		}
	}
}

func TestMetricsMiddlewareHandlesNil(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	for _, m := range []*observability.Metrics{nil, observability.NewMetrics()} {
		r := gin.New()
		r.Use(Metrics(m))
		r.GET("/api/users/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/1", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status: got=%d", rec.Code)
		}
	}
}

func TestRequestLoggerFields(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}
	r := failingRouter(nil, log)

	req := httptest.NewRequest(http.MethodGet, "/api/users/9", nil)
	req.Header.Set("X-Request-Id", "req-9")
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	rejected := logs.FilterMessage("request rejected").All()
	if len(rejected) != 1 || rejected[0].Level != zapcore.WarnLevel {
		t.Fatalf("rejected entries: %+v", rejected)
	}
	fields := rejected[0].ContextMap()
	if fields["resource"] != "users" || fields["code"] != "not_found" || fields["request_id"] != "req-9" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if fields["route"] != "/api/users/:id" {
		t.Fatalf("route: %v", fields["route"])
	}

	served := logs.FilterMessage("request served").All()
	if len(served) != 1 || served[0].Level != zapcore.DebugLevel {
		t.Fatalf("healthcheck should log at debug: %+v", served)
	}
}
