package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/yoshkaflow-backend/internal/http/response"
	"github.com/yungbote/yoshkaflow-backend/internal/observability"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/ctxutil"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

// Health checkers and scrapers poll these; successful calls log at debug.
var quietResources = map[string]bool{
	"status":      true,
	"healthcheck": true,
	"metrics":     true,
}

// outcome summarizes a finished request for logs and metrics.
type outcome struct {
	resource string
	route    string
	status   int
	code     string
	elapsed  time.Duration
}

func outcomeOf(c *gin.Context, start time.Time) outcome {
	o := outcome{
		route:   c.FullPath(),
		status:  c.Writer.Status(),
		elapsed: time.Since(start),
	}
	o.resource = resourceOf(o.route)
	if o.route == "" {
		o.route = c.Request.URL.Path
	}
	switch {
	case c.Errors.Last() != nil:
		o.code = response.CodeFor(c.Errors.Last().Err)
	case o.status >= http.StatusBadRequest:
		o.code = strings.ToLower(strings.ReplaceAll(http.StatusText(o.status), " ", "_"))
	}
	return o
}

// resourceOf names the collection a route template belongs to:
// /api/research-tasks/:id/evidence is "research-tasks", / is "status".
func resourceOf(route string) string {
	if route == "" {
		return "unmatched"
	}
	parts := strings.Split(strings.Trim(route, "/"), "/")
	switch {
	case parts[0] == "":
		return "status"
	case parts[0] == "api" && len(parts) > 1:
		return parts[1]
	default:
		return parts[0]
	}
}

// Metrics counts requests per resource and failures per error code.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		m.ApiInflightInc()
		defer m.ApiInflightDec()

		c.Next()

		o := outcomeOf(c, start)
		m.ObserveAPI(c.Request.Method, o.resource, strconv.Itoa(o.status), o.elapsed)
		if o.code != "" {
			m.ObserveAPIFailure(o.resource, o.code)
		}
	}
}

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		o := outcomeOf(c, start)
		fields := []interface{}{
			"method", c.Request.Method,
			"resource", o.resource,
			"route", o.route,
			"status", o.status,
			"duration_ms", o.elapsed.Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		fields = append(fields, ctxutil.LogFields(c.Request.Context())...)
		if o.code != "" {
			fields = append(fields, "code", o.code)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case o.status >= http.StatusInternalServerError:
			log.Error("request failed", fields...)
		case o.status >= http.StatusBadRequest:
			log.Warn("request rejected", fields...)
		case quietResources[o.resource]:
			log.Debug("request served", fields...)
		default:
			log.Info("request served", fields...)
		}
	}
}
