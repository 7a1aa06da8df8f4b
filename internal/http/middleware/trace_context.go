package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/yoshkaflow-backend/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"

	maxIDLength = 128
)

// AttachTraceContext stamps every request with a trace id and a request id.
// The active span's trace id wins over X-Trace-Id so log lines join the
// exported trace. Header values that are not plain tokens are replaced.
func AttachTraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		td := &ctxutil.TraceData{
			TraceID:   headerID(c, headerTraceID),
			RequestID: headerID(c, headerRequestID),
		}

		span := trace.SpanFromContext(ctx)
		if sc := span.SpanContext(); sc.HasTraceID() {
			td.TraceID = sc.TraceID().String()
		}
		if td.TraceID == "" {
			td.TraceID = uuid.NewString()
		}
		if td.RequestID == "" {
			td.RequestID = uuid.NewString()
		}
		if span.IsRecording() {
			span.SetAttributes(attribute.String("http.request_id", td.RequestID))
		}

		c.Request = c.Request.WithContext(ctxutil.WithTraceData(ctx, td))
		c.Writer.Header().Set(headerTraceID, td.TraceID)
		c.Writer.Header().Set(headerRequestID, td.RequestID)
		c.Next()
	}
}

// headerID returns the header value when it is a short token of letters,
// digits and . _ : - only.
func headerID(c *gin.Context, name string) string {
	v := strings.TrimSpace(c.GetHeader(name))
	if v == "" || len(v) > maxIDLength {
		return ""
	}
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '_', r == ':', r == '-':
		default:
			return ""
		}
	}
	return v
}
