package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/yoshkaflow-backend/internal/http/response"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/ctxutil"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

// Recovery turns a handler panic into a 500 error envelope.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		if log != nil {
			fields := append([]interface{}{"panic", fmt.Sprint(recovered), "path", c.Request.URL.Path}, ctxutil.LogFields(c.Request.Context())...)
			log.Error("handler panic", fields...)
		}
		response.RespondError(c, http.StatusInternalServerError, "internal", fmt.Errorf("internal server error"))
		c.Abort()
	})
}
