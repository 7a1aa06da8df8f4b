package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/yoshkaflow-backend/internal/http/response"
)

const APIVersion = "1.0.0"

// Pinger reports whether the backing store answers.
type Pinger interface {
	Ping() error
}

type HealthHandler struct {
	store Pinger
	now   func() time.Time
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

type statusResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// GET /
func (h *HealthHandler) Status(c *gin.Context) {
	response.RespondOK(c, statusResponse{
		Status:    "Online",
		Timestamp: h.now(),
		Version:   APIVersion,
	})
}

// GET /healthcheck
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if h.store != nil {
		if err := h.store.Ping(); err != nil {
			response.RespondError(c, http.StatusServiceUnavailable, "store_unavailable", err)
			return
		}
	}
	c.String(http.StatusOK, "ok")
}
