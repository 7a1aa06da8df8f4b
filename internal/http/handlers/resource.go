package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/yoshkaflow-backend/internal/domain/aggregates"
	"github.com/yungbote/yoshkaflow-backend/internal/http/response"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/apierr"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

// CRUD is the service surface a Resource drives. Every entity service in
// internal/services satisfies it.
type CRUD[T any] interface {
	Get(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context) ([]*T, error)
	Add(ctx context.Context, rec *T) error
	Update(ctx context.Context, rec *T) error
	Delete(ctx context.Context, id int64) error
}

// Resource serves the five CRUD routes of one entity. setKey copies the path
// id into a decoded body before an update and clears any id sent on create.
type Resource[T any] struct {
	log    *logger.Logger
	name   string
	svc    CRUD[T]
	setKey func(rec *T, id int64)
}

func NewResource[T any](log *logger.Logger, name string, svc CRUD[T], setKey func(rec *T, id int64)) *Resource[T] {
	if log == nil {
		log = logger.Nop()
	}
	return &Resource[T]{
		log:    log.With("handler", name),
		name:   name,
		svc:    svc,
		setKey: setKey,
	}
}

// Register mounts the routes on g.
func (h *Resource[T]) Register(g gin.IRoutes) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// GET /<resource>
func (h *Resource[T]) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	response.RespondOK(c, nonNil(out))
}

// GET /<resource>/:id
func (h *Resource[T]) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, "get", err)
		return
	}
	rec, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get", err)
		return
	}
	response.RespondOK(c, rec)
}

// POST /<resource>
func (h *Resource[T]) Create(c *gin.Context) {
	rec := new(T)
	if err := bindBody(c, rec); err != nil {
		h.fail(c, "create", err)
		return
	}
	if h.setKey != nil {
		h.setKey(rec, 0)
	}
	if err := h.svc.Add(c.Request.Context(), rec); err != nil {
		h.fail(c, "create", err)
		return
	}
	response.RespondCreated(c, rec)
}

// PUT /<resource>/:id
func (h *Resource[T]) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	rec := new(T)
	if err := bindBody(c, rec); err != nil {
		h.fail(c, "update", err)
		return
	}
	if h.setKey != nil {
		h.setKey(rec, id)
	}
	if err := h.svc.Update(c.Request.Context(), rec); err != nil {
		h.fail(c, "update", err)
		return
	}
	response.RespondOK(c, rec)
}

// DELETE /<resource>/:id
func (h *Resource[T]) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, "delete", err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, "delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Resource[T]) fail(c *gin.Context, op string, err error) {
	respondFailure(c, h.log, h.name+"."+op, err)
}

func respondFailure(c *gin.Context, log *logger.Logger, op string, err error) {
	status := failureStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "op", op, "error", err)
	} else {
		log.Debug("request rejected", "op", op, "status", status, "error", err)
	}
	_ = c.Error(err)
	response.RespondDomainError(c, err)
}

func failureStatus(err error) int {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return response.StatusFor(aggregates.CodeOf(err))
}

func pathID(c *gin.Context, param string) (int64, error) {
	raw := strings.TrimSpace(c.Param(param))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apierr.BadRequest("invalid_id", "invalid %s %q", param, raw)
	}
	return id, nil
}

func bindBody(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apierr.New(http.StatusBadRequest, "invalid_request", err)
	}
	return nil
}

// nonNil keeps empty lists encoded as [] rather than null.
func nonNil[T any](in []*T) []*T {
	if in == nil {
		return []*T{}
	}
	return in
}
