package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/yoshkaflow-backend/internal/domain"
	"github.com/yungbote/yoshkaflow-backend/internal/http/response"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
	"github.com/yungbote/yoshkaflow-backend/internal/services"
)

type ProductHandlerDeps struct {
	Log      *logger.Logger
	Products services.ProductService
	Tasks    services.ResearchTaskService
}

type ProductHandler struct {
	*Resource[types.Product]
	products services.ProductService
	tasks    services.ResearchTaskService
}

func NewProductHandlerWithDeps(deps ProductHandlerDeps) *ProductHandler {
	return &ProductHandler{
		Resource: NewResource[types.Product](deps.Log, "products", deps.Products, func(p *types.Product, id int64) { p.ProductID = id }),
		products: deps.Products,
		tasks:    deps.Tasks,
	}
}

func (h *ProductHandler) Register(g gin.IRoutes) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	if h.tasks != nil {
		g.GET("/:id/research-tasks", h.ListResearchTasks)
	}
}

// GET /products?name=
func (h *ProductHandler) List(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		h.Resource.List(c)
		return
	}
	out, err := h.products.ListByName(c.Request.Context(), name)
	if err != nil {
		h.fail(c, "list_by_name", err)
		return
	}
	response.RespondOK(c, nonNil(out))
}

// GET /products/:id/research-tasks
func (h *ProductHandler) ListResearchTasks(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, "list_research_tasks", err)
		return
	}
	// 404 for an unknown product rather than an empty list
	if _, err := h.products.Get(c.Request.Context(), id); err != nil {
		h.fail(c, "list_research_tasks", err)
		return
	}
	out, err := h.tasks.ListByProductID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "list_research_tasks", err)
		return
	}
	response.RespondOK(c, nonNil(out))
}
