package handlers

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/yoshkaflow-backend/internal/domain"
	"github.com/yungbote/yoshkaflow-backend/internal/http/response"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/apierr"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
	"github.com/yungbote/yoshkaflow-backend/internal/services"
)

type ResearchTaskHandlerDeps struct {
	Log      *logger.Logger
	Tasks    services.ResearchTaskService
	Evidence services.EvidenceService
	Metrics  services.MetricService
	DataGaps services.DataGapService
}

type ResearchTaskHandler struct {
	*Resource[types.ResearchTask]
	tasks    services.ResearchTaskService
	evidence services.EvidenceService
	metrics  services.MetricService
	dataGaps services.DataGapService
}

func NewResearchTaskHandlerWithDeps(deps ResearchTaskHandlerDeps) *ResearchTaskHandler {
	return &ResearchTaskHandler{
		Resource: NewResource[types.ResearchTask](deps.Log, "research_tasks", deps.Tasks, func(t *types.ResearchTask, id int64) { t.TaskID = id }),
		tasks:    deps.Tasks,
		evidence: deps.Evidence,
		metrics:  deps.Metrics,
		dataGaps: deps.DataGaps,
	}
}

func (h *ResearchTaskHandler) Register(g gin.IRoutes) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	if h.evidence != nil {
		g.GET("/:id/evidence", h.ListEvidence)
	}
	if h.metrics != nil {
		g.GET("/:id/metrics", h.ListMetrics)
	}
	if h.dataGaps != nil {
		g.GET("/:id/data-gaps", h.ListDataGaps)
	}
}

// GET /research-tasks?status=&product_id=
func (h *ResearchTaskHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	if raw := strings.TrimSpace(c.Query("product_id")); raw != "" {
		productID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || productID <= 0 {
			h.fail(c, "list", apierr.BadRequest("invalid_product_id", "invalid product_id %q", raw))
			return
		}
		out, err := h.tasks.ListByProductID(ctx, productID)
		if err != nil {
			h.fail(c, "list_by_product", err)
			return
		}
		response.RespondOK(c, nonNil(filterStatus(out, c.Query("status"))))
		return
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		out, err := h.tasks.ListByStatus(ctx, status)
		if err != nil {
			h.fail(c, "list_by_status", err)
			return
		}
		response.RespondOK(c, nonNil(out))
		return
	}
	h.Resource.List(c)
}

func filterStatus(in []*types.ResearchTask, status string) []*types.ResearchTask {
	status = strings.TrimSpace(status)
	if status == "" {
		return in
	}
	out := make([]*types.ResearchTask, 0, len(in))
	for _, t := range in {
		if t != nil && t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// GET /research-tasks/:id/evidence
func (h *ResearchTaskHandler) ListEvidence(c *gin.Context) {
	listChildren(h, c, "list_evidence", h.evidence.ListByTaskID)
}

// GET /research-tasks/:id/metrics
func (h *ResearchTaskHandler) ListMetrics(c *gin.Context) {
	listChildren(h, c, "list_metrics", h.metrics.ListByTaskID)
}

// GET /research-tasks/:id/data-gaps
func (h *ResearchTaskHandler) ListDataGaps(c *gin.Context) {
	listChildren(h, c, "list_data_gaps", h.dataGaps.ListByTaskID)
}

func listChildren[C any](h *ResearchTaskHandler, c *gin.Context, op string, list func(ctx context.Context, taskID int64) ([]*C, error)) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, op, err)
		return
	}
	if _, err := h.tasks.Get(c.Request.Context(), id); err != nil {
		h.fail(c, op, err)
		return
	}
	out, err := list(c.Request.Context(), id)
	if err != nil {
		h.fail(c, op, err)
		return
	}
	response.RespondOK(c, nonNil(out))
}

type MetricHandlerDeps struct {
	Log              *logger.Logger
	Metrics          services.MetricService
	ConfidenceScores services.ConfidenceScoreService
	PatternTracking  services.PatternTrackingService
}

type MetricHandler struct {
	*Resource[types.Metric]
	metrics  services.MetricService
	scores   services.ConfidenceScoreService
	patterns services.PatternTrackingService
}

func NewMetricHandlerWithDeps(deps MetricHandlerDeps) *MetricHandler {
	return &MetricHandler{
		Resource: NewResource[types.Metric](deps.Log, "metrics", deps.Metrics, func(m *types.Metric, id int64) { m.MetricID = id }),
		metrics:  deps.Metrics,
		scores:   deps.ConfidenceScores,
		patterns: deps.PatternTracking,
	}
}

func (h *MetricHandler) Register(g gin.IRoutes) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/search", h.Search)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	if h.scores != nil {
		g.GET("/:id/confidence-score", h.GetConfidenceScore)
	}
	if h.patterns != nil {
		g.GET("/:id/pattern-tracking", h.GetPatternTracking)
	}
}

// GET /metrics/:id/confidence-score
func (h *MetricHandler) GetConfidenceScore(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, "get_confidence_score", err)
		return
	}
	score, err := h.scores.GetByMetricID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get_confidence_score", err)
		return
	}
	response.RespondOK(c, score)
}

// GET /metrics/:id/pattern-tracking
func (h *MetricHandler) GetPatternTracking(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, "get_pattern_tracking", err)
		return
	}
	pt, err := h.patterns.GetByMetricID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get_pattern_tracking", err)
		return
	}
	response.RespondOK(c, pt)
}

// GET /metrics/search?field=raw_data|pattern_analysis&path=a.b&value=x
// Without value, raw_data matches rows that merely have the path.
func (h *MetricHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()
	keys, err := documentPath(c.Query("path"))
	if err != nil {
		h.fail(c, "search", err)
		return
	}
	raw, hasValue := c.GetQuery("value")

	var out []*types.Metric
	switch field := strings.TrimSpace(c.Query("field")); field {
	case "", "raw_data":
		if hasValue {
			out, err = h.metrics.FindByRawData(ctx, documentValue(raw), keys...)
		} else {
			out, err = h.metrics.FindWithRawDataKey(ctx, keys...)
		}
	case "pattern_analysis":
		if !hasValue {
			err = apierr.BadRequest("invalid_query", "value is required for pattern_analysis")
			break
		}
		out, err = h.metrics.FindByPatternAnalysis(ctx, documentValue(raw), keys...)
	default:
		err = apierr.BadRequest("invalid_query", "unknown field %q", field)
	}
	if err != nil {
		h.fail(c, "search", err)
		return
	}
	response.RespondOK(c, nonNil(out))
}

type PatternTrackingHandler struct {
	*Resource[types.PatternTracking]
	patterns services.PatternTrackingService
}

func NewPatternTrackingHandler(log *logger.Logger, patterns services.PatternTrackingService) *PatternTrackingHandler {
	return &PatternTrackingHandler{
		Resource: NewResource[types.PatternTracking](log, "pattern_tracking", patterns, func(p *types.PatternTracking, id int64) { p.PatternID = id }),
		patterns: patterns,
	}
}

func (h *PatternTrackingHandler) Register(g gin.IRoutes) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/search", h.Search)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// GET /pattern-tracking/search?field=market_patterns&path=a.b&value=x
func (h *PatternTrackingHandler) Search(c *gin.Context) {
	keys, err := documentPath(c.Query("path"))
	if err != nil {
		h.fail(c, "search", err)
		return
	}
	out, err := h.patterns.FindByPattern(c.Request.Context(), strings.TrimSpace(c.Query("field")), documentValue(c.Query("value")), keys...)
	if err != nil {
		h.fail(c, "search", err)
		return
	}
	response.RespondOK(c, nonNil(out))
}

func NewEvidenceHandler(log *logger.Logger, svc services.EvidenceService) *Resource[types.Evidence] {
	return NewResource[types.Evidence](log, "evidence", svc, func(e *types.Evidence, id int64) { e.EvidenceID = id })
}

func NewConfidenceScoreHandler(log *logger.Logger, svc services.ConfidenceScoreService) *Resource[types.ConfidenceScore] {
	return NewResource[types.ConfidenceScore](log, "confidence_scores", svc, func(s *types.ConfidenceScore, id int64) { s.ConfidenceID = id })
}

func NewDataGapHandler(log *logger.Logger, svc services.DataGapService) *Resource[types.DataGap] {
	return NewResource[types.DataGap](log, "data_gaps", svc, func(g *types.DataGap, id int64) { g.GapID = id })
}

// documentPath splits a dotted JSON path into keys.
func documentPath(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, apierr.BadRequest("invalid_query", "path is required")
	}
	keys := strings.Split(raw, ".")
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			return nil, apierr.BadRequest("invalid_query", "invalid path %q", raw)
		}
	}
	return keys, nil
}

// documentValue decodes JSON scalars (numbers, booleans, quoted strings) so
// they compare by type; anything else is matched as a plain string.
func documentValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	switch v.(type) {
	case float64, bool, string:
		return v
	default:
		return raw
	}
}
