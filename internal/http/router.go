package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	types "github.com/yungbote/yoshkaflow-backend/internal/domain"
	httpH "github.com/yungbote/yoshkaflow-backend/internal/http/handlers"
	httpMW "github.com/yungbote/yoshkaflow-backend/internal/http/middleware"
	"github.com/yungbote/yoshkaflow-backend/internal/observability"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	CORSOrigins []string
	// ServiceName enables otelgin spans when set.
	ServiceName string

	HealthHandler          *httpH.HealthHandler
	UserHandler            *httpH.UserHandler
	ProductHandler         *httpH.ProductHandler
	ResearchTaskHandler    *httpH.ResearchTaskHandler
	EvidenceHandler        *httpH.Resource[types.Evidence]
	MetricHandler          *httpH.MetricHandler
	ConfidenceScoreHandler *httpH.Resource[types.ConfidenceScore]
	PatternTrackingHandler *httpH.PatternTrackingHandler
	DataGapHandler         *httpH.Resource[types.DataGap]
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}

	r := gin.New()
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(log))
	r.Use(httpMW.Recovery(log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Status)
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		if cfg.UserHandler != nil {
			cfg.UserHandler.Register(api.Group("/users"))
		}
		if cfg.ProductHandler != nil {
			cfg.ProductHandler.Register(api.Group("/products"))
		}

		// Research
		if cfg.ResearchTaskHandler != nil {
			cfg.ResearchTaskHandler.Register(api.Group("/research-tasks"))
		}
		if cfg.EvidenceHandler != nil {
			cfg.EvidenceHandler.Register(api.Group("/evidence"))
		}
		if cfg.MetricHandler != nil {
			cfg.MetricHandler.Register(api.Group("/metrics"))
		}
		if cfg.ConfidenceScoreHandler != nil {
			cfg.ConfidenceScoreHandler.Register(api.Group("/confidence-scores"))
		}
		if cfg.PatternTrackingHandler != nil {
			cfg.PatternTrackingHandler.Register(api.Group("/pattern-tracking"))
		}
		if cfg.DataGapHandler != nil {
			cfg.DataGapHandler.Register(api.Group("/data-gaps"))
		}
	}

	return r
}
