package app

import (
	types "github.com/yungbote/yoshkaflow-backend/internal/domain"
	"github.com/yungbote/yoshkaflow-backend/internal/http"
	httpH "github.com/yungbote/yoshkaflow-backend/internal/http/handlers"
	"github.com/yungbote/yoshkaflow-backend/internal/observability"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

type Handlers struct {
	Health          *httpH.HealthHandler
	User            *httpH.UserHandler
	Product         *httpH.ProductHandler
	ResearchTask    *httpH.ResearchTaskHandler
	Evidence        *httpH.Resource[types.Evidence]
	Metric          *httpH.MetricHandler
	ConfidenceScore *httpH.Resource[types.ConfidenceScore]
	PatternTracking *httpH.PatternTrackingHandler
	DataGap         *httpH.Resource[types.DataGap]
}

func wireHandlers(log *logger.Logger, store httpH.Pinger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(store),
		User:   httpH.NewUserHandler(log, services.User),
		Product: httpH.NewProductHandlerWithDeps(httpH.ProductHandlerDeps{
			Log:      log,
			Products: services.Product,
			Tasks:    services.ResearchTask,
		}),
		ResearchTask: httpH.NewResearchTaskHandlerWithDeps(httpH.ResearchTaskHandlerDeps{
			Log:      log,
			Tasks:    services.ResearchTask,
			Evidence: services.Evidence,
			Metrics:  services.Metric,
			DataGaps: services.DataGap,
		}),
		Evidence: httpH.NewEvidenceHandler(log, services.Evidence),
		Metric: httpH.NewMetricHandlerWithDeps(httpH.MetricHandlerDeps{
			Log:              log,
			Metrics:          services.Metric,
			ConfidenceScores: services.ConfidenceScore,
			PatternTracking:  services.PatternTracking,
		}),
		ConfidenceScore: httpH.NewConfidenceScoreHandler(log, services.ConfidenceScore),
		PatternTracking: httpH.NewPatternTrackingHandler(log, services.PatternTracking),
		DataGap:         httpH.NewDataGapHandler(log, services.DataGap),
	}
}

func routerConfig(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers) http.RouterConfig {
	rc := http.RouterConfig{
		Log:                    log,
		Metrics:                metrics,
		CORSOrigins:            cfg.CORS,
		HealthHandler:          handlers.Health,
		UserHandler:            handlers.User,
		ProductHandler:         handlers.Product,
		ResearchTaskHandler:    handlers.ResearchTask,
		EvidenceHandler:        handlers.Evidence,
		MetricHandler:          handlers.Metric,
		ConfidenceScoreHandler: handlers.ConfidenceScore,
		PatternTrackingHandler: handlers.PatternTracking,
		DataGapHandler:         handlers.DataGap,
	}
	if cfg.Otel.Enabled {
		rc.ServiceName = ServiceName
	}
	return rc
}
