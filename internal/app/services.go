package app

import (
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
	"github.com/yungbote/yoshkaflow-backend/internal/realtime/bus"
	"github.com/yungbote/yoshkaflow-backend/internal/services"
)

type Services struct {
	User            services.UserService
	Product         services.ProductService
	ResearchTask    services.ResearchTaskService
	Evidence        services.EvidenceService
	Metric          services.MetricService
	ConfidenceScore services.ConfidenceScoreService
	PatternTracking services.PatternTrackingService
	DataGap         services.DataGapService
}

func wireServices(log *logger.Logger, reposet Repos, events bus.Bus) Services {
	log.Info("Wiring services...")
	return Services{
		User:            services.NewUserService(log, reposet.User),
		Product:         services.NewProductService(log, reposet.Product),
		ResearchTask:    services.NewResearchTaskService(log, reposet.ResearchTask, events),
		Evidence:        services.NewEvidenceService(log, reposet.Evidence),
		Metric:          services.NewMetricService(log, reposet.Metric),
		ConfidenceScore: services.NewConfidenceScoreService(log, reposet.ConfidenceScore),
		PatternTracking: services.NewPatternTrackingService(log, reposet.PatternTracking),
		DataGap:         services.NewDataGapService(log, reposet.DataGap),
	}
}
