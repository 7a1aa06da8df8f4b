package app

import (
	"github.com/yungbote/yoshkaflow-backend/internal/data/db"
	"github.com/yungbote/yoshkaflow-backend/internal/data/repos"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

type Repos struct {
	User            repos.UserRepo
	Product         repos.ProductRepo
	ResearchTask    repos.ResearchTaskRepo
	Evidence        repos.EvidenceRepo
	Metric          repos.MetricRepo
	ConfidenceScore repos.ConfidenceScoreRepo
	PatternTracking repos.PatternTrackingRepo
	DataGap         repos.DataGapRepo
}

func wireRepos(dc *db.DataContext, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:            repos.NewUserRepo(dc, log),
		Product:         repos.NewProductRepo(dc, log),
		ResearchTask:    repos.NewResearchTaskRepo(dc, log),
		Evidence:        repos.NewEvidenceRepo(dc, log),
		Metric:          repos.NewMetricRepo(dc, log),
		ConfidenceScore: repos.NewConfidenceScoreRepo(dc, log),
		PatternTracking: repos.NewPatternTrackingRepo(dc, log),
		DataGap:         repos.NewDataGapRepo(dc, log),
	}
}
