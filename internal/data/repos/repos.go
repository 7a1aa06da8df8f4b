package repos

import (
	"github.com/yungbote/yoshkaflow-backend/internal/data/db"
	"github.com/yungbote/yoshkaflow-backend/internal/data/repos/products"
	"github.com/yungbote/yoshkaflow-backend/internal/data/repos/research"
	"github.com/yungbote/yoshkaflow-backend/internal/data/repos/user"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type ProductRepo = products.ProductRepo

type ResearchTaskRepo = research.ResearchTaskRepo
type EvidenceRepo = research.EvidenceRepo
type MetricRepo = research.MetricRepo
type ConfidenceScoreRepo = research.ConfidenceScoreRepo
type PatternTrackingRepo = research.PatternTrackingRepo
type DataGapRepo = research.DataGapRepo

func NewUserRepo(dc *db.DataContext, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(dc, baseLog)
}

func NewProductRepo(dc *db.DataContext, baseLog *logger.Logger) ProductRepo {
	return products.NewProductRepo(dc, baseLog)
}

func NewResearchTaskRepo(dc *db.DataContext, baseLog *logger.Logger) ResearchTaskRepo {
	return research.NewResearchTaskRepo(dc, baseLog)
}
func NewEvidenceRepo(dc *db.DataContext, baseLog *logger.Logger) EvidenceRepo {
	return research.NewEvidenceRepo(dc, baseLog)
}
func NewMetricRepo(dc *db.DataContext, baseLog *logger.Logger) MetricRepo {
	return research.NewMetricRepo(dc, baseLog)
}
func NewConfidenceScoreRepo(dc *db.DataContext, baseLog *logger.Logger) ConfidenceScoreRepo {
	return research.NewConfidenceScoreRepo(dc, baseLog)
}
func NewPatternTrackingRepo(dc *db.DataContext, baseLog *logger.Logger) PatternTrackingRepo {
	return research.NewPatternTrackingRepo(dc, baseLog)
}
func NewDataGapRepo(dc *db.DataContext, baseLog *logger.Logger) DataGapRepo {
	return research.NewDataGapRepo(dc, baseLog)
}
