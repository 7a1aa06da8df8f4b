package research

import (
	"github.com/yungbote/yoshkaflow-backend/internal/data/db"
	"github.com/yungbote/yoshkaflow-backend/internal/data/repos/crud"
	types "github.com/yungbote/yoshkaflow-backend/internal/domain"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/dbctx"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

type ConfidenceScoreRepo interface {
	crud.Repo[types.ConfidenceScore]
	GetByMetricID(dbc dbctx.Context, metricID int64) (*types.ConfidenceScore, error)
}

type confidenceScoreRepo struct {
	crud.Base[types.ConfidenceScore]
	dc *db.DataContext
}

func NewConfidenceScoreRepo(dc *db.DataContext, baseLog *logger.Logger) ConfidenceScoreRepo {
	repoLog := baseLog.With("repo", "ConfidenceScoreRepo")
	return &confidenceScoreRepo{Base: crud.NewBase(dc.ConfidenceScores(), repoLog), dc: dc}
}

// GetByMetricID fails with NotFound when the metric has no score.
func (r *confidenceScoreRepo) GetByMetricID(dbc dbctx.Context, metricID int64) (*types.ConfidenceScore, error) {
	return r.dc.ConfidenceScores().FirstBy(dbc, "metric_id", metricID)
}
