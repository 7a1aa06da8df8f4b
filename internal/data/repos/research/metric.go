package research

import (
	"github.com/yungbote/yoshkaflow-backend/internal/data/db"
	"github.com/yungbote/yoshkaflow-backend/internal/data/repos/crud"
	types "github.com/yungbote/yoshkaflow-backend/internal/domain"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/dbctx"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

const (
	MetricColumnRawData         = "raw_data"
	MetricColumnPatternAnalysis = "pattern_analysis"
)

type MetricRepo interface {
	crud.Repo[types.Metric]
	ListByTaskID(dbc dbctx.Context, taskID int64) ([]*types.Metric, error)
	FindByRawData(dbc dbctx.Context, value any, keys ...string) ([]*types.Metric, error)
	FindWithRawDataKey(dbc dbctx.Context, keys ...string) ([]*types.Metric, error)
	FindByPatternAnalysis(dbc dbctx.Context, value any, keys ...string) ([]*types.Metric, error)
}

type metricRepo struct {
	crud.Base[types.Metric]
	dc *db.DataContext
}

func NewMetricRepo(dc *db.DataContext, baseLog *logger.Logger) MetricRepo {
	repoLog := baseLog.With("repo", "MetricRepo")
	return &metricRepo{Base: crud.NewBase(dc.Metrics(), repoLog), dc: dc}
}

func (r *metricRepo) ListByTaskID(dbc dbctx.Context, taskID int64) ([]*types.Metric, error) {
	return r.dc.Metrics().ListBy(dbc, "task_id", taskID)
}

func (r *metricRepo) FindByRawData(dbc dbctx.Context, value any, keys ...string) ([]*types.Metric, error) {
	return findByDocument[types.Metric](r.dc.Metrics().Query(dbc), "metrics.find", MetricColumnRawData, value, keys)
}

func (r *metricRepo) FindWithRawDataKey(dbc dbctx.Context, keys ...string) ([]*types.Metric, error) {
	return findWithDocumentKey[types.Metric](r.dc.Metrics().Query(dbc), "metrics.find", MetricColumnRawData, keys)
}

func (r *metricRepo) FindByPatternAnalysis(dbc dbctx.Context, value any, keys ...string) ([]*types.Metric, error) {
	return findByDocument[types.Metric](r.dc.Metrics().Query(dbc), "metrics.find", MetricColumnPatternAnalysis, value, keys)
}
