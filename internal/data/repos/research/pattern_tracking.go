package research

import (
	"github.com/yungbote/yoshkaflow-backend/internal/data/db"
	"github.com/yungbote/yoshkaflow-backend/internal/data/repos/crud"
	types "github.com/yungbote/yoshkaflow-backend/internal/domain"
	"github.com/yungbote/yoshkaflow-backend/internal/domain/aggregates"
	domainresearch "github.com/yungbote/yoshkaflow-backend/internal/domain/research"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/dbctx"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

type PatternTrackingRepo interface {
	crud.Repo[types.PatternTracking]
	GetByMetricID(dbc dbctx.Context, metricID int64) (*types.PatternTracking, error)
	FindByPattern(dbc dbctx.Context, column string, value any, keys ...string) ([]*types.PatternTracking, error)
}

type patternTrackingRepo struct {
	crud.Base[types.PatternTracking]
	dc *db.DataContext
}

func NewPatternTrackingRepo(dc *db.DataContext, baseLog *logger.Logger) PatternTrackingRepo {
	repoLog := baseLog.With("repo", "PatternTrackingRepo")
	return &patternTrackingRepo{Base: crud.NewBase(dc.PatternTracking(), repoLog), dc: dc}
}

func (r *patternTrackingRepo) GetByMetricID(dbc dbctx.Context, metricID int64) (*types.PatternTracking, error) {
	return r.dc.PatternTracking().FirstBy(dbc, "metric_id", metricID)
}

// FindByPattern matches one of the three pattern documents.
func (r *patternTrackingRepo) FindByPattern(dbc dbctx.Context, column string, value any, keys ...string) ([]*types.PatternTracking, error) {
	const op = "pattern_tracking.find"
	switch column {
	case domainresearch.ColumnPerformancePatterns, domainresearch.ColumnInnovationPatterns, domainresearch.ColumnMarketPatterns:
	default:
		return nil, aggregates.Validation(op, "unknown pattern column %q", column)
	}
	return findByDocument[types.PatternTracking](r.dc.PatternTracking().Query(dbc), op, column, value, keys)
}
