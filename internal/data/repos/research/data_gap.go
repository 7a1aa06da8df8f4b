package research

import (
	"github.com/yungbote/yoshkaflow-backend/internal/data/db"
	"github.com/yungbote/yoshkaflow-backend/internal/data/repos/crud"
	types "github.com/yungbote/yoshkaflow-backend/internal/domain"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/dbctx"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

type DataGapRepo interface {
	crud.Repo[types.DataGap]
	ListByTaskID(dbc dbctx.Context, taskID int64) ([]*types.DataGap, error)
}

type dataGapRepo struct {
	crud.Base[types.DataGap]
	dc *db.DataContext
}

func NewDataGapRepo(dc *db.DataContext, baseLog *logger.Logger) DataGapRepo {
	repoLog := baseLog.With("repo", "DataGapRepo")
	return &dataGapRepo{Base: crud.NewBase(dc.DataGaps(), repoLog), dc: dc}
}

func (r *dataGapRepo) ListByTaskID(dbc dbctx.Context, taskID int64) ([]*types.DataGap, error) {
	return r.dc.DataGaps().ListBy(dbc, "task_id", taskID)
}
