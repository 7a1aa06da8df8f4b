package research

import (
	"github.com/yungbote/yoshkaflow-backend/internal/data/db"
	"github.com/yungbote/yoshkaflow-backend/internal/data/repos/crud"
	types "github.com/yungbote/yoshkaflow-backend/internal/domain"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/dbctx"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

type EvidenceRepo interface {
	crud.Repo[types.Evidence]
	ListByTaskID(dbc dbctx.Context, taskID int64) ([]*types.Evidence, error)
}

type evidenceRepo struct {
	crud.Base[types.Evidence]
	dc *db.DataContext
}

func NewEvidenceRepo(dc *db.DataContext, baseLog *logger.Logger) EvidenceRepo {
	repoLog := baseLog.With("repo", "EvidenceRepo")
	return &evidenceRepo{Base: crud.NewBase(dc.Evidence(), repoLog), dc: dc}
}

func (r *evidenceRepo) ListByTaskID(dbc dbctx.Context, taskID int64) ([]*types.Evidence, error) {
	return r.dc.Evidence().ListBy(dbc, "task_id", taskID)
}
