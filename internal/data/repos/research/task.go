package research

import (
	"github.com/yungbote/yoshkaflow-backend/internal/data/db"
	"github.com/yungbote/yoshkaflow-backend/internal/data/repos/crud"
	types "github.com/yungbote/yoshkaflow-backend/internal/domain"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/dbctx"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

type ResearchTaskRepo interface {
	crud.Repo[types.ResearchTask]
	ListByProductID(dbc dbctx.Context, productID int64) ([]*types.ResearchTask, error)
	ListByStatus(dbc dbctx.Context, status string) ([]*types.ResearchTask, error)
}

type researchTaskRepo struct {
	crud.Base[types.ResearchTask]
	dc *db.DataContext
}

func NewResearchTaskRepo(dc *db.DataContext, baseLog *logger.Logger) ResearchTaskRepo {
	repoLog := baseLog.With("repo", "ResearchTaskRepo")
	return &researchTaskRepo{Base: crud.NewBase(dc.ResearchTasks(), repoLog), dc: dc}
}

func (r *researchTaskRepo) ListByProductID(dbc dbctx.Context, productID int64) ([]*types.ResearchTask, error) {
	return r.dc.ResearchTasks().ListBy(dbc, "product_id", productID)
}

func (r *researchTaskRepo) ListByStatus(dbc dbctx.Context, status string) ([]*types.ResearchTask, error) {
	return r.dc.ResearchTasks().ListBy(dbc, "status", status)
}
