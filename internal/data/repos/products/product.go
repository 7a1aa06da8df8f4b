package products

import (
	"github.com/yungbote/yoshkaflow-backend/internal/data/db"
	"github.com/yungbote/yoshkaflow-backend/internal/data/repos/crud"
	types "github.com/yungbote/yoshkaflow-backend/internal/domain"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/dbctx"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

type ProductRepo interface {
	crud.Repo[types.Product]
	ListByName(dbc dbctx.Context, name string) ([]*types.Product, error)
}

type productRepo struct {
	crud.Base[types.Product]
	dc *db.DataContext
}

func NewProductRepo(dc *db.DataContext, baseLog *logger.Logger) ProductRepo {
	repoLog := baseLog.With("repo", "ProductRepo")
	return &productRepo{Base: crud.NewBase(dc.Products(), repoLog), dc: dc}
}

func (pr *productRepo) ListByName(dbc dbctx.Context, name string) ([]*types.Product, error) {
	return pr.dc.Products().ListBy(dbc, "name", name)
}
