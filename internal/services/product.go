package services

import (
	"context"

	"github.com/yungbote/yoshkaflow-backend/internal/data/repos"
	types "github.com/yungbote/yoshkaflow-backend/internal/domain"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/dbctx"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

type ProductService interface {
	CRUDService[types.Product]
	ListByName(ctx context.Context, name string) ([]*types.Product, error)
}

type productService struct {
	crudService[types.Product]
	log  *logger.Logger
	repo repos.ProductRepo
}

func NewProductService(log *logger.Logger, productRepo repos.ProductRepo) ProductService {
	return &productService{
		crudService: crudService[types.Product]{repo: productRepo},
		log:         log.With("service", "ProductService"),
		repo:        productRepo,
	}
}

func (ps *productService) ListByName(ctx context.Context, name string) ([]*types.Product, error) {
	return ps.repo.ListByName(dbctx.From(ctx), name)
}
