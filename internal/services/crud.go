package services

import (
	"context"

	"github.com/yungbote/yoshkaflow-backend/internal/data/repos/crud"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/dbctx"
)

// CRUDService is the pass-through contract shared by the product and
// research services.
type CRUDService[T any] interface {
	Get(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context) ([]*T, error)
	Add(ctx context.Context, rec *T) error
	Update(ctx context.Context, rec *T) error
	Delete(ctx context.Context, id int64) error
}

type crudService[T any] struct {
	repo crud.Repo[T]
}

func (s crudService[T]) Get(ctx context.Context, id int64) (*T, error) {
	return s.repo.Get(dbctx.From(ctx), id)
}

func (s crudService[T]) List(ctx context.Context) ([]*T, error) {
	return s.repo.List(dbctx.From(ctx))
}

func (s crudService[T]) Add(ctx context.Context, rec *T) error {
	return s.repo.Add(dbctx.From(ctx), rec)
}

func (s crudService[T]) Update(ctx context.Context, rec *T) error {
	return s.repo.Update(dbctx.From(ctx), rec)
}

func (s crudService[T]) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(dbctx.From(ctx), id)
}
