package crud

import (
	"github.com/yungbote/yoshkaflow-backend/internal/data/db"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/dbctx"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

// Repo is the contract every aggregate repository offers.
type Repo[T any] interface {
	Get(dbc dbctx.Context, id int64) (*T, error)
	List(dbc dbctx.Context) ([]*T, error)
	Add(dbc dbctx.Context, rec *T) error
	Update(dbc dbctx.Context, rec *T) error
	Delete(dbc dbctx.Context, id int64) error
}

// Base implements Repo over a data context collection. Aggregate repos
// embed it and add their own lookups.
type Base[T any] struct {
	Set *db.Set[T]
	Log *logger.Logger
}

func NewBase[T any](set *db.Set[T], log *logger.Logger) Base[T] {
	return Base[T]{Set: set, Log: log}
}

func (b Base[T]) Get(dbc dbctx.Context, id int64) (*T, error) {
	return b.Set.Get(dbc, id)
}

func (b Base[T]) List(dbc dbctx.Context) ([]*T, error) {
	return b.Set.List(dbc)
}

func (b Base[T]) Add(dbc dbctx.Context, rec *T) error {
	return b.Set.Add(dbc, rec)
}

func (b Base[T]) Update(dbc dbctx.Context, rec *T) error {
	return b.Set.Update(dbc, rec)
}

func (b Base[T]) Delete(dbc dbctx.Context, id int64) error {
	if err := b.Set.Delete(dbc, id); err != nil {
		return err
	}
	b.Log.Debug("deleted with dependents", "table", b.Set.Table(), "id", id)
	return nil
}
