package db

import (
	"errors"
	"fmt"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormschema "gorm.io/gorm/schema"

	"github.com/yungbote/yoshkaflow-backend/internal/data/schema"
	"github.com/yungbote/yoshkaflow-backend/internal/domain/aggregates"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/dbctx"
)

// Set is the typed collection for one registered entity. Writes enforce the
// registry: parents must exist, one-to-one children stay unique and deletes
// remove every dependent row in the same transaction.
type Set[T any] struct {
	dc     *DataContext
	entity schema.Entity
	meta   *gormschema.Schema
	pk     *gormschema.Field
}

func newSet[T any](dc *DataContext, table string) (*Set[T], error) {
	ent, ok := dc.def.Entity(table)
	if !ok {
		return nil, fmt.Errorf("data context: entity %s is not registered", table)
	}
	if want, got := reflect.TypeOf(ent.Model), reflect.TypeOf(new(T)); want != got {
		return nil, fmt.Errorf("data context: entity %s is registered as %s, not %s", table, want, got)
	}
	meta := dc.schemas[table]
	return &Set[T]{dc: dc, entity: ent, meta: meta, pk: meta.PrioritizedPrimaryField}, nil
}

func (s *Set[T]) Table() string { return s.entity.Table }

func (s *Set[T]) op(name string) string { return s.entity.Table + "." + name }

func (s *Set[T]) finish(name string, err error) error {
	err = MapError(s.op(name), err)
	s.dc.record(s.entity.Table, name, err)
	return err
}

// Query starts a query on the entity's table for lookups the typed methods
// do not cover.
func (s *Set[T]) Query(dbc dbctx.Context) *gorm.DB {
	return s.dc.conn(dbc).Model(new(T))
}

func (s *Set[T]) Get(dbc dbctx.Context, id int64) (*T, error) {
	var out T
	err := s.dc.conn(dbc).Where(eq(s.pk.DBName, id)).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = aggregates.NotFound(s.op("get"), "%s %d not found", s.entity.Table, id)
	}
	if err != nil {
		return nil, s.finish("get", err)
	}
	s.dc.record(s.entity.Table, "get", nil)
	return &out, nil
}

func (s *Set[T]) List(dbc dbctx.Context) ([]*T, error) {
	var out []*T
	err := s.dc.conn(dbc).Order(s.orderByKey()).Find(&out).Error
	if err != nil {
		return nil, s.finish("list", err)
	}
	s.dc.record(s.entity.Table, "list", nil)
	return out, nil
}

// ListBy returns rows whose column equals value, ordered by key.
func (s *Set[T]) ListBy(dbc dbctx.Context, column string, value any) ([]*T, error) {
	if err := s.checkColumn("list", column); err != nil {
		return nil, err
	}
	var out []*T
	err := s.dc.conn(dbc).Where(eq(column, value)).Order(s.orderByKey()).Find(&out).Error
	if err != nil {
		return nil, s.finish("list", err)
	}
	s.dc.record(s.entity.Table, "list", nil)
	return out, nil
}

// FirstBy returns the lowest-keyed row whose column equals value.
func (s *Set[T]) FirstBy(dbc dbctx.Context, column string, value any) (*T, error) {
	if err := s.checkColumn("get", column); err != nil {
		return nil, err
	}
	var out T
	err := s.dc.conn(dbc).Where(eq(column, value)).Order(s.orderByKey()).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = aggregates.NotFound(s.op("get"), "no %s with %s=%v", s.entity.Table, column, value)
	}
	if err != nil {
		return nil, s.finish("get", err)
	}
	s.dc.record(s.entity.Table, "get", nil)
	return &out, nil
}

// Add inserts rec and fills in its generated key. Keys are always generated
// by the store; a record that already carries one is rejected.
func (s *Set[T]) Add(dbc dbctx.Context, rec *T) error {
	op := s.op("add")
	if rec == nil {
		return aggregates.Validation(op, "record is required")
	}
	if id := s.keyOf(dbc, rec); id != 0 {
		return s.finish("add", aggregates.Validation(op, "%s is assigned by the store, got %d", s.pk.DBName, id))
	}
	if err := validateRecord(rec); err != nil {
		return s.finish("add", err)
	}
	err := s.dc.InTx(dbc, func(dbc dbctx.Context) error {
		if err := s.checkParents(dbc, op, rec); err != nil {
			return err
		}
		if err := s.checkOneToOne(dbc, op, rec, 0); err != nil {
			return err
		}
		return s.dc.conn(dbc).Create(rec).Error
	})
	return s.finish("add", err)
}

// Update overwrites the row identified by rec's key.
func (s *Set[T]) Update(dbc dbctx.Context, rec *T) error {
	op := s.op("update")
	if rec == nil {
		return aggregates.Validation(op, "record is required")
	}
	id := s.keyOf(dbc, rec)
	if id == 0 {
		return s.finish("update", aggregates.Validation(op, "%s is required", s.pk.DBName))
	}
	if err := validateRecord(rec); err != nil {
		return s.finish("update", err)
	}
	err := s.dc.InTx(dbc, func(dbc dbctx.Context) error {
		if err := s.requireRow(dbc, op, id); err != nil {
			return err
		}
		if err := s.checkParents(dbc, op, rec); err != nil {
			return err
		}
		if err := s.checkOneToOne(dbc, op, rec, id); err != nil {
			return err
		}
		return s.dc.conn(dbc).Save(rec).Error
	})
	return s.finish("update", err)
}

// Delete removes the row and, bottom-up, every row that depends on it.
func (s *Set[T]) Delete(dbc dbctx.Context, id int64) error {
	op := s.op("delete")
	err := s.dc.InTx(dbc, func(dbc dbctx.Context) error {
		if err := s.requireRow(dbc, op, id); err != nil {
			return err
		}
		return s.dc.deleteCascade(dbc, op, s.entity.Table, []int64{id})
	})
	return s.finish("delete", err)
}

func (s *Set[T]) requireRow(dbc dbctx.Context, op string, id int64) error {
	var n int64
	if err := s.dc.conn(dbc).Model(new(T)).Where(eq(s.pk.DBName, id)).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return aggregates.NotFound(op, "%s %d not found", s.entity.Table, id)
	}
	return nil
}

func (s *Set[T]) checkParents(dbc dbctx.Context, op string, rec *T) error {
	rv := reflect.ValueOf(rec).Elem()
	for _, rel := range s.entity.Relations {
		field := s.meta.FieldsByDBName[rel.Column]
		value, zero := field.ValueOf(dbc.Context(), rv)
		if zero && field.FieldType.Kind() == reflect.Ptr {
			continue
		}
		var n int64
		if err := s.dc.conn(dbc).Table(rel.RefTable).Where(eq(rel.RefColumn, value)).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return aggregates.ConstraintViolation(op, "%s.%s=%v does not exist", rel.RefTable, rel.RefColumn, value)
		}
	}
	return nil
}

// checkOneToOne rejects a second child for a parent on unique relations.
// self excludes the row being updated.
func (s *Set[T]) checkOneToOne(dbc dbctx.Context, op string, rec *T, self int64) error {
	rv := reflect.ValueOf(rec).Elem()
	for _, rel := range s.entity.Relations {
		if !rel.Unique {
			continue
		}
		value, _ := s.meta.FieldsByDBName[rel.Column].ValueOf(dbc.Context(), rv)
		q := s.dc.conn(dbc).Model(new(T)).Where(eq(rel.Column, value))
		if self != 0 {
			q = q.Where(clause.Neq{Column: clause.Column{Name: s.pk.DBName}, Value: self})
		}
		var n int64
		if err := q.Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return aggregates.Validation(op, "%s %v already has a %s row", rel.RefTable, value, s.entity.Table)
		}
	}
	return nil
}

func (s *Set[T]) checkColumn(name, column string) error {
	if _, ok := s.meta.FieldsByDBName[column]; !ok {
		return aggregates.Validation(s.op(name), "unknown column %q", column)
	}
	return nil
}

func (s *Set[T]) keyOf(dbc dbctx.Context, rec *T) int64 {
	value, zero := s.pk.ValueOf(dbc.Context(), reflect.ValueOf(rec).Elem())
	if zero {
		return 0
	}
	id, _ := value.(int64)
	return id
}

func (s *Set[T]) orderByKey() clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Name: s.pk.DBName}}
}

func validateRecord(rec any) error {
	if v, ok := rec.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}

func eq(column string, value any) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: column}, Value: value}
}
