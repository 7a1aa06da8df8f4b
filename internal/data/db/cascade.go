package db

import (
	"gorm.io/gorm/clause"

	"github.com/yungbote/yoshkaflow-backend/internal/data/schema"
	"github.com/yungbote/yoshkaflow-backend/internal/domain/aggregates"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/dbctx"
)

// deleteCascade deletes ids from table after recursively deleting every
// dependent row. Restrict relations with live children abort the delete.
func (dc *DataContext) deleteCascade(dbc dbctx.Context, op, table string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	conn := dc.conn(dbc)
	pk := dc.schemas[table].PrioritizedPrimaryField.DBName

	for _, rel := range dc.def.Dependents(table) {
		refs := ids
		if rel.RefColumn != pk {
			refs = nil
			if err := conn.Table(table).Where(in(pk, ids)).Pluck(rel.RefColumn, &refs).Error; err != nil {
				return err
			}
		}
		if len(refs) == 0 {
			continue
		}

		childPK := dc.schemas[rel.Table].PrioritizedPrimaryField.DBName
		var children []int64
		if err := conn.Table(rel.Table).Where(in(rel.Column, refs)).Order(childPK).Pluck(childPK, &children).Error; err != nil {
			return err
		}
		if len(children) == 0 {
			continue
		}
		if rel.OnDelete != schema.Cascade {
			return aggregates.ConstraintViolation(op, "%d %s rows still reference %s", len(children), rel.Table, table)
		}
		if err := dc.deleteCascade(dbc, op, rel.Table, children); err != nil {
			return err
		}
	}

	return conn.Where(in(pk, ids)).Delete(dc.newModel(table)).Error
}

func in(column string, ids []int64) clause.IN {
	values := make([]interface{}, len(ids))
	for i, id := range ids {
		values[i] = id
	}
	return clause.IN{Column: clause.Column{Name: column}, Values: values}
}
