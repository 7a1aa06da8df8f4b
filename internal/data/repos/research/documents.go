package research

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/yoshkaflow-backend/internal/data/db"
	"github.com/yungbote/yoshkaflow-backend/internal/domain/aggregates"
)

// findByDocument loads rows whose column holds value at keys.
func findByDocument[T any](q *gorm.DB, op, column string, value any, keys []string) ([]*T, error) {
	if len(keys) == 0 {
		return nil, aggregates.Validation(op, "document path is required")
	}
	match, err := documentMatch(q, column, value, keys)
	if err != nil {
		return nil, aggregates.Validation(op, "document value: %v", err)
	}
	var out []*T
	if err := q.Where(match).Find(&out).Error; err != nil {
		return nil, db.MapError(op, err)
	}
	return out, nil
}

// documentMatch builds the equality test for value at keys. On postgres it is
// a jsonb containment check the GIN index on column serves, with value keeping
// its JSON type; other dialects compare the extracted value.
func documentMatch(q *gorm.DB, column string, value any, keys []string) (clause.Expression, error) {
	if q.Dialector.Name() != db.DriverPostgres {
		return datatypes.JSONQuery(column).Equals(value, keys...), nil
	}
	doc := value
	for i := len(keys) - 1; i >= 0; i-- {
		doc = map[string]any{keys[i]: doc}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return clause.Expr{SQL: "? @> ?::jsonb", Vars: []any{clause.Column{Name: column}, string(raw)}}, nil
}

// findWithDocumentKey loads rows whose column has a value at keys.
func findWithDocumentKey[T any](q *gorm.DB, op, column string, keys []string) ([]*T, error) {
	if len(keys) == 0 {
		return nil, aggregates.Validation(op, "document path is required")
	}
	var out []*T
	if err := q.Where(datatypes.JSONQuery(column).HasKey(keys...)).Find(&out).Error; err != nil {
		return nil, db.MapError(op, err)
	}
	return out, nil
}
