package db

import (
	"fmt"
	"reflect"

	"gorm.io/gorm"
	gormschema "gorm.io/gorm/schema"

	"github.com/yungbote/yoshkaflow-backend/internal/data/schema"
	"github.com/yungbote/yoshkaflow-backend/internal/domain/products"
	"github.com/yungbote/yoshkaflow-backend/internal/domain/research"
	"github.com/yungbote/yoshkaflow-backend/internal/domain/user"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/dbctx"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

// Observer is notified once per data context operation. It must be safe for
// concurrent use.
type Observer func(table, op string, err error)

// DataContext is the unit-of-work facade over the store: one typed collection
// per registered entity, backed by a shared connection pool and the registry.
type DataContext struct {
	db      *gorm.DB
	def     schema.Definition
	log     *logger.Logger
	schemas map[string]*gormschema.Schema
	observe Observer

	users            *Set[user.User]
	products         *Set[products.Product]
	researchTasks    *Set[research.ResearchTask]
	evidence         *Set[research.Evidence]
	metrics          *Set[research.Metric]
	confidenceScores *Set[research.ConfidenceScore]
	patternTracking  *Set[research.PatternTracking]
	dataGaps         *Set[research.DataGap]
}

// NewDataContext checks def against the gorm mapping of every model and
// fails when they disagree.
func NewDataContext(gdb *gorm.DB, def schema.Definition, baseLog *logger.Logger) (*DataContext, error) {
	if gdb == nil {
		return nil, fmt.Errorf("data context: nil db")
	}
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	dc := &DataContext{
		db:      gdb,
		def:     def,
		log:     baseLog.With("component", "DataContext"),
		schemas: make(map[string]*gormschema.Schema, len(def.Entities)),
	}
	for _, ent := range def.Entities {
		meta, err := dc.verify(ent)
		if err != nil {
			return nil, fmt.Errorf("data context: %w", err)
		}
		dc.schemas[ent.Table] = meta
	}
	for _, ent := range def.Entities {
		for _, rel := range ent.Relations {
			parent := dc.schemas[rel.RefTable]
			if parent == nil || !isKeyField(parent.FieldsByDBName[rel.RefColumn]) {
				return nil, fmt.Errorf("data context: relation %s targets %s.%s which is not an integer column", rel.Name, rel.RefTable, rel.RefColumn)
			}
		}
	}

	var err error
	if dc.users, err = newSet[user.User](dc, user.TableName); err != nil {
		return nil, err
	}
	if dc.products, err = newSet[products.Product](dc, products.TableName); err != nil {
		return nil, err
	}
	if dc.researchTasks, err = newSet[research.ResearchTask](dc, research.TaskTableName); err != nil {
		return nil, err
	}
	if dc.evidence, err = newSet[research.Evidence](dc, research.EvidenceTableName); err != nil {
		return nil, err
	}
	if dc.metrics, err = newSet[research.Metric](dc, research.MetricTableName); err != nil {
		return nil, err
	}
	if dc.confidenceScores, err = newSet[research.ConfidenceScore](dc, research.ConfidenceScoreTableName); err != nil {
		return nil, err
	}
	if dc.patternTracking, err = newSet[research.PatternTracking](dc, research.PatternTrackingTableName); err != nil {
		return nil, err
	}
	if dc.dataGaps, err = newSet[research.DataGap](dc, research.DataGapTableName); err != nil {
		return nil, err
	}
	return dc, nil
}

func (dc *DataContext) verify(ent schema.Entity) (*gormschema.Schema, error) {
	if ent.Model == nil {
		return nil, fmt.Errorf("entity %s has no model", ent.Table)
	}
	stmt := &gorm.Statement{DB: dc.db}
	if err := stmt.Parse(ent.Model); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ent.Table, err)
	}
	meta := stmt.Schema
	if meta.Table != ent.Table {
		return nil, fmt.Errorf("entity %s maps to table %s", ent.Table, meta.Table)
	}
	if len(ent.PrimaryKey) != 1 {
		return nil, fmt.Errorf("entity %s: only single-column keys are supported", ent.Table)
	}
	pk := meta.PrioritizedPrimaryField
	if pk == nil || pk.DBName != ent.PrimaryKey[0] || !isKeyField(pk) {
		return nil, fmt.Errorf("entity %s: primary key %s is not the model's integer key", ent.Table, ent.PrimaryKey[0])
	}
	for _, col := range ent.Required {
		f, ok := meta.FieldsByDBName[col]
		if !ok {
			return nil, fmt.Errorf("entity %s: required column %s is not mapped", ent.Table, col)
		}
		if !f.NotNull {
			return nil, fmt.Errorf("entity %s: required column %s is nullable", ent.Table, col)
		}
	}
	for _, idx := range ent.Indexes {
		for _, col := range idx.Columns {
			if _, ok := meta.FieldsByDBName[col]; !ok {
				return nil, fmt.Errorf("entity %s: index %s uses unmapped column %s", ent.Table, idx.Name, col)
			}
		}
	}
	for _, rel := range ent.Relations {
		if !isKeyField(meta.FieldsByDBName[rel.Column]) {
			return nil, fmt.Errorf("entity %s: relation %s column %s is not an integer column", ent.Table, rel.Name, rel.Column)
		}
	}
	return meta, nil
}

func isKeyField(f *gormschema.Field) bool {
	if f == nil {
		return false
	}
	t := f.FieldType
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.Int64
}

// SetObserver installs fn as the operation hook. Call before serving.
func (dc *DataContext) SetObserver(fn Observer) { dc.observe = fn }

func (dc *DataContext) record(table, op string, err error) {
	if dc.observe != nil {
		dc.observe(table, op, err)
	}
}

func (dc *DataContext) DB() *gorm.DB                  { return dc.db }
func (dc *DataContext) Definition() schema.Definition { return dc.def }
func (dc *DataContext) Ping() error                   { return Ping(dc.db) }

func (dc *DataContext) Users() *Set[user.User]                           { return dc.users }
func (dc *DataContext) Products() *Set[products.Product]                 { return dc.products }
func (dc *DataContext) ResearchTasks() *Set[research.ResearchTask]       { return dc.researchTasks }
func (dc *DataContext) Evidence() *Set[research.Evidence]                { return dc.evidence }
func (dc *DataContext) Metrics() *Set[research.Metric]                   { return dc.metrics }
func (dc *DataContext) ConfidenceScores() *Set[research.ConfidenceScore] { return dc.confidenceScores }
func (dc *DataContext) PatternTracking() *Set[research.PatternTracking]  { return dc.patternTracking }
func (dc *DataContext) DataGaps() *Set[research.DataGap]                 { return dc.dataGaps }

// conn returns the caller's transaction when there is one, else the pool.
func (dc *DataContext) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dc.db
	}
	return transaction.WithContext(dbc.Context())
}

// InTx runs fn in a unit of work. An open transaction on dbc is reused so
// nested calls commit or roll back together.
func (dc *DataContext) InTx(dbc dbctx.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if dbc.Tx != nil {
		return fn(dbc)
	}
	return dc.db.WithContext(dbc.Context()).Transaction(func(tx *gorm.DB) error {
		return fn(dbc.WithTx(tx))
	})
}

func (dc *DataContext) newModel(table string) any {
	ent, _ := dc.def.Entity(table)
	return reflect.New(reflect.TypeOf(ent.Model).Elem()).Interface()
}
