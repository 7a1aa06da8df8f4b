package schema

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Configuration declares the keys, indexes and relations of one aggregate.
// Units must not depend on each other's side effects: Builder merges
// declarations as sets, so any application order yields the same Definition.
type Configuration interface {
	Configure(b *Builder)
}

// ConfigurationFunc adapts a plain function to Configuration.
type ConfigurationFunc func(b *Builder)

func (f ConfigurationFunc) Configure(b *Builder) { f(b) }

// Apply runs every configuration against a fresh builder.
func Apply(configs ...Configuration) (Definition, error) {
	b := NewBuilder()
	for _, c := range configs {
		if c == nil {
			continue
		}
		c.Configure(b)
	}
	return b.Build()
}

type Builder struct {
	entities map[string]*entityState
	errs     map[string]struct{}
}

type entityState struct {
	table     string
	model     any
	key       []string
	required  map[string]struct{}
	indexes   map[string]Index
	relations map[string]Relation
}

func NewBuilder() *Builder {
	return &Builder{
		entities: map[string]*entityState{},
		errs:     map[string]struct{}{},
	}
}

// Entity opens the declarations for table. model may be nil when a unit only
// adds indexes or relations to an entity mapped elsewhere.
func (b *Builder) Entity(table string, model any, fn func(e *EntityBuilder)) {
	table = strings.TrimSpace(table)
	if table == "" {
		b.fail("entity with empty table name")
		return
	}
	e := &EntityBuilder{table: table}
	if fn != nil {
		fn(e)
	}
	b.commit(table, model, e)
}

func (b *Builder) fail(format string, args ...any) {
	b.errs[fmt.Sprintf(format, args...)] = struct{}{}
}

func (b *Builder) state(table string) *entityState {
	st, ok := b.entities[table]
	if !ok {
		st = &entityState{
			table:     table,
			required:  map[string]struct{}{},
			indexes:   map[string]Index{},
			relations: map[string]Relation{},
		}
		b.entities[table] = st
	}
	return st
}

func (b *Builder) commit(table string, model any, e *EntityBuilder) {
	st := b.state(table)

	if model != nil {
		switch {
		case st.model == nil:
			st.model = model
		case reflect.TypeOf(st.model) != reflect.TypeOf(model):
			b.fail("entity %s: conflicting models %s", table,
				sortedPair(reflect.TypeOf(st.model).String(), reflect.TypeOf(model).String()))
		}
	}

	if len(e.key) > 0 {
		switch {
		case st.key == nil:
			st.key = e.key
		case !equalStrings(st.key, e.key):
			b.fail("entity %s: conflicting primary keys %s", table,
				sortedPair(strings.Join(st.key, ","), strings.Join(e.key, ",")))
		}
	}

	for _, col := range e.required {
		st.required[col] = struct{}{}
	}

	for _, ib := range e.indexes {
		idx := ib.index(table)
		if len(idx.Columns) == 0 {
			b.fail("entity %s: index without columns", table)
			continue
		}
		prev, ok := st.indexes[idx.Name]
		if ok && !reflect.DeepEqual(prev, idx) {
			b.fail("entity %s: conflicting declarations for index %s", table, idx.Name)
			continue
		}
		st.indexes[idx.Name] = idx
	}

	for _, rb := range e.relations {
		rel := rb.relation(table)
		if rel.Column == "" || rel.RefTable == "" {
			b.fail("entity %s: relation needs a column and a parent table", table)
			continue
		}
		prev, ok := st.relations[rel.Name]
		if ok && !reflect.DeepEqual(prev, rel) {
			b.fail("entity %s: conflicting declarations for relation %s", table, rel.Name)
			continue
		}
		st.relations[rel.Name] = rel
		if rel.Unique {
			ux := Index{Name: indexName(table, []string{rel.Column}, true), Columns: []string{rel.Column}, Unique: true}
			if prev, ok := st.indexes[ux.Name]; ok && !reflect.DeepEqual(prev, ux) {
				b.fail("entity %s: conflicting declarations for index %s", table, ux.Name)
				continue
			}
			st.indexes[ux.Name] = ux
		}
	}
}

// Build resolves relation targets and returns the canonical definition.
func (b *Builder) Build() (Definition, error) {
	tables := make([]string, 0, len(b.entities))
	for t := range b.entities {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	errs := make(map[string]struct{}, len(b.errs))
	for msg := range b.errs {
		errs[msg] = struct{}{}
	}
	fail := func(format string, args ...any) { errs[fmt.Sprintf(format, args...)] = struct{}{} }

	def := Definition{Entities: make([]Entity, 0, len(tables))}
	for _, t := range tables {
		st := b.entities[t]
		if len(st.key) == 0 {
			fail("entity %s: no primary key declared", t)
		}
		ent := Entity{
			Table:      t,
			Model:      st.model,
			PrimaryKey: append([]string(nil), st.key...),
			Required:   sortedKeys(st.required),
		}
		for _, name := range sortedKeys(st.indexes) {
			ent.Indexes = append(ent.Indexes, st.indexes[name])
		}
		for _, name := range sortedKeys(st.relations) {
			rel := st.relations[name]
			parent, ok := b.entities[rel.RefTable]
			if !ok {
				fail("entity %s: relation %s references unknown table %s", t, name, rel.RefTable)
				continue
			}
			if rel.RefColumn == "" {
				if len(parent.key) != 1 {
					fail("entity %s: relation %s needs an explicit parent column", t, name)
					continue
				}
				rel.RefColumn = parent.key[0]
			}
			ent.Relations = append(ent.Relations, rel)
		}
		def.Entities = append(def.Entities, ent)
	}

	order, err := dependencyOrder(def.Entities)
	if err != nil {
		fail("%s", err.Error())
	}
	def.Order = order

	if len(errs) > 0 {
		msgs := sortedKeys(errs)
		joined := make([]error, 0, len(msgs))
		for _, m := range msgs {
			joined = append(joined, errors.New(m))
		}
		return Definition{}, fmt.Errorf("schema: %w", errors.Join(joined...))
	}
	return def, nil
}

// EntityBuilder collects one unit's declarations for a single entity.
type EntityBuilder struct {
	table     string
	key       []string
	required  []string
	indexes   []*IndexBuilder
	relations []*RelationBuilder
}

func (e *EntityBuilder) HasKey(columns ...string) *EntityBuilder {
	e.key = trimAll(columns)
	return e
}

func (e *EntityBuilder) Required(columns ...string) *EntityBuilder {
	e.required = append(e.required, trimAll(columns)...)
	return e
}

func (e *EntityBuilder) HasIndex(columns ...string) *IndexBuilder {
	ib := &IndexBuilder{columns: trimAll(columns)}
	e.indexes = append(e.indexes, ib)
	return ib
}

// BelongsTo declares a foreign key from column to parentTable. An empty
// parentColumn resolves to the parent's single-column primary key.
func (e *EntityBuilder) BelongsTo(parentTable, column, parentColumn string) *RelationBuilder {
	rb := &RelationBuilder{
		refTable:  strings.TrimSpace(parentTable),
		column:    strings.TrimSpace(column),
		refColumn: strings.TrimSpace(parentColumn),
	}
	e.relations = append(e.relations, rb)
	return rb
}

type IndexBuilder struct {
	columns []string
	unique  bool
	method  IndexMethod
}

func (ib *IndexBuilder) Unique() *IndexBuilder {
	ib.unique = true
	return ib
}

func (ib *IndexBuilder) Using(method IndexMethod) *IndexBuilder {
	ib.method = method
	return ib
}

func (ib *IndexBuilder) index(table string) Index {
	return Index{
		Name:    indexName(table, ib.columns, ib.unique),
		Columns: append([]string(nil), ib.columns...),
		Unique:  ib.unique,
		Method:  ib.method,
	}
}

type RelationBuilder struct {
	refTable  string
	column    string
	refColumn string
	onDelete  DeleteBehavior
	unique    bool
}

func (rb *RelationBuilder) OnDelete(behavior DeleteBehavior) *RelationBuilder {
	rb.onDelete = behavior
	return rb
}

// Unique makes the relation one-to-one: at most one child row per parent.
func (rb *RelationBuilder) Unique() *RelationBuilder {
	rb.unique = true
	return rb
}

func (rb *RelationBuilder) relation(table string) Relation {
	onDelete := rb.onDelete
	if onDelete == "" {
		onDelete = Restrict
	}
	return Relation{
		Name:      "fk_" + table + "_" + rb.column,
		Table:     table,
		Column:    rb.column,
		RefTable:  rb.refTable,
		RefColumn: rb.refColumn,
		OnDelete:  onDelete,
		Unique:    rb.unique,
	}
}

func indexName(table string, columns []string, unique bool) string {
	prefix := "idx_"
	if unique {
		prefix = "ux_"
	}
	return prefix + table + "_" + strings.Join(columns, "_")
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortedPair(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return "[" + a + "] and [" + b + "]"
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
