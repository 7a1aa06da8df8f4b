package schema

import (
	"fmt"
	"sort"
	"strings"
)

type IndexMethod string

const (
	MethodDefault IndexMethod = ""
	MethodGIN     IndexMethod = "gin"
)

type DeleteBehavior string

const (
	Cascade  DeleteBehavior = "cascade"
	Restrict DeleteBehavior = "restrict"
)

type Index struct {
	Name    string      `yaml:"name"`
	Columns []string    `yaml:"columns"`
	Unique  bool        `yaml:"unique,omitempty"`
	Method  IndexMethod `yaml:"method,omitempty"`
}

// Relation is a child-to-parent foreign key owned by Table.
type Relation struct {
	Name      string         `yaml:"name"`
	Table     string         `yaml:"table"`
	Column    string         `yaml:"column"`
	RefTable  string         `yaml:"references_table"`
	RefColumn string         `yaml:"references_column"`
	OnDelete  DeleteBehavior `yaml:"on_delete"`
	Unique    bool           `yaml:"unique,omitempty"`
}

type Entity struct {
	Table      string     `yaml:"table"`
	Model      any        `yaml:"-"`
	PrimaryKey []string   `yaml:"primary_key"`
	Required   []string   `yaml:"required,omitempty"`
	Indexes    []Index    `yaml:"indexes,omitempty"`
	Relations  []Relation `yaml:"relations,omitempty"`
}

// Definition is the merged, canonical result of every configuration unit.
// Entities are sorted by table; Order lists tables parents first.
type Definition struct {
	Entities []Entity `yaml:"entities"`
	Order    []string `yaml:"order"`
}

func (d Definition) Entity(table string) (Entity, bool) {
	i := sort.Search(len(d.Entities), func(i int) bool { return d.Entities[i].Table >= table })
	if i < len(d.Entities) && d.Entities[i].Table == table {
		return d.Entities[i], true
	}
	return Entity{}, false
}

// Tables returns table names with every parent before its children.
func (d Definition) Tables() []string {
	return append([]string(nil), d.Order...)
}

// Models returns the mapped models in dependency order, for migrations.
func (d Definition) Models() []any {
	out := make([]any, 0, len(d.Order))
	for _, t := range d.Order {
		if e, ok := d.Entity(t); ok && e.Model != nil {
			out = append(out, e.Model)
		}
	}
	return out
}

// Parents returns the relations table declares toward its parents.
func (d Definition) Parents(table string) []Relation {
	e, ok := d.Entity(table)
	if !ok {
		return nil
	}
	return append([]Relation(nil), e.Relations...)
}

// Dependents returns every relation that points at table, sorted by child
// table then relation name.
func (d Definition) Dependents(table string) []Relation {
	var out []Relation
	for _, e := range d.Entities {
		for _, r := range e.Relations {
			if r.RefTable == table {
				out = append(out, r)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Table != out[j].Table {
			return out[i].Table < out[j].Table
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// dependencyOrder is Kahn's algorithm with a name-sorted frontier so ties
// resolve the same way regardless of declaration order.
func dependencyOrder(entities []Entity) ([]string, error) {
	indeg := make(map[string]int, len(entities))
	children := make(map[string][]string, len(entities))
	for _, e := range entities {
		if _, ok := indeg[e.Table]; !ok {
			indeg[e.Table] = 0
		}
		seen := map[string]bool{}
		for _, r := range e.Relations {
			if r.RefTable == e.Table || seen[r.RefTable] {
				continue
			}
			seen[r.RefTable] = true
			indeg[e.Table]++
			children[r.RefTable] = append(children[r.RefTable], e.Table)
		}
	}

	var frontier []string
	for t, n := range indeg {
		if n == 0 {
			frontier = append(frontier, t)
		}
	}
	sort.Strings(frontier)

	order := make([]string, 0, len(indeg))
	for len(frontier) > 0 {
		t := frontier[0]
		frontier = frontier[1:]
		order = append(order, t)
		for _, c := range children[t] {
			indeg[c]--
			if indeg[c] == 0 {
				frontier = append(frontier, c)
			}
		}
		sort.Strings(frontier)
	}

	if len(order) != len(indeg) {
		var cyclic []string
		for t, n := range indeg {
			if n > 0 {
				cyclic = append(cyclic, t)
			}
		}
		sort.Strings(cyclic)
		return order, fmt.Errorf("relation cycle between %s", strings.Join(cyclic, ", "))
	}
	return order, nil
}
