package db

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/yoshkaflow-backend/internal/data/schema"
)

// Migrate creates tables from the mapped models, then applies the registry's
// indexes and, on postgres, its foreign keys.
func (dc *DataContext) Migrate(ctx context.Context) error {
	gdb := dc.db.WithContext(ctx)
	dc.log.Info("Auto migrating tables...", "tables", len(dc.def.Order))
	if err := gdb.AutoMigrate(dc.def.Models()...); err != nil {
		dc.log.Error("Auto migration failed", "error", err)
		return fmt.Errorf("auto migrate: %w", err)
	}
	postgres := gdb.Dialector.Name() == DriverPostgres
	for _, table := range dc.def.Tables() {
		ent, _ := dc.def.Entity(table)
		for _, idx := range ent.Indexes {
			if idx.Method == schema.MethodGIN && !postgres {
				continue
			}
			if err := gdb.Exec(createIndexSQL(gdb, table, idx)).Error; err != nil {
				dc.log.Error("Index migration failed", "index", idx.Name, "error", err)
				return fmt.Errorf("create %s: %w", idx.Name, err)
			}
		}
	}
	if !postgres {
		return nil
	}
	for _, table := range dc.def.Tables() {
		for _, rel := range dc.def.Parents(table) {
			if gdb.Migrator().HasConstraint(table, rel.Name) {
				continue
			}
			if err := gdb.Exec(addForeignKeySQL(gdb, rel)).Error; err != nil {
				dc.log.Error("Foreign key migration failed", "constraint", rel.Name, "error", err)
				return fmt.Errorf("create %s: %w", rel.Name, err)
			}
		}
	}
	return nil
}

func createIndexSQL(gdb *gorm.DB, table string, idx schema.Index) string {
	var b strings.Builder
	b.WriteString("CREATE ")
	if idx.Unique {
		b.WriteString("UNIQUE ")
	}
	b.WriteString("INDEX IF NOT EXISTS ")
	gdb.Dialector.QuoteTo(&b, idx.Name)
	b.WriteString(" ON ")
	gdb.Dialector.QuoteTo(&b, table)
	if idx.Method == schema.MethodGIN {
		b.WriteString(" USING GIN")
	}
	b.WriteString(" (")
	for i, col := range idx.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		gdb.Dialector.QuoteTo(&b, col)
	}
	b.WriteString(")")
	return b.String()
}

func addForeignKeySQL(gdb *gorm.DB, rel schema.Relation) string {
	var b strings.Builder
	b.WriteString("ALTER TABLE ")
	gdb.Dialector.QuoteTo(&b, rel.Table)
	b.WriteString(" ADD CONSTRAINT ")
	gdb.Dialector.QuoteTo(&b, rel.Name)
	b.WriteString(" FOREIGN KEY (")
	gdb.Dialector.QuoteTo(&b, rel.Column)
	b.WriteString(") REFERENCES ")
	gdb.Dialector.QuoteTo(&b, rel.RefTable)
	b.WriteString(" (")
	gdb.Dialector.QuoteTo(&b, rel.RefColumn)
	b.WriteString(") ON DELETE ")
	if rel.OnDelete == schema.Cascade {
		b.WriteString("CASCADE")
	} else {
		b.WriteString("RESTRICT")
	}
	return b.String()
}
