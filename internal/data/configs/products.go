package configs

import (
	"github.com/yungbote/yoshkaflow-backend/internal/data/schema"
	"github.com/yungbote/yoshkaflow-backend/internal/domain/products"
)

type ProductConfiguration struct{}

func (ProductConfiguration) Configure(b *schema.Builder) {
	b.Entity(products.TableName, &products.Product{}, func(e *schema.EntityBuilder) {
		e.HasKey("product_id").Required("name")
		e.HasIndex("name")
	})
}
