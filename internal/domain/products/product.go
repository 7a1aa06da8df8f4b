package products

import (
	"time"

	"github.com/yungbote/yoshkaflow-backend/internal/domain/aggregates"
)

const TableName = "products"

// Product is the root of the research aggregate: every ResearchTask hangs off one.
type Product struct {
	ProductID          int64      `gorm:"primaryKey;autoIncrement;column:product_id" json:"product_id"`
	Name               string     `gorm:"size:255;not null;column:name" json:"name" validate:"notblank,max=255"`
	Industry           *string    `gorm:"size:255;column:industry" json:"industry,omitempty" validate:"omitempty,max=255"`
	GeographicCoverage *string    `gorm:"size:255;column:geographic_coverage" json:"geographic_coverage,omitempty" validate:"omitempty,max=255"`
	TimeHorizon        *string    `gorm:"size:50;column:time_horizon" json:"time_horizon,omitempty" validate:"omitempty,max=50"`
	AnalysisDate       *time.Time `gorm:"column:analysis_date" json:"analysis_date,omitempty"`
}

func (Product) TableName() string { return TableName }

func (p *Product) Validate() error {
	return aggregates.ValidateStruct("product.validate", p)
}
