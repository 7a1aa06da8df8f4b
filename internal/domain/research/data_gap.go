package research

import (
	"gorm.io/datatypes"

	"github.com/yungbote/yoshkaflow-backend/internal/domain/aggregates"
)

const DataGapTableName = "data_gaps"

type DataGap struct {
	GapID                   int64          `gorm:"primaryKey;autoIncrement;column:gap_id" json:"gap_id"`
	TaskID                  int64          `gorm:"not null;column:task_id" json:"task_id"`
	GapDescription          *string        `gorm:"column:gap_description" json:"gap_description,omitempty"`
	ImpactOnConfidenceScore *float64       `gorm:"column:impact_on_confidence_score" json:"impact_on_confidence_score,omitempty"`
	AlternativeMetricsUsed  datatypes.JSON `gorm:"column:alternative_metrics_used" json:"alternative_metrics_used,omitempty" validate:"jsondoc"`
}

func (DataGap) TableName() string { return DataGapTableName }

func (g *DataGap) Validate() error {
	return aggregates.ValidateStruct("data_gap.validate", g)
}
