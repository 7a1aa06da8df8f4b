package research

import (
	"gorm.io/datatypes"

	"github.com/yungbote/yoshkaflow-backend/internal/domain/aggregates"
)

const MetricTableName = "metrics"

type Metric struct {
	MetricID        int64          `gorm:"primaryKey;autoIncrement;column:metric_id" json:"metric_id"`
	TaskID          int64          `gorm:"not null;column:task_id" json:"task_id"`
	MetricName      string         `gorm:"size:255;not null;column:metric_name" json:"metric_name" validate:"notblank,max=255"`
	RawData         datatypes.JSON `gorm:"column:raw_data" json:"raw_data,omitempty" validate:"jsondoc"`
	PatternAnalysis datatypes.JSON `gorm:"column:pattern_analysis" json:"pattern_analysis,omitempty" validate:"jsondoc"`
	ConfidenceScore *float64       `gorm:"column:confidence_score" json:"confidence_score,omitempty"`
	EvidenceQuality *float64       `gorm:"column:evidence_quality" json:"evidence_quality,omitempty"`
}

func (Metric) TableName() string { return MetricTableName }

func (m *Metric) Validate() error {
	return aggregates.ValidateStruct("metric.validate", m)
}
