package research

import "github.com/yungbote/yoshkaflow-backend/internal/domain/aggregates"

const ConfidenceScoreTableName = "confidence_scores"

// ConfidenceScore breaks a metric's confidence into its four components.
// A metric owns at most one score.
type ConfidenceScore struct {
	ConfidenceID                int64    `gorm:"primaryKey;autoIncrement;column:confidence_id" json:"confidence_id"`
	MetricID                    int64    `gorm:"not null;column:metric_id" json:"metric_id"`
	PrimaryDataAvailability     *float64 `gorm:"column:primary_data_availability" json:"primary_data_availability,omitempty"`
	AlternativeDataQuality      *float64 `gorm:"column:alternative_data_quality" json:"alternative_data_quality,omitempty"`
	ValidationComprehensiveness *float64 `gorm:"column:validation_comprehensiveness" json:"validation_comprehensiveness,omitempty"`
	PatternConfirmation         *float64 `gorm:"column:pattern_confirmation" json:"pattern_confirmation,omitempty"`
	OverallConfidenceScore      *float64 `gorm:"column:overall_confidence_score" json:"overall_confidence_score,omitempty"`
}

func (ConfidenceScore) TableName() string { return ConfidenceScoreTableName }

func (c *ConfidenceScore) Validate() error {
	return aggregates.ValidateStruct("confidence_score.validate", c)
}
