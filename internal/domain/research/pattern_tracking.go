package research

import (
	"gorm.io/datatypes"

	"github.com/yungbote/yoshkaflow-backend/internal/domain/aggregates"
)

const PatternTrackingTableName = "pattern_tracking"

// Pattern document columns, addressable by containment lookups.
const (
	ColumnPerformancePatterns = "performance_patterns"
	ColumnInnovationPatterns  = "innovation_patterns"
	ColumnMarketPatterns      = "market_patterns"
)

type PatternTracking struct {
	PatternID           int64          `gorm:"primaryKey;autoIncrement;column:pattern_id" json:"pattern_id"`
	MetricID            int64          `gorm:"not null;column:metric_id" json:"metric_id"`
	PerformancePatterns datatypes.JSON `gorm:"column:performance_patterns" json:"performance_patterns,omitempty" validate:"jsondoc"`
	InnovationPatterns  datatypes.JSON `gorm:"column:innovation_patterns" json:"innovation_patterns,omitempty" validate:"jsondoc"`
	MarketPatterns      datatypes.JSON `gorm:"column:market_patterns" json:"market_patterns,omitempty" validate:"jsondoc"`
}

func (PatternTracking) TableName() string { return PatternTrackingTableName }

func (p *PatternTracking) Validate() error {
	return aggregates.ValidateStruct("pattern_tracking.validate", p)
}
