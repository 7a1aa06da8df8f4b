package research

import (
	"time"

	"github.com/yungbote/yoshkaflow-backend/internal/domain/aggregates"
)

const EvidenceTableName = "evidence"

type Evidence struct {
	EvidenceID       int64      `gorm:"primaryKey;autoIncrement;column:evidence_id" json:"evidence_id"`
	TaskID           int64      `gorm:"not null;column:task_id" json:"task_id"`
	SourceType       string     `gorm:"size:255;not null;column:source_type" json:"source_type" validate:"notblank,max=255"`
	ValidationMethod *string    `gorm:"size:255;column:validation_method" json:"validation_method,omitempty" validate:"omitempty,max=255"`
	DateAccessed     *time.Time `gorm:"column:date_accessed" json:"date_accessed,omitempty"`
	Verified         bool       `gorm:"not null;default:false;column:verified" json:"verified"`
	Credibility      *float64   `gorm:"column:credibility" json:"credibility,omitempty"`
	SourceURL        *string    `gorm:"column:source_url" json:"source_url,omitempty"`
	Notes            *string    `gorm:"column:notes" json:"notes,omitempty"`
}

func (Evidence) TableName() string { return EvidenceTableName }

func (e *Evidence) Validate() error {
	return aggregates.ValidateStruct("evidence.validate", e)
}
