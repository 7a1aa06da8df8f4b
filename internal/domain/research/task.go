package research

import (
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/yoshkaflow-backend/internal/domain/aggregates"
)

const (
	TaskTableName = "research_tasks"

	StatusPending = "pending"
)

type ResearchTask struct {
	TaskID        int64   `gorm:"primaryKey;autoIncrement;column:task_id" json:"task_id"`
	ProductID     int64   `gorm:"not null;column:product_id" json:"product_id"`
	Category      string  `gorm:"size:255;not null;column:category" json:"category" validate:"notblank,max=255"`
	Subtask       string  `gorm:"size:255;not null;column:subtask" json:"subtask" validate:"notblank,max=255"`
	Status        string  `gorm:"size:50;not null;default:'pending';column:status" json:"status" validate:"max=50"`
	AssignedAgent *string `gorm:"size:255;column:assigned_agent" json:"assigned_agent,omitempty" validate:"omitempty,max=255"`
}

func (ResearchTask) TableName() string { return TaskTableName }

// ApplyDefaults sets status to pending when it is unset.
func (t *ResearchTask) ApplyDefaults() {
	if strings.TrimSpace(t.Status) == "" {
		t.Status = StatusPending
	}
}

func (t *ResearchTask) Validate() error {
	t.ApplyDefaults()
	return aggregates.ValidateStruct("research_task.validate", t)
}

func (t *ResearchTask) BeforeSave(*gorm.DB) error {
	t.ApplyDefaults()
	return nil
}
