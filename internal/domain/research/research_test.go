package research

import (
	"testing"

	"gorm.io/datatypes"

	"github.com/yungbote/yoshkaflow-backend/internal/domain/aggregates"
)

func TestResearchTaskDefaultsStatus(t *testing.T) {
	task := &ResearchTask{ProductID: 1, Category: "market", Subtask: "pricing"}
	if err := task.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if task.Status != StatusPending {
		t.Fatalf("status: got=%q want=%q", task.Status, StatusPending)
	}

	task.Status = "  "
	if err := task.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave: %v", err)
	}
	if task.Status != StatusPending {
		t.Fatalf("status after BeforeSave: got=%q", task.Status)
	}

	task.Status = "done"
	task.ApplyDefaults()
	if task.Status != "done" {
		t.Fatalf("explicit status overwritten: %q", task.Status)
	}
}

func TestResearchTaskRequiresCategoryAndSubtask(t *testing.T) {
	err := (&ResearchTask{ProductID: 1}).Validate()
	if !aggregates.IsCode(err, aggregates.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMetricDocumentsAreValidatedOnRead(t *testing.T) {
	ok := &Metric{TaskID: 1, MetricName: "share", RawData: datatypes.JSON(`{"q1":"12%"}`)}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	bad := &Metric{TaskID: 1, MetricName: "share", PatternAnalysis: datatypes.JSON(`"text"`)}
	if err := bad.Validate(); !aggregates.IsCode(err, aggregates.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestEvidenceRequiresSourceType(t *testing.T) {
	if err := (&Evidence{TaskID: 1}).Validate(); !aggregates.IsCode(err, aggregates.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := (&Evidence{TaskID: 1, SourceType: "report"}).Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
