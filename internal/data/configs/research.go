package configs

import (
	"github.com/yungbote/yoshkaflow-backend/internal/data/schema"
	"github.com/yungbote/yoshkaflow-backend/internal/domain/products"
	"github.com/yungbote/yoshkaflow-backend/internal/domain/research"
)

// ResearchConfiguration maps the research aggregate. Everything below a
// product is owned by it and goes away with it.
type ResearchConfiguration struct{}

func (ResearchConfiguration) Configure(b *schema.Builder) {
	b.Entity(research.TaskTableName, &research.ResearchTask{}, func(e *schema.EntityBuilder) {
		e.HasKey("task_id").Required("product_id", "category", "subtask", "status")
		e.HasIndex("category")
		e.BelongsTo(products.TableName, "product_id", "product_id").OnDelete(schema.Cascade)
	})

	b.Entity(research.EvidenceTableName, &research.Evidence{}, func(e *schema.EntityBuilder) {
		e.HasKey("evidence_id").Required("task_id", "source_type")
		e.HasIndex("source_type")
		e.BelongsTo(research.TaskTableName, "task_id", "task_id").OnDelete(schema.Cascade)
	})

	b.Entity(research.MetricTableName, &research.Metric{}, func(e *schema.EntityBuilder) {
		e.HasKey("metric_id").Required("task_id", "metric_name")
		e.HasIndex("metric_name")
		e.HasIndex("raw_data").Using(schema.MethodGIN)
		e.HasIndex("pattern_analysis").Using(schema.MethodGIN)
		e.BelongsTo(research.TaskTableName, "task_id", "task_id").OnDelete(schema.Cascade)
	})

	b.Entity(research.ConfidenceScoreTableName, &research.ConfidenceScore{}, func(e *schema.EntityBuilder) {
		e.HasKey("confidence_id").Required("metric_id")
		e.HasIndex("overall_confidence_score")
		e.BelongsTo(research.MetricTableName, "metric_id", "metric_id").OnDelete(schema.Cascade).Unique()
	})

	b.Entity(research.PatternTrackingTableName, &research.PatternTracking{}, func(e *schema.EntityBuilder) {
		e.HasKey("pattern_id").Required("metric_id")
		e.HasIndex(research.ColumnPerformancePatterns).Using(schema.MethodGIN)
		e.HasIndex(research.ColumnInnovationPatterns).Using(schema.MethodGIN)
		e.HasIndex(research.ColumnMarketPatterns).Using(schema.MethodGIN)
		e.BelongsTo(research.MetricTableName, "metric_id", "metric_id").OnDelete(schema.Cascade).Unique()
	})

	b.Entity(research.DataGapTableName, &research.DataGap{}, func(e *schema.EntityBuilder) {
		e.HasKey("gap_id").Required("task_id")
		e.HasIndex("gap_description")
		e.BelongsTo(research.TaskTableName, "task_id", "task_id").OnDelete(schema.Cascade)
	})
}
