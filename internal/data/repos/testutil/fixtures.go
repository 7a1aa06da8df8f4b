package testutil

import (
	"testing"

	"gorm.io/datatypes"

	"github.com/yungbote/yoshkaflow-backend/internal/data/db"
	types "github.com/yungbote/yoshkaflow-backend/internal/domain"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/dbctx"
)

func SeedUser(tb testing.TB, dc *db.DataContext, dbc dbctx.Context, email string) *types.User {
	tb.Helper()
	u := &types.User{Name: "A", Email: email}
	if err := dc.Users().Add(dbc, u); err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProduct(tb testing.TB, dc *db.DataContext, dbc dbctx.Context, name string) *types.Product {
	tb.Helper()
	p := &types.Product{Name: name}
	if err := dc.Products().Add(dbc, p); err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

func SeedResearchTask(tb testing.TB, dc *db.DataContext, dbc dbctx.Context, productID int64, category, subtask string) *types.ResearchTask {
	tb.Helper()
	t := &types.ResearchTask{ProductID: productID, Category: category, Subtask: subtask}
	if err := dc.ResearchTasks().Add(dbc, t); err != nil {
		tb.Fatalf("seed research task: %v", err)
	}
	return t
}

func SeedEvidence(tb testing.TB, dc *db.DataContext, dbc dbctx.Context, taskID int64) *types.Evidence {
	tb.Helper()
	e := &types.Evidence{TaskID: taskID, SourceType: "report"}
	if err := dc.Evidence().Add(dbc, e); err != nil {
		tb.Fatalf("seed evidence: %v", err)
	}
	return e
}

func SeedMetric(tb testing.TB, dc *db.DataContext, dbc dbctx.Context, taskID int64, name, rawData string) *types.Metric {
	tb.Helper()
	m := &types.Metric{TaskID: taskID, MetricName: name}
	if rawData != "" {
		m.RawData = datatypes.JSON(rawData)
	}
	if err := dc.Metrics().Add(dbc, m); err != nil {
		tb.Fatalf("seed metric: %v", err)
	}
	return m
}

func SeedConfidenceScore(tb testing.TB, dc *db.DataContext, dbc dbctx.Context, metricID int64, overall float64) *types.ConfidenceScore {
	tb.Helper()
	c := &types.ConfidenceScore{MetricID: metricID, OverallConfidenceScore: &overall}
	if err := dc.ConfidenceScores().Add(dbc, c); err != nil {
		tb.Fatalf("seed confidence score: %v", err)
	}
	return c
}

func SeedPatternTracking(tb testing.TB, dc *db.DataContext, dbc dbctx.Context, metricID int64, marketPatterns string) *types.PatternTracking {
	tb.Helper()
	p := &types.PatternTracking{MetricID: metricID}
	if marketPatterns != "" {
		p.MarketPatterns = datatypes.JSON(marketPatterns)
	}
	if err := dc.PatternTracking().Add(dbc, p); err != nil {
		tb.Fatalf("seed pattern tracking: %v", err)
	}
	return p
}

func SeedDataGap(tb testing.TB, dc *db.DataContext, dbc dbctx.Context, taskID int64, description string) *types.DataGap {
	tb.Helper()
	g := &types.DataGap{TaskID: taskID, GapDescription: &description}
	if err := dc.DataGaps().Add(dbc, g); err != nil {
		tb.Fatalf("seed data gap: %v", err)
	}
	return g
}
