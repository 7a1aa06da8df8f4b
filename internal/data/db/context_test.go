package db

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/yoshkaflow-backend/internal/data/configs"
	"github.com/yungbote/yoshkaflow-backend/internal/data/schema"
	"github.com/yungbote/yoshkaflow-backend/internal/domain/aggregates"
	"github.com/yungbote/yoshkaflow-backend/internal/domain/products"
	"github.com/yungbote/yoshkaflow-backend/internal/domain/research"
	"github.com/yungbote/yoshkaflow-backend/internal/domain/user"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/dbctx"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

func newTestContext(t *testing.T) *DataContext {
	t.Helper()
	gdb, err := Open(Config{
		Driver:       DriverSQLite,
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		LogLevel:     "silent",
	}, logger.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	def, err := configs.Definition()
	if err != nil {
		t.Fatalf("definition: %v", err)
	}
	dc, err := NewDataContext(gdb, def, logger.Nop())
	if err != nil {
		t.Fatalf("data context: %v", err)
	}
	if err := dc.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return dc
}

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }

func count(t *testing.T, dc *DataContext, table string) int64 {
	t.Helper()
	var n int64
	if err := dc.DB().Table(table).Count(&n).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestAddThenGetReturnsEquivalentUser(t *testing.T) {
	dc := newTestContext(t)
	dbc := dbctx.From(context.Background())

	u := &user.User{Name: "Ada", Email: "ada@example.com"}
	if err := dc.Users().Add(dbc, u); err != nil {
		t.Fatalf("add: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("expected generated id")
	}
	got, err := dc.Users().Get(dbc, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *got != *u {
		t.Fatalf("get: got=%+v want=%+v", got, u)
	}

	list, err := dc.Users().List(dbc)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v %d", err, len(list))
	}
}

func TestAddRejectsClientSuppliedKey(t *testing.T) {
	dc := newTestContext(t)
	dbc := dbctx.From(context.Background())

	err := dc.Users().Add(dbc, &user.User{ID: 4242, Name: "Ada", Email: "ada@example.com"})
	if !aggregates.IsCode(err, aggregates.CodeValidation) {
		t.Fatalf("expected validation, got %v", err)
	}
	if n := count(t, dc, user.TableName); n != 0 {
		t.Fatalf("expected no users, got %d", n)
	}

	u := &user.User{Name: "Ada", Email: "ada@example.com"}
	if err := dc.Users().Add(dbc, u); err != nil {
		t.Fatalf("add: %v", err)
	}
	if u.ID == 4242 || u.ID == 0 {
		t.Fatalf("expected a store-generated id, got %d", u.ID)
	}
}

func TestMissingRowsAreNotFound(t *testing.T) {
	dc := newTestContext(t)
	dbc := dbctx.From(context.Background())

	if _, err := dc.Users().Get(dbc, 99); !aggregates.IsCode(err, aggregates.CodeNotFound) {
		t.Fatalf("get: expected not found, got %v", err)
	}
	err := dc.Users().Update(dbc, &user.User{ID: 99, Name: "x", Email: "y"})
	if !aggregates.IsCode(err, aggregates.CodeNotFound) {
		t.Fatalf("update: expected not found, got %v", err)
	}
	if err := dc.Users().Delete(dbc, 99); !aggregates.IsCode(err, aggregates.CodeNotFound) {
		t.Fatalf("delete: expected not found, got %v", err)
	}
	if _, err := dc.Products().FirstBy(dbc, "name", "nope"); !aggregates.IsCode(err, aggregates.CodeNotFound) {
		t.Fatalf("first by: expected not found, got %v", err)
	}
}

func TestWritesAreValidated(t *testing.T) {
	dc := newTestContext(t)
	dbc := dbctx.From(context.Background())

	if err := dc.Users().Add(dbc, &user.User{Name: " ", Email: "a@b"}); !aggregates.IsCode(err, aggregates.CodeValidation) {
		t.Fatalf("blank name: expected validation, got %v", err)
	}
	long := strings.Repeat("x", 256)
	if err := dc.Products().Add(dbc, &products.Product{Name: long}); !aggregates.IsCode(err, aggregates.CodeValidation) {
		t.Fatalf("long name: expected validation, got %v", err)
	}
	if err := dc.Users().Update(dbc, &user.User{Name: "a", Email: "b"}); !aggregates.IsCode(err, aggregates.CodeValidation) {
		t.Fatalf("update without id: expected validation, got %v", err)
	}
	if _, err := dc.Users().ListBy(dbc, "name; drop table users", "x"); !aggregates.IsCode(err, aggregates.CodeValidation) {
		t.Fatalf("unknown column: expected validation, got %v", err)
	}
}

func TestAddRequiresExistingParent(t *testing.T) {
	dc := newTestContext(t)
	dbc := dbctx.From(context.Background())

	err := dc.ResearchTasks().Add(dbc, &research.ResearchTask{ProductID: 42, Category: "market", Subtask: "pricing"})
	if !aggregates.IsCode(err, aggregates.CodeConstraintViolation) {
		t.Fatalf("expected constraint violation, got %v", err)
	}
	if n := count(t, dc, research.TaskTableName); n != 0 {
		t.Fatalf("expected no tasks, got %d", n)
	}
}

func TestUpdateRestoresPendingStatus(t *testing.T) {
	dc := newTestContext(t)
	dbc := dbctx.From(context.Background())

	p := &products.Product{Name: "Widget"}
	if err := dc.Products().Add(dbc, p); err != nil {
		t.Fatalf("add product: %v", err)
	}
	task := &research.ResearchTask{ProductID: p.ProductID, Category: "market", Subtask: "pricing", Status: "done"}
	if err := dc.ResearchTasks().Add(dbc, task); err != nil {
		t.Fatalf("add task: %v", err)
	}
	task.Status = ""
	if err := dc.ResearchTasks().Update(dbc, task); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := dc.ResearchTasks().Get(dbc, task.TaskID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != research.StatusPending {
		t.Fatalf("status: got %q", got.Status)
	}
}

type tree struct {
	product *products.Product
	task    *research.ResearchTask
	metric  *research.Metric
}

func seedTree(t *testing.T, dc *DataContext, dbc dbctx.Context, name string) tree {
	t.Helper()
	p := &products.Product{Name: name}
	if err := dc.Products().Add(dbc, p); err != nil {
		t.Fatalf("add product: %v", err)
	}
	task := &research.ResearchTask{ProductID: p.ProductID, Category: "market", Subtask: "pricing"}
	if err := dc.ResearchTasks().Add(dbc, task); err != nil {
		t.Fatalf("add task: %v", err)
	}
	if err := dc.Evidence().Add(dbc, &research.Evidence{TaskID: task.TaskID, SourceType: "report", SourceURL: strPtr("https://example.com")}); err != nil {
		t.Fatalf("add evidence: %v", err)
	}
	m := &research.Metric{TaskID: task.TaskID, MetricName: "share", RawData: datatypes.JSON(`{"region":"eu"}`)}
	if err := dc.Metrics().Add(dbc, m); err != nil {
		t.Fatalf("add metric: %v", err)
	}
	if err := dc.DataGaps().Add(dbc, &research.DataGap{TaskID: task.TaskID, GapDescription: strPtr("no q3 data")}); err != nil {
		t.Fatalf("add gap: %v", err)
	}
	if err := dc.ConfidenceScores().Add(dbc, &research.ConfidenceScore{MetricID: m.MetricID, OverallConfidenceScore: f64Ptr(0.7)}); err != nil {
		t.Fatalf("add score: %v", err)
	}
	if err := dc.PatternTracking().Add(dbc, &research.PatternTracking{MetricID: m.MetricID, MarketPatterns: datatypes.JSON(`["growth"]`)}); err != nil {
		t.Fatalf("add patterns: %v", err)
	}
	return tree{product: p, task: task, metric: m}
}

func TestDeleteProductRemovesEveryDescendant(t *testing.T) {
	dc := newTestContext(t)
	dbc := dbctx.From(context.Background())

	doomed := seedTree(t, dc, dbc, "Widget")
	kept := seedTree(t, dc, dbc, "Gadget")

	if err := dc.Products().Delete(dbc, doomed.product.ProductID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, table := range []string{"research_tasks", "evidence", "metrics", "data_gaps", "confidence_scores", "pattern_tracking"} {
		if n := count(t, dc, table); n != 1 {
			t.Fatalf("%s: expected only the kept tree's row, got %d", table, n)
		}
	}
	tasks, err := dc.ResearchTasks().ListBy(dbc, "product_id", doomed.product.ProductID)
	if err != nil || len(tasks) != 0 {
		t.Fatalf("tasks of deleted product: %v %d", err, len(tasks))
	}
	if _, err := dc.Metrics().Get(dbc, kept.metric.MetricID); err != nil {
		t.Fatalf("kept metric: %v", err)
	}
}

func TestMetricChildrenAreUnique(t *testing.T) {
	dc := newTestContext(t)
	dbc := dbctx.From(context.Background())
	tr := seedTree(t, dc, dbc, "Widget")

	err := dc.ConfidenceScores().Add(dbc, &research.ConfidenceScore{MetricID: tr.metric.MetricID})
	if !aggregates.IsCode(err, aggregates.CodeValidation) {
		t.Fatalf("second score: expected validation, got %v", err)
	}
	err = dc.PatternTracking().Add(dbc, &research.PatternTracking{MetricID: tr.metric.MetricID})
	if !aggregates.IsCode(err, aggregates.CodeValidation) {
		t.Fatalf("second patterns: expected validation, got %v", err)
	}

	score, err := dc.ConfidenceScores().FirstBy(dbc, "metric_id", tr.metric.MetricID)
	if err != nil {
		t.Fatalf("first by: %v", err)
	}
	score.PatternConfirmation = f64Ptr(0.5)
	if err := dc.ConfidenceScores().Update(dbc, score); err != nil {
		t.Fatalf("updating the only score must pass: %v", err)
	}
}

func TestInTxRollsBackOnError(t *testing.T) {
	dc := newTestContext(t)
	boom := errors.New("boom")

	err := dc.InTx(dbctx.From(context.Background()), func(dbc dbctx.Context) error {
		if err := dc.Users().Add(dbc, &user.User{Name: "a", Email: "b"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if n := count(t, dc, user.TableName); n != 0 {
		t.Fatalf("expected rollback, found %d users", n)
	}
}

func TestObserverSeesOperations(t *testing.T) {
	dc := newTestContext(t)
	var mu sync.Mutex
	seen := map[string]int{}
	dc.SetObserver(func(table, op string, err error) {
		mu.Lock()
		defer mu.Unlock()
		key := table + "." + op
		if err != nil {
			key += ".err"
		}
		seen[key]++
	})
	dbc := dbctx.From(context.Background())
	_ = dc.Users().Add(dbc, &user.User{Name: "a", Email: "b"})
	_, _ = dc.Users().Get(dbc, 1000)

	if seen["users.add"] != 1 || seen["users.get.err"] != 1 {
		t.Fatalf("unexpected observations: %v", seen)
	}
}

func TestMigrateIsRepeatable(t *testing.T) {
	dc := newTestContext(t)
	if err := dc.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if !dc.DB().Migrator().HasIndex(research.ConfidenceScoreTableName, "ux_confidence_scores_metric_id") {
		t.Fatal("expected unique metric index")
	}
}

func TestNewDataContextRejectsMismatchedMapping(t *testing.T) {
	dc := newTestContext(t)
	bad := configs.All()
	bad = append(bad, schema.ConfigurationFunc(func(b *schema.Builder) {
		b.Entity(user.TableName, nil, func(e *schema.EntityBuilder) {
			e.Required("nickname")
		})
	}))
	def, err := schema.Apply(bad...)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := NewDataContext(dc.DB(), def, logger.Nop()); err == nil || !strings.Contains(err.Error(), "nickname") {
		t.Fatalf("expected mapping error, got %v", err)
	}
}

func TestCreateIndexSQL(t *testing.T) {
	dc := newTestContext(t)
	got := createIndexSQL(dc.DB(), "metrics", schema.Index{Name: "ux_metrics_a_b", Columns: []string{"a", "b"}, Unique: true})
	want := "CREATE UNIQUE INDEX IF NOT EXISTS `ux_metrics_a_b` ON `metrics` (`a`, `b`)"
	if got != want {
		t.Fatalf("sql:\n got=%s\nwant=%s", got, want)
	}
}
