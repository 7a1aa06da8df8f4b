package testutil

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/yoshkaflow-backend/internal/data/configs"
	"github.com/yungbote/yoshkaflow-backend/internal/data/db"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/dbctx"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

var (
	pgOnce sync.Once
	pgDC   *db.DataContext
	pgErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DataContext returns a migrated data context. With TEST_POSTGRES_DSN set
// every test shares one postgres database; otherwise each test gets its own
// in-memory sqlite database.
func DataContext(tb testing.TB) *db.DataContext {
	tb.Helper()
	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		pgOnce.Do(func() {
			pgDC, pgErr = open(db.Config{Driver: db.DriverPostgres, DSN: dsn, LogLevel: "silent"})
		})
		if pgErr != nil {
			tb.Fatalf("failed to init test db: %v", pgErr)
		}
		return pgDC
	}

	dc, err := open(db.Config{
		Driver:       db.DriverSQLite,
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	if err != nil {
		tb.Fatalf("failed to init test db: %v", err)
	}
	tb.Cleanup(func() {
		if sqlDB, err := dc.DB().DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return dc
}

func open(cfg db.Config) (*db.DataContext, error) {
	gdb, err := db.Open(cfg, logger.Nop())
	if err != nil {
		return nil, err
	}
	def, err := configs.Definition()
	if err != nil {
		return nil, err
	}
	dc, err := db.NewDataContext(gdb, def, logger.Nop())
	if err != nil {
		return nil, err
	}
	if err := dc.Migrate(context.Background()); err != nil {
		return nil, err
	}
	return dc, nil
}

// Tx opens a transaction that is rolled back when the test ends.
func Tx(tb testing.TB, dc *db.DataContext) dbctx.Context {
	tb.Helper()
	tx := dc.DB().Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return dbctx.Context{Ctx: context.Background(), Tx: tx}
}
