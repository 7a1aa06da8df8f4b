package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/yoshkaflow-backend/internal/data/configs"
	"github.com/yungbote/yoshkaflow-backend/internal/data/db"
	"github.com/yungbote/yoshkaflow-backend/internal/http"
	httpH "github.com/yungbote/yoshkaflow-backend/internal/http/handlers"
	"github.com/yungbote/yoshkaflow-backend/internal/observability"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
	"github.com/yungbote/yoshkaflow-backend/internal/realtime/bus"
)

const Version = httpH.APIVersion

type App struct {
	Log      *logger.Logger
	Cfg      Config
	DB       *gorm.DB
	Data     *db.DataContext
	Metrics  *observability.Metrics
	Events   bus.Bus
	Repos    Repos
	Services Services
	Router   *gin.Engine

	server          *http.Server
	shutdownTracing func(context.Context) error
	cancel          context.CancelFunc
}

// New builds the logger, store, registry and every layer above it.
func New(ctx context.Context, cfg Config) (*App, error) {
	log, err := logger.NewWithOptions(cfg.Log.Mode, cfg.Log.Options())
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	a, err := build(ctx, cfg, log)
	if err != nil {
		log.Sync()
		return nil, err
	}
	return a, nil
}

func build(ctx context.Context, cfg Config, log *logger.Logger) (*App, error) {
	a := &App{Log: log, Cfg: cfg}
	a.shutdownTracing = observability.InitOTel(ctx, log, cfg.Otel)

	dc, err := OpenData(ctx, cfg, log)
	if err != nil {
		_ = a.shutdownTracing(ctx)
		return nil, err
	}
	a.Data = dc
	a.DB = dc.DB()

	if cfg.Metrics.Enabled {
		a.Metrics = observability.NewMetrics()
		if err := a.Metrics.RegisterDB(ServiceName, a.DB); err != nil {
			log.Warn("db stats collector not registered", "error", err)
		}
		dc.SetObserver(a.Metrics.ObserveStore)
	}

	events, err := wireEvents(log, cfg.Redis)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Events = events

	a.Repos = wireRepos(dc, log)
	a.Services = wireServices(log, a.Repos, events)
	handlers := wireHandlers(log, dc, a.Services)
	a.server = http.NewServer(routerConfig(log, cfg, a.Metrics, handlers))
	a.Router = a.server.Engine
	return a, nil
}

// OpenData connects to the store and binds the entity registry to it,
// migrating first when migrate.auto is set.
func OpenData(ctx context.Context, cfg Config, log *logger.Logger) (*db.DataContext, error) {
	gdb, err := db.Open(cfg.Database.Config, log)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Database.Driver, err)
	}
	def, err := configs.Definition()
	if err != nil {
		closeDB(gdb)
		return nil, fmt.Errorf("entity registry: %w", err)
	}
	dc, err := db.NewDataContext(gdb, def, log)
	if err != nil {
		closeDB(gdb)
		return nil, fmt.Errorf("data context: %w", err)
	}
	if cfg.AutoMigrate {
		if err := dc.Migrate(ctx); err != nil {
			closeDB(gdb)
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return dc, nil
}

func wireEvents(log *logger.Logger, opts bus.RedisOptions) (bus.Bus, error) {
	if opts.Addr == "" {
		log.Info("redis.addr not set, research task events are dropped")
		return bus.NewNoopBus(), nil
	}
	b, err := bus.NewRedisBus(log, opts)
	if err != nil {
		return nil, fmt.Errorf("init redis event bus: %w", err)
	}
	return b, nil
}

// Start launches the background workers: the event forwarder and the redis
// metrics collector.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	eventLog := a.Log.With("component", "events")
	if err := a.Events.StartForwarder(ctx, func(evt bus.Event) {
		eventLog.Info("research task event",
			"type", evt.Type,
			"entity", evt.Entity,
			"id", evt.ID,
			"parent_id", evt.ParentID,
			"status", evt.Status,
		)
	}); err != nil {
		a.Log.Warn("event forwarder not started", "error", err)
	}
	if a.Cfg.Metrics.Enabled {
		a.Metrics.StartRedisCollector(ctx, a.Log, a.Cfg.Redis.Addr, a.Cfg.Metrics.RedisInterval)
	}
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return errors.New("app not initialized")
	}
	a.Start()
	return a.server.Run(ctx, a.Cfg.Server.Addr())
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.Events != nil {
		if err := a.Events.Close(); err != nil {
			a.Log.Warn("event bus close failed", "error", err)
		}
	}
	if a.shutdownTracing != nil {
		if err := a.shutdownTracing(context.Background()); err != nil {
			a.Log.Warn("tracing shutdown failed", "error", err)
		}
	}
	closeDB(a.DB)
	if a.Log != nil {
		a.Log.Sync()
	}
}

func closeDB(gdb *gorm.DB) {
	if gdb == nil {
		return
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
