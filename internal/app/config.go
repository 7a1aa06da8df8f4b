package app

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/yungbote/yoshkaflow-backend/internal/data/db"
	"github.com/yungbote/yoshkaflow-backend/internal/observability"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
	"github.com/yungbote/yoshkaflow-backend/internal/realtime/bus"
)

const ServiceName = "yoshkaflow"

type Config struct {
	Log      LogConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    bus.RedisOptions
	Otel     observability.OtelConfig
	Metrics  MetricsConfig
	CORS     []string
	// AutoMigrate runs the registry migration before serving.
	AutoMigrate bool
}

type LogConfig struct {
	Mode   string
	Level  string
	Redact bool
}

type ServerConfig struct {
	Host string
	Port int
}

func (s ServerConfig) Addr() string { return fmt.Sprintf("%s:%d", s.Host, s.Port) }

type DatabaseConfig struct {
	db.Config
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type MetricsConfig struct {
	Enabled       bool
	RedisInterval time.Duration
}

// SetDefaults registers every key. AutomaticEnv only resolves keys viper
// already knows about.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.mode", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.redact", true)

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)

	v.SetDefault("database.driver", db.DriverPostgres)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "yoshkaflow")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.slow_threshold", 200*time.Millisecond)
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.channel", bus.DefaultChannel)

	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.environment", "development")
	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.insecure", false)
	v.SetDefault("otel.sample_ratio", 1.0)
	v.SetDefault("otel.headers", map[string]string{})

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.redis_interval", 15*time.Second)

	v.SetDefault("cors.origins", []string{})
	v.SetDefault("migrate.auto", true)
}

// NewViper returns a viper instance reading config.yaml from the usual
// locations and env vars with "." replaced by "_" (DATABASE_DSN, SERVER_PORT).
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/yoshkaflow")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads the optional config file and resolves every key. A missing
// config file is not an error.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = NewViper()
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Log: LogConfig{
			Mode:   v.GetString("log.mode"),
			Level:  v.GetString("log.level"),
			Redact: v.GetBool("log.redact"),
		},
		Server: ServerConfig{
			Host: v.GetString("server.host"),
			Port: v.GetInt("server.port"),
		},
		Database: DatabaseConfig{
			Config: db.Config{
				Driver:          strings.ToLower(strings.TrimSpace(v.GetString("database.driver"))),
				DSN:             strings.TrimSpace(v.GetString("database.dsn")),
				MaxOpenConns:    v.GetInt("database.max_open_conns"),
				MaxIdleConns:    v.GetInt("database.max_idle_conns"),
				ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
				SlowThreshold:   v.GetDuration("database.slow_threshold"),
				LogLevel:        v.GetString("database.log_level"),
			},
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			Name:     v.GetString("database.name"),
			SSLMode:  v.GetString("database.sslmode"),
		},
		Redis: bus.RedisOptions{
			Addr:     strings.TrimSpace(v.GetString("redis.addr")),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			Channel:  v.GetString("redis.channel"),
		},
		Otel: observability.OtelConfig{
			Enabled:     v.GetBool("otel.enabled"),
			ServiceName: ServiceName,
			Environment: v.GetString("otel.environment"),
			Version:     Version,
			Endpoint:    strings.TrimSpace(v.GetString("otel.endpoint")),
			Headers:     v.GetStringMapString("otel.headers"),
			Insecure:    v.GetBool("otel.insecure"),
			SampleRatio: v.GetFloat64("otel.sample_ratio"),
		},
		Metrics: MetricsConfig{
			Enabled:       v.GetBool("metrics.enabled"),
			RedisInterval: v.GetDuration("metrics.redis_interval"),
		},
		CORS:        v.GetStringSlice("cors.origins"),
		AutoMigrate: v.GetBool("migrate.auto"),
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = cfg.Database.assembleDSN()
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Database.Driver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported database.driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("config: database.dsn is required for %s", c.Database.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid server.port %d", c.Server.Port)
	}
	return nil
}

// assembleDSN builds a postgres URL from the discrete database keys. sqlite
// has no discrete form.
func (d DatabaseConfig) assembleDSN() string {
	if d.Driver != db.DriverPostgres {
		return ""
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	if d.Password != "" {
		u.User = url.UserPassword(d.User, d.Password)
	} else if d.User != "" {
		u.User = url.User(d.User)
	}
	q := url.Values{}
	if d.SSLMode != "" {
		q.Set("sslmode", d.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (l LogConfig) Options() logger.Options {
	return logger.Options{Level: l.Level, DisableRedaction: !l.Redact}
}
