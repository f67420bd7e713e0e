package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/infinitysurge/pentaauth"
	"github.com/infinitysurge/pentaauth/credential"
	"github.com/infinitysurge/pentaauth/permission"
	"github.com/infinitysurge/pentaauth/storage"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds CLI settings read from the environment.
type Config struct {
	LogLevel  string `env:"PENTAAUTH_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"PENTAAUTH_LOG_FORMAT" envDefault:"console"`

	Storage       string `env:"PENTAAUTH_STORAGE" envDefault:"file"`
	StateDir      string `env:"PENTAAUTH_STATE_DIR" envDefault:".pentaauth"`
	RedisAddr     string `env:"PENTAAUTH_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPrefix   string `env:"PENTAAUTH_REDIS_PREFIX" envDefault:"pentaauth"`
	PostgresURL   string `env:"PENTAAUTH_POSTGRES_URL"`
	PostgresTable string `env:"PENTAAUTH_POSTGRES_TABLE" envDefault:"pentaauth_kv"`

	AuthURL          string        `env:"PENTAAUTH_AUTH_URL"`
	SimulatedLatency time.Duration `env:"PENTAAUTH_SIMULATED_LATENCY" envDefault:"0s"`
	LoginTimeout     time.Duration `env:"PENTAAUTH_LOGIN_TIMEOUT" envDefault:"10s"`
	MaxLoginsPerSec  float64       `env:"PENTAAUTH_MAX_LOGINS_PER_SECOND" envDefault:"0"`

	PolicyFile string `env:"PENTAAUTH_POLICY_FILE"`
	AuditLog   bool   `env:"PENTAAUTH_AUDIT_LOG" envDefault:"false"`
	ListenAddr string `env:"PENTAAUTH_LISTEN_ADDR" envDefault:"127.0.0.1:8080"`
}

// LoadConfig reads a .env file when present, then the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) newLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	switch strings.ToLower(c.LogFormat) {
	case "json":
		zc = zap.NewProductionConfig()
	case "console", "":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// openStorage returns the configured backend and a function releasing it.
func (c *Config) openStorage(ctx context.Context) (storage.Storage, io.Closer, error) {
	switch strings.ToLower(c.Storage) {
	case "file":
		return storage.NewFile(c.StateDir), nil, nil
	case "memory":
		return storage.NewMemory(), nil, nil
	case "none":
		return storage.Noop{}, nil, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		return storage.NewRedis(client, c.RedisPrefix), client, nil
	case "postgres":
		if c.PostgresURL == "" {
			return nil, nil, errors.New("PENTAAUTH_POSTGRES_URL is required for postgres storage")
		}
		db, err := storage.OpenPostgres(ctx, c.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		pg, err := storage.NewPostgres(db, c.PostgresTable)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return pg, db, nil
	}
	return nil, nil, fmt.Errorf("unknown storage %q", c.Storage)
}

func (c *Config) gateway() credential.Gateway {
	if c.AuthURL == "" {
		return nil
	}
	return credential.NewHTTPGateway(c.AuthURL, &http.Client{Timeout: c.LoginTimeout})
}

func (c *Config) engineConfig() pentaauth.Config {
	cfg := pentaauth.DefaultConfig()
	cfg.Login.SimulatedLatency = c.SimulatedLatency
	cfg.Login.Timeout = c.LoginTimeout
	cfg.Login.MaxAttemptsPerSecond = c.MaxLoginsPerSec
	cfg.Audit.Enabled = c.AuditLog
	cfg.Audit.Transitions = c.AuditLog
	return cfg
}

// buildEngine wires an Engine from c. The returned function releases every
// resource the engine holds.
func (c *Config) buildEngine(ctx context.Context, logger *zap.Logger) (*pentaauth.Engine, func(), error) {
	backend, closer, err := c.openStorage(ctx)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if closer != nil {
			_ = closer.Close()
		}
	}

	b := pentaauth.New().
		WithConfig(c.engineConfig()).
		WithStorage(backend).
		WithLogger(logger)

	if gw := c.gateway(); gw != nil {
		b.WithGateway(gw)
	}
	if c.AuditLog {
		b.WithAuditSink(pentaauth.NewZapSink(logger.Named("audit")))
	}
	if c.PolicyFile != "" {
		policy, nav, err := permission.LoadTablesFile(c.PolicyFile)
		if err != nil {
			release()
			return nil, nil, err
		}
		b.WithPolicy(policy).WithNavigation(nav)
	}

	engine, err := b.Build()
	if err != nil {
		release()
		return nil, nil, err
	}
	return engine, func() {
		engine.Close()
		release()
	}, nil
}
