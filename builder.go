package pentaauth

import (
	"context"
	"errors"

	"github.com/infinitysurge/pentaauth/credential"
	"github.com/infinitysurge/pentaauth/permission"
	"github.com/infinitysurge/pentaauth/session"
	"github.com/infinitysurge/pentaauth/storage"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Builder configures an [Engine]. A Builder is single use.
type Builder struct {
	config Config

	gateway    credential.Gateway
	backend    storage.Storage
	policy     *permission.Policy
	navigation *permission.Navigation
	logger     *zap.Logger
	auditSink  AuditSink

	built bool
}

// New returns a Builder seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithGateway sets the credential backend. Without one, Build uses a
// [credential.StaticGateway] over [credential.DefaultAccounts].
func (b *Builder) WithGateway(gw credential.Gateway) *Builder {
	b.gateway = gw
	return b
}

// WithStorage sets where the last-known principal is persisted. Without one
// the session lives in memory only.
func (b *Builder) WithStorage(backend storage.Storage) *Builder {
	b.backend = backend
	return b
}

func (b *Builder) WithPolicy(p *permission.Policy) *Builder {
	b.policy = p
	return b
}

func (b *Builder) WithNavigation(n *permission.Navigation) *Builder {
	b.navigation = n
	return b
}

func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration, wires the engine, and, when
// Session.RehydrateOnBuild is set, restores the persisted principal.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	gw := b.gateway
	if gw == nil {
		static, err := credential.NewStaticGateway(
			credential.DefaultAccounts(),
			credential.WithDelay(cfg.Login.SimulatedLatency),
		)
		if err != nil {
			return nil, err
		}
		gw = static
	}
	if cfg.Login.MaxAttemptsPerSecond > 0 {
		gw = credential.Throttled(gw, rate.NewLimiter(rate.Limit(cfg.Login.MaxAttemptsPerSecond), cfg.Login.Burst))
	}

	backend := b.backend
	if backend == nil {
		backend = storage.NewMemory()
	}

	policy := b.policy
	if policy == nil {
		policy = permission.DefaultPolicy()
	}
	navigation := b.navigation
	if navigation == nil {
		navigation = permission.DefaultNavigation()
	}

	engine := &Engine{
		config:     cfg,
		store:      session.NewStore(),
		gateway:    gw,
		persister:  session.NewPersister(backend, cfg.Session.StorageKey, logger),
		policy:     policy,
		navigation: navigation,
		logger:     logger,
	}
	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	if engine.audit != nil && cfg.Audit.Transitions {
		engine.untrack = engine.auditTransitions()
	}
	engine.metrics = NewMetrics(cfg.Metrics)

	b.built = true

	if cfg.Session.RehydrateOnBuild {
		engine.Rehydrate(context.Background())
	}

	return engine, nil
}
