package goForge

import (
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goForge/alg"
	"github.com/MrEthical07/goForge/crack"
	internalaudit "github.com/MrEthical07/goForge/internal/audit"
	"github.com/MrEthical07/goForge/vault"
)

// Builder defines a public type used by goForge APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	auditSink   AuditSink
	weakSecrets []string

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// WithWeakSecrets describes the withweaksecrets operation and its observable behavior.
//
// WithWeakSecrets may return an error when input validation, dependency calls, or security checks fail.
// WithWeakSecrets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithWeakSecrets(secrets []string) *Builder {
	b.weakSecrets = secrets
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if cfg.Vault.Enabled && b.redis == nil {
		return nil, errors.New("Vault requires redis client")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// -------- ALGORITHM SUITE --------
	suite := alg.NewSuite(alg.Config{
		ECDSAEncoding: cfg.Algorithms.ECDSAEncoding,
	})

	engine := &Engine{
		config: cloneConfig(cfg),
		suite:  suite,
		runs:   make(map[uuid.UUID]*crack.Run),
	}

	// -------- SECRET VAULT --------
	if cfg.Vault.Enabled {
		engine.vault = vault.NewStore(b.redis, cfg.Vault.RedisPrefix, cfg.Vault.TTL)
	}

	engine.audit = internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	// -------- WEAK SECRET LIST --------
	engine.weakSecrets = cloneStrings(b.weakSecrets)
	if len(engine.weakSecrets) == 0 {
		engine.weakSecrets = crack.DefaultWeakSecrets()
	}

	b.built = true

	return engine, nil
}
