package goForge

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrEthical07/goForge/alg"
	"github.com/MrEthical07/goForge/attack"
)

// Config defines a public type used by goForge APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Algorithms AlgorithmsConfig
	Attack     AttackConfig
	Crack      CrackConfig
	Vault      VaultConfig
	Audit      AuditConfig
	Metrics    MetricsConfig
}

/*
====================================
ALGORITHMS CONFIG
====================================
*/

// AlgorithmsConfig defines a public type used by goForge APIs.
//
// AlgorithmsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AlgorithmsConfig struct {
	ECDSAEncoding alg.ECDSAEncoding // raw R||S (default) or DER
}

/*
====================================
ATTACK CONFIG
====================================
*/

// AttackConfig defines a public type used by goForge APIs.
//
// AttackConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AttackConfig struct {
	NoneVariants           []string
	IncludeResignConfusion bool
}

/*
====================================
CRACK CONFIG
====================================
*/

// CrackConfig defines a public type used by goForge APIs.
//
// CrackConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CrackConfig struct {
	MaxConcurrentRuns           int
	ProgressEvery               uint64
	InferAlgorithmFromSignature bool
}

/*
====================================
VAULT CONFIG
====================================
*/

// VaultConfig defines a public type used by goForge APIs.
//
// VaultConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type VaultConfig struct {
	Enabled     bool
	RedisPrefix string
	TTL         time.Duration // 0 keeps recoveries until deleted
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by goForge APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by goForge APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultConfig() Config {
	return Config{
		Algorithms: AlgorithmsConfig{
			ECDSAEncoding: alg.EncodingRaw,
		},
		Attack: AttackConfig{
			NoneVariants:           attack.DefaultNoneVariants(),
			IncludeResignConfusion: false,
		},
		Crack: CrackConfig{
			MaxConcurrentRuns:           4,
			ProgressEvery:               10000,
			InferAlgorithmFromSignature: false,
		},
		Vault: VaultConfig{
			Enabled:     false,
			RedisPrefix: "gfv",
			TTL:         0,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig may return an error when input validation, dependency calls, or security checks fail.
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

// AggressiveConfig describes the aggressiveconfig operation and its observable behavior.
//
// AggressiveConfig may return an error when input validation, dependency calls, or security checks fail.
// AggressiveConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func AggressiveConfig() Config {
	cfg := defaultConfig()
	cfg.Attack.NoneVariants = attack.ExtendedNoneVariants()
	cfg.Attack.IncludeResignConfusion = true
	cfg.Crack.MaxConcurrentRuns = 8
	cfg.Crack.ProgressEvery = 50000
	cfg.Crack.InferAlgorithmFromSignature = true
	return cfg
}

// HighThroughputConfig describes the highthroughputconfig operation and its observable behavior.
//
// HighThroughputConfig may return an error when input validation, dependency calls, or security checks fail.
// HighThroughputConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func HighThroughputConfig() Config {
	cfg := defaultConfig()
	cfg.Crack.MaxConcurrentRuns = 16
	cfg.Crack.ProgressEvery = 100000
	cfg.Audit.BufferSize = 4096
	cfg.Metrics.Enabled = true
	cfg.Metrics.EnableLatencyHistograms = true
	return cfg
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Attack.NoneVariants = cloneStrings(cfg.Attack.NoneVariants)
	return out
}

func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Algorithms
	switch c.Algorithms.ECDSAEncoding {
	case alg.EncodingRaw, alg.EncodingDER:
		// valid
	default:
		return errors.New("Algorithms ECDSAEncoding must be raw or DER")
	}

	// Attack
	if len(c.Attack.NoneVariants) == 0 {
		return errors.New("Attack NoneVariants must not be empty")
	}
	for _, v := range c.Attack.NoneVariants {
		if v == "" {
			return errors.New("Attack NoneVariants entries must be non-empty")
		}
	}

	// Crack
	if c.Crack.MaxConcurrentRuns <= 0 {
		return errors.New("Crack MaxConcurrentRuns must be > 0")
	}
	if c.Crack.MaxConcurrentRuns > 4096 {
		return errors.New("Crack MaxConcurrentRuns is too large")
	}

	// Vault
	if c.Vault.Enabled {
		if c.Vault.RedisPrefix == "" {
			return errors.New("Vault RedisPrefix must not be empty")
		}
		if c.Vault.TTL < 0 {
			return errors.New("Vault TTL must be >= 0")
		}
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when Enabled")
	}

	return nil
}

/*
====================================
CONFIG LINT
====================================
*/

// LintSeverity defines a public type used by goForge APIs.
//
// LintSeverity instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LintSeverity int

const (
	// LintLow is an exported constant or variable used by the token engine.
	LintLow LintSeverity = iota
	// LintMedium is an exported constant or variable used by the token engine.
	LintMedium
	// LintHigh is an exported constant or variable used by the token engine.
	LintHigh
)

// String returns the severity label used in lint output.
func (s LintSeverity) String() string {
	switch s {
	case LintLow:
		return "LOW"
	case LintMedium:
		return "MEDIUM"
	case LintHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// LintWarning defines a public type used by goForge APIs.
//
// LintWarning instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LintWarning struct {
	Code     string
	Severity LintSeverity
	Message  string
}

// LintWarnings defines a public type used by goForge APIs.
//
// LintWarnings instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LintWarnings []LintWarning

// Codes returns the warning codes in emission order.
func (ws LintWarnings) Codes() []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Code)
	}
	return out
}

// BySeverity returns the warnings at or above the given severity.
func (ws LintWarnings) BySeverity(min LintSeverity) LintWarnings {
	var out LintWarnings
	for _, w := range ws {
		if w.Severity >= min {
			out = append(out, w)
		}
	}
	return out
}

// AsError describes the aserror operation and its observable behavior.
//
// AsError may return an error when input validation, dependency calls, or security checks fail.
// AsError does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (ws LintWarnings) AsError(min LintSeverity) error {
	matched := ws.BySeverity(min)
	if len(matched) == 0 {
		return nil
	}
	return fmt.Errorf("config lint: %d warning(s) at or above %s: %s",
		len(matched), min, strings.Join(matched.Codes(), ", "))
}

// Lint describes the lint operation and its observable behavior.
//
// Lint reports advisory warnings for risky or contradictory settings that Validate accepts.
// Lint does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Lint() LintWarnings {
	var ws LintWarnings
	warn := func(code string, sev LintSeverity, msg string) {
		ws = append(ws, LintWarning{Code: code, Severity: sev, Message: msg})
	}

	if !c.Audit.Enabled {
		warn("audit_disabled", LintMedium,
			"attack operations leave no audit trail")
	}
	if c.Attack.IncludeResignConfusion && !c.Audit.Enabled {
		warn("resign_confusion_unaudited", LintHigh,
			"confusion re-signing mints verifiable tokens with no audit trail")
	}
	if c.Audit.Enabled && !c.Audit.DropIfFull {
		warn("audit_blocking", LintMedium,
			"a slow audit sink stalls attack operations once the buffer fills")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 64 {
		warn("audit_buffer_small", LintLow,
			"an audit buffer under 64 sheds or stalls events under bursts")
	}
	if c.Vault.Enabled && c.Vault.TTL == 0 {
		warn("vault_no_ttl", LintHigh,
			"recovered secrets persist in redis until deleted by hand")
	}
	if c.Metrics.EnableLatencyHistograms && !c.Metrics.Enabled {
		warn("histograms_without_metrics", LintMedium,
			"latency histograms are ignored while metrics are disabled")
	}
	if c.Crack.MaxConcurrentRuns > 64 {
		warn("max_runs_high", LintLow,
			"far more concurrent crack runs than cores thrash the scheduler")
	}
	if c.Crack.ProgressEvery > 0 && c.Crack.ProgressEvery < 1000 {
		warn("progress_every_low", LintLow,
			"frequent progress callbacks slow the candidate loop")
	}
	if c.Algorithms.ECDSAEncoding == alg.EncodingDER {
		warn("ecdsa_der_encoding", LintLow,
			"DER-encoded ECDSA signatures fail standard JOSE verifiers")
	}

	return ws
}
