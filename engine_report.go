package goForge

import (
	"time"

	"github.com/MrEthical07/goForge/alg"
)

type EngineReport struct {
	Algorithms            []string
	ECDSAEncoding         alg.ECDSAEncoding
	NoneVariants          []string
	ResignConfusionActive bool
	MaxConcurrentRuns     int
	ProgressEvery         uint64
	InferenceActive       bool
	WeakSecretCount       int
	VaultActive           bool
	VaultPrefix           string
	VaultTTL              time.Duration
	AuditActive           bool
	AuditBufferSize       int
	MetricsActive         bool
	LatencyHistograms     bool
	ActiveCrackRuns       int
}

// SupportedAlgorithms returns the registry in canonical order, None first.
func (e *Engine) SupportedAlgorithms() []alg.Spec {
	return alg.Supported()
}

func (e *Engine) EngineReport() EngineReport {
	if e == nil {
		return EngineReport{}
	}

	specs := alg.Supported()
	names := make([]string, 0, len(specs))
	for _, spec := range specs {
		names = append(names, spec.String())
	}

	return EngineReport{
		Algorithms:            names,
		ECDSAEncoding:         e.config.Algorithms.ECDSAEncoding,
		NoneVariants:          cloneStrings(e.config.Attack.NoneVariants),
		ResignConfusionActive: e.config.Attack.IncludeResignConfusion,
		MaxConcurrentRuns:     e.config.Crack.MaxConcurrentRuns,
		ProgressEvery:         e.config.Crack.ProgressEvery,
		InferenceActive:       e.config.Crack.InferAlgorithmFromSignature,
		WeakSecretCount:       len(e.weakSecrets),
		VaultActive:           e.vault != nil,
		VaultPrefix:           e.config.Vault.RedisPrefix,
		VaultTTL:              e.config.Vault.TTL,
		AuditActive:           e.audit != nil,
		AuditBufferSize:       e.config.Audit.BufferSize,
		MetricsActive:         e.metrics.Enabled(),
		LatencyHistograms:     e.metrics.LatencyEnabled(),
		ActiveCrackRuns:       e.ActiveCrackRuns(),
	}
}
