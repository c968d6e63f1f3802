package goForge

import (
	"io"

	internalaudit "github.com/MrEthical07/goForge/internal/audit"
	internalmetrics "github.com/MrEthical07/goForge/internal/metrics"
)

// AuditEvent is the structured record emitted for every audited engine
// operation. TokenFP carries the SHA-256 fingerprint of the token signing
// input; secret material never appears in any field.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine’s audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// io.Writer, one object per line.
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// MetricID identifies a specific counter or histogram bucket in the
// in-process metrics system.
type MetricID = internalmetrics.MetricID

const (
	// MetricParseSuccess is an exported constant or variable used by the token engine.
	MetricParseSuccess = MetricID(internalmetrics.MetricParseSuccess)
	// MetricParseFailure is an exported constant or variable used by the token engine.
	MetricParseFailure = MetricID(internalmetrics.MetricParseFailure)
	// MetricSerialize is an exported constant or variable used by the token engine.
	MetricSerialize = MetricID(internalmetrics.MetricSerialize)
	// MetricSignSuccess is an exported constant or variable used by the token engine.
	MetricSignSuccess = MetricID(internalmetrics.MetricSignSuccess)
	// MetricSignFailure is an exported constant or variable used by the token engine.
	MetricSignFailure = MetricID(internalmetrics.MetricSignFailure)
	// MetricVerifyValid is an exported constant or variable used by the token engine.
	MetricVerifyValid = MetricID(internalmetrics.MetricVerifyValid)
	// MetricVerifyInvalid is an exported constant or variable used by the token engine.
	MetricVerifyInvalid = MetricID(internalmetrics.MetricVerifyInvalid)
	// MetricVerifyFailure is an exported constant or variable used by the token engine.
	MetricVerifyFailure = MetricID(internalmetrics.MetricVerifyFailure)
	// MetricClaimOffset is an exported constant or variable used by the token engine.
	MetricClaimOffset = MetricID(internalmetrics.MetricClaimOffset)
	// MetricClaimOffsetFailure is an exported constant or variable used by the token engine.
	MetricClaimOffsetFailure = MetricID(internalmetrics.MetricClaimOffsetFailure)
	// MetricClaimRemoved is an exported constant or variable used by the token engine.
	MetricClaimRemoved = MetricID(internalmetrics.MetricClaimRemoved)
	// MetricAttackAlgNone is an exported constant or variable used by the token engine.
	MetricAttackAlgNone = MetricID(internalmetrics.MetricAttackAlgNone)
	// MetricAttackConfusion is an exported constant or variable used by the token engine.
	MetricAttackConfusion = MetricID(internalmetrics.MetricAttackConfusion)
	// MetricAttackConfusionResign is an exported constant or variable used by the token engine.
	MetricAttackConfusionResign = MetricID(internalmetrics.MetricAttackConfusionResign)
	// MetricAttackSignatureStrip is an exported constant or variable used by the token engine.
	MetricAttackSignatureStrip = MetricID(internalmetrics.MetricAttackSignatureStrip)
	// MetricAttackSweep is an exported constant or variable used by the token engine.
	MetricAttackSweep = MetricID(internalmetrics.MetricAttackSweep)
	// MetricCrackStarted is an exported constant or variable used by the token engine.
	MetricCrackStarted = MetricID(internalmetrics.MetricCrackStarted)
	// MetricCrackRejected is an exported constant or variable used by the token engine.
	MetricCrackRejected = MetricID(internalmetrics.MetricCrackRejected)
	// MetricCrackFound is an exported constant or variable used by the token engine.
	MetricCrackFound = MetricID(internalmetrics.MetricCrackFound)
	// MetricCrackExhausted is an exported constant or variable used by the token engine.
	MetricCrackExhausted = MetricID(internalmetrics.MetricCrackExhausted)
	// MetricCrackCancelled is an exported constant or variable used by the token engine.
	MetricCrackCancelled = MetricID(internalmetrics.MetricCrackCancelled)
	// MetricCrackAttempts is an exported constant or variable used by the token engine.
	MetricCrackAttempts = MetricID(internalmetrics.MetricCrackAttempts)
	// MetricVaultSave is an exported constant or variable used by the token engine.
	MetricVaultSave = MetricID(internalmetrics.MetricVaultSave)
	// MetricVaultHit is an exported constant or variable used by the token engine.
	MetricVaultHit = MetricID(internalmetrics.MetricVaultHit)
	// MetricVaultMiss is an exported constant or variable used by the token engine.
	MetricVaultMiss = MetricID(internalmetrics.MetricVaultMiss)
	// MetricVaultFailure is an exported constant or variable used by the token engine.
	MetricVaultFailure = MetricID(internalmetrics.MetricVaultFailure)
	// MetricVerifyLatency is an exported constant or variable used by the token engine.
	MetricVerifyLatency = MetricID(internalmetrics.MetricVerifyLatency)
	// MetricSignLatency is an exported constant or variable used by the token engine.
	MetricSignLatency = MetricID(internalmetrics.MetricSignLatency)
	// MetricCrackDuration is an exported constant or variable used by the token engine.
	MetricCrackDuration = MetricID(internalmetrics.MetricCrackDuration)

	metricIDCount = internalmetrics.MetricIDCount
)

// Metrics holds atomic counters and optional latency histograms.
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time deep copy of all metrics.
type MetricsSnapshot = internalmetrics.Snapshot

// NewMetrics creates a new [Metrics] instance configured by the given
// [MetricsConfig]. When Enabled is false, all operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return internalmetrics.New(internalmetrics.Config{
		Enabled:       cfg.Enabled,
		EnableLatency: cfg.EnableLatencyHistograms,
	})
}
