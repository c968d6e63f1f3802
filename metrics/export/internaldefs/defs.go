package internaldefs

import (
	goForge "github.com/MrEthical07/goForge"
)

// CounterDef defines a public type used by goForge APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goForge.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goForge APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goForge.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the token engine.
var CounterDefs = []CounterDef{
	{ID: goForge.MetricParseSuccess, Name: "goforge_parse_success_total", Help: "Successful token parses."},
	{ID: goForge.MetricParseFailure, Name: "goforge_parse_failure_total", Help: "Failed token parses."},
	{ID: goForge.MetricSerialize, Name: "goforge_serialize_total", Help: "Token serializations."},
	{ID: goForge.MetricSignSuccess, Name: "goforge_sign_success_total", Help: "Successful signing operations."},
	{ID: goForge.MetricSignFailure, Name: "goforge_sign_failure_total", Help: "Failed signing operations."},
	{ID: goForge.MetricVerifyValid, Name: "goforge_verify_valid_total", Help: "Verifications where the signature matched."},
	{ID: goForge.MetricVerifyInvalid, Name: "goforge_verify_invalid_total", Help: "Verifications where the signature cleanly mismatched."},
	{ID: goForge.MetricVerifyFailure, Name: "goforge_verify_failure_total", Help: "Verifications that errored before a verdict."},
	{ID: goForge.MetricClaimOffset, Name: "goforge_claim_offset_total", Help: "Timestamp claim offsets applied."},
	{ID: goForge.MetricClaimOffsetFailure, Name: "goforge_claim_offset_failure_total", Help: "Failed claim offset attempts."},
	{ID: goForge.MetricClaimRemoved, Name: "goforge_claim_removed_total", Help: "Claims removed from payloads."},
	{ID: goForge.MetricAttackAlgNone, Name: "goforge_attack_alg_none_total", Help: "alg none variant generations."},
	{ID: goForge.MetricAttackConfusion, Name: "goforge_attack_confusion_total", Help: "Algorithm-confusion variant generations."},
	{ID: goForge.MetricAttackConfusionResign, Name: "goforge_attack_confusion_resign_total", Help: "Re-signed algorithm-confusion variant generations."},
	{ID: goForge.MetricAttackSignatureStrip, Name: "goforge_attack_signature_strip_total", Help: "Signature-strip variant generations."},
	{ID: goForge.MetricAttackSweep, Name: "goforge_attack_sweep_total", Help: "Full attack sweeps."},
	{ID: goForge.MetricCrackStarted, Name: "goforge_crack_started_total", Help: "Dictionary attack runs started."},
	{ID: goForge.MetricCrackRejected, Name: "goforge_crack_rejected_total", Help: "Dictionary attack runs rejected before starting."},
	{ID: goForge.MetricCrackFound, Name: "goforge_crack_found_total", Help: "Dictionary attack runs that recovered a secret."},
	{ID: goForge.MetricCrackExhausted, Name: "goforge_crack_exhausted_total", Help: "Dictionary attack runs that exhausted their wordlist."},
	{ID: goForge.MetricCrackCancelled, Name: "goforge_crack_cancelled_total", Help: "Dictionary attack runs cancelled."},
	{ID: goForge.MetricCrackAttempts, Name: "goforge_crack_attempts_total", Help: "Candidate secrets tested across runs."},
	{ID: goForge.MetricVaultSave, Name: "goforge_vault_save_total", Help: "Recovered secrets persisted to the vault."},
	{ID: goForge.MetricVaultHit, Name: "goforge_vault_hit_total", Help: "Vault lookups that found a record."},
	{ID: goForge.MetricVaultMiss, Name: "goforge_vault_miss_total", Help: "Vault lookups that found nothing."},
	{ID: goForge.MetricVaultFailure, Name: "goforge_vault_failure_total", Help: "Vault operations that errored."},
}

// HistogramDefs is an exported constant or variable used by the token engine.
var HistogramDefs = []HistogramDef{
	{ID: goForge.MetricVerifyLatency, Name: "goforge_verify_latency_seconds", Help: "Verify latency histogram."},
	{ID: goForge.MetricSignLatency, Name: "goforge_sign_latency_seconds", Help: "Sign latency histogram."},
	{ID: goForge.MetricCrackDuration, Name: "goforge_crack_duration_seconds", Help: "Dictionary attack run duration histogram."},
}

// HistogramBounds is an exported constant or variable used by the token engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the token engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
