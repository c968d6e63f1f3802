// Package metrics implements the in-process counter and histogram core of
// the token engine.
//
// # Design
//
// Counter slots are fixed at compile time, one per [MetricID], stored in
// cache-line-padded uint64 cells and written with [sync/atomic.AddUint64].
// Hot loops that would otherwise hammer a single slot (crack workers counting
// attempts) accumulate locally and flush through Add. Three slots are latency
// histograms (verify, sign, crack duration) with 8 fixed buckets from ≤5ms
// to +Inf. Writes never allocate.
//
// # Architecture boundaries
//
// This package owns metric storage and the Snapshot deep copy. Export formats
// (Prometheus text, OTel instruments) live in metrics/export/ and work
// entirely from Snapshot values.
//
// # What this package must NOT do
//
//   - Perform I/O or network calls.
//   - Import goForge or any sibling package.
//   - Expose global metric registries.
package metrics
