// Package internaldefs is the single source of metric naming for the
// exporters: one table per instrument kind, mapping engine [goForge.MetricID]
// slots to wire names and help text, plus the fixed latency bucket layout.
//
// The Prometheus and OTel exporters render from these tables, so a rename or
// a new counter lands in both surfaces at once and the two never drift.
// Bucket boundaries mirror the engine's 8-slot histograms (≤5ms … +Inf);
// NormalizeBuckets and CumulativeBuckets convert raw snapshot slices into the
// cumulative form both exposition formats want.
//
// # What this package must NOT do
//
//   - Import any exporter package.
//   - Perform I/O.
package internaldefs
