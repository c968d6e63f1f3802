// Package otel bridges goForge engine metrics into OpenTelemetry instruments.
//
// [NewOTelExporter] registers an Int64ObservableCounter per engine counter,
// Int64ObservableGauges for the cumulative latency buckets, and engine-state
// instruments (audit drop counter, active crack-run up-down counter). One
// callback reads [goForge.Engine.MetricsSnapshot] per collection cycle, so
// exporter cost is paid at scrape time, never on the sign/verify/crack paths.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate engine state.
package otel
