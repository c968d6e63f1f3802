// Package prometheus provides Prometheus collectors for goForge metrics.
//
// [NewPrometheusExporter] accepts an [goForge.Engine] and exposes an [http.Handler]
// that renders all goForge counters and histograms in Prometheus text exposition format.
// Counter names are prefixed goforge_*_total; histograms are
// goforge_verify_latency_seconds, goforge_sign_latency_seconds, and
// goforge_crack_duration_seconds. An engine-state block closes the exposition
// with goforge_audit_dropped_total and the goforge_crack_runs_active gauge.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
