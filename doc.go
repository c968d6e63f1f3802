// Package goForge provides a token tamper-and-attack engine for authorized JWT
// assessments: byte-exact compact-serialization round-trips, alg none and
// algorithm-confusion variant generation, HMAC dictionary attacks, and a
// Redis-backed vault for recovered signing secrets.
//
// The package is designed for concurrent assessment workloads: Engine methods are safe to
// call from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// goForge is the public surface. It exposes [Engine], [Builder], [Config], and value types
// (MetricsSnapshot, EngineReport, etc.). All internal coordination — audit dispatch,
// metric aggregation, token fingerprinting — lives under internal/ and is never
// exported.
//
// # What this package must NOT do
//
//   - Expose Redis clients, internal stores, or encoding details in its public API.
//   - Perform I/O outside of Engine methods (construction via Builder is allocation-only
//     until Build).
//   - Copy candidate or recovered secrets into audit events or error strings.
//   - Import any sub-package that re-imports goForge (no import cycles).
//
// # Performance contract
//
// Verify and the dictionary-attack inner loop are the hot paths. Verify must not allocate
// beyond the decoded signature and completes without Redis round-trips; vault operations
// are allowed one Redis round-trip per call.
package goForge
