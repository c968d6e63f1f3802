// Package internal contains helper utilities that are intentionally private to
// goForge. The package itself holds token fingerprint derivation; the heavier
// machinery lives in sub-packages.
//
// # Sub-packages
//
//   - audit — buffered audit pipeline (Dispatcher, Sink implementations)
//   - metrics — padded atomic counters and fixed-bucket latency histograms
//
// # What this package must NOT do
//
//   - Export types that appear in the public goForge API.
//   - Be imported by any package outside the goForge module.
package internal
