// Package token provides compact JWT parsing, byte-exact re-serialization, and the
// lenient segment codec used by every tampering operation.
//
// # Round-trip contract
//
// A parsed token always reconstructs its input exactly: Serialize returns the original
// text byte-for-byte until a segment is mutated, and only the mutated segment is ever
// re-encoded. Header and payload segments that fail base64 or JSON decoding keep their
// original bytes and carry a per-segment diagnostic instead of failing the parse —
// malformed payloads are working material here, not errors.
//
// # Architecture boundaries
//
// This package owns segment encoding and the [Token] model. It does NOT verify
// signatures, resolve algorithms, or generate attack variants — those responsibilities
// belong to alg, attack, and the Engine.
//
// # What this package must NOT do
//
//   - Normalize, reorder, or "fix" JSON the caller did not touch.
//   - Import any other goForge package (it is the bottom of the dependency graph).
//   - Cache serialized forms across mutations.
package token
