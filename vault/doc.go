// Package vault provides Redis-backed persistence for secrets recovered by
// dictionary attacks, keyed by token fingerprint so repeat engagements skip
// the wordlist.
//
// # Binary encoding
//
// Records are stored as a compact versioned binary format. The encoder is
// append-only: new versions add fields but never reinterpret old ones.
//
// # Architecture boundaries
//
// This package owns the [Store] (Redis operations) and the [Record] model. It
// does NOT run attacks or compute fingerprints — those responsibilities belong
// to the Engine and the crack package. Recovered secrets live only inside
// [Record] values and the Redis payload; they must never be copied into audit
// events or log fields.
package vault
