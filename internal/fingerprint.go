package internal

import (
	"crypto/sha256"
	"encoding/base64"
)

// TokenFingerprint derives a stable identifier for a token from its signing
// input (header.payload). Audit events and vault keys carry this fingerprint
// instead of the token text so logs never contain replayable material.
func TokenFingerprint(signingInput string) string {
	sum := sha256.Sum256([]byte(signingInput))
	// base64url, no padding, compact
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
