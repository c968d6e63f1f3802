package attack

import (
	"github.com/MrEthical07/goForge/token"
)

// StripSignature clears the signature segment and leaves the header alone,
// probing verifiers that skip the check when no signature is transmitted.
//
// StripSignature does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func StripSignature(t *token.Token) (Variant, error) {
	derived := t.Clone()
	derived.RemoveSignature()
	return newVariant(KindSignatureStrip, derived, "signature removed, header unchanged"), nil
}
