package attack

import (
	"github.com/MrEthical07/goForge/alg"
	"github.com/MrEthical07/goForge/token"
)

// SweepConfig defines a public type used by goForge APIs.
//
// SweepConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SweepConfig struct {
	// NoneVariants overrides the alg none spellings; empty selects the default set.
	NoneVariants []string
	// PublicKeySource feeds the resign pass; resign variants need it to be non-empty.
	PublicKeySource []byte
	// IncludeResign gates the resign pass even when key material is present.
	IncludeResign bool
}

// Sweep runs every generator against the token: each configured none
// spelling, a signature strip, and a header-only confusion rewrite to every
// HMAC spec in the registry, plus resign variants when a public key source is
// supplied and enabled.
//
// Sweep may return an error when input validation, dependency calls, or security checks fail.
// Sweep does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func Sweep(t *token.Token, suite *alg.Suite, cfg SweepConfig) ([]Variant, error) {
	variants, err := AlgNone(t, cfg.NoneVariants)
	if err != nil {
		return nil, err
	}

	strip, err := StripSignature(t)
	if err != nil {
		return nil, err
	}
	variants = append(variants, strip)

	resign := cfg.IncludeResign && len(cfg.PublicKeySource) > 0
	for _, spec := range alg.Supported() {
		if spec.Family() != alg.FamilyHMAC {
			continue
		}
		confused, err := Confuse(t, spec)
		if err != nil {
			return nil, err
		}
		variants = append(variants, confused)

		if resign {
			resigned, err := ConfuseResign(t, spec, cfg.PublicKeySource, suite)
			if err != nil {
				return nil, err
			}
			variants = append(variants, resigned)
		}
	}
	return variants, nil
}
