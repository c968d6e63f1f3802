package alg

import (
	"crypto/ecdsa"
	"crypto/hmac"
	"crypto/rand"
	"fmt"

	"github.com/MrEthical07/goForge/token"
)

// ECDSAEncoding selects the wire form of ECDSA signatures.
type ECDSAEncoding int

const (
	// EncodingRaw emits the fixed-width R||S concatenation JOSE specifies.
	EncodingRaw ECDSAEncoding = iota
	// EncodingDER emits ASN.1 DER for targets that verify with openssl-style primitives.
	EncodingDER
)

func (e ECDSAEncoding) String() string {
	if e == EncodingDER {
		return "der"
	}
	return "raw"
}

// Config defines a public type used by goForge APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	ECDSAEncoding ECDSAEncoding
}

// Suite defines a public type used by goForge APIs.
//
// Suite instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Suite struct {
	ecdsaEncoding ECDSAEncoding
}

// NewSuite builds a signer/verifier with the given encoding choices.
func NewSuite(cfg Config) *Suite {
	return &Suite{ecdsaEncoding: cfg.ECDSAEncoding}
}

// Sign computes the signature over signingInput exactly as given, never over a
// re-serialization.
//
// Sign may return an error when input validation, dependency calls, or security checks fail.
// Sign does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Suite) Sign(signingInput string, spec Spec, key Key) ([]byte, error) {
	switch spec.Family() {
	case FamilyNone:
		// The none algorithm has an empty signature and never consults the key.
		return nil, nil

	case FamilyHMAC:
		secret, ok := key.hmacSecret()
		if !ok {
			return nil, fmt.Errorf("%w: %s needs a symmetric secret, got %s key", ErrKeyMismatch, spec, key.Kind())
		}
		return hmacSum(spec, secret, signingInput), nil

	case FamilyRSAPKCS1, FamilyRSAPSS:
		priv, ok := key.rsaSigner()
		if !ok {
			return nil, fmt.Errorf("%w: %s needs an RSA private key, got %s key", ErrKeyMismatch, spec, key.Kind())
		}
		return spec.signingMethod().Sign(signingInput, priv)

	case FamilyECDSA:
		priv, ok := key.ecdsaSigner()
		if !ok {
			return nil, fmt.Errorf("%w: %s needs an EC private key, got %s key", ErrKeyMismatch, spec, key.Kind())
		}
		if priv.Curve != spec.Curve() {
			return nil, fmt.Errorf("%w: %s needs a %s key, got %s", ErrKeyMismatch, spec, spec.Curve().Params().Name, priv.Curve.Params().Name)
		}
		if s.ecdsaEncoding == EncodingDER {
			return ecdsa.SignASN1(rand.Reader, priv, hashInput(spec, signingInput))
		}
		return spec.signingMethod().Sign(signingInput, priv)
	}
	return nil, fmt.Errorf("%w: algorithm not in registry", ErrKeyMismatch)
}

// Verify checks the token's signature under spec, recomputing over the exact
// transmitted header and payload text. A clean mismatch is (false, nil); errors
// are reserved for unusable key material and undecodable signature segments.
//
// Verify does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Suite) Verify(t *token.Token, spec Spec, key Key) (bool, error) {
	if spec.Family() == FamilyNone {
		// Valid exactly when the signature segment is empty. Key ignored.
		return t.SignatureRaw() == "", nil
	}

	sig, err := t.SignatureBytes()
	if err != nil {
		return false, err
	}
	signingInput := t.SigningInput()

	switch spec.Family() {
	case FamilyHMAC:
		secret, ok := key.hmacSecret()
		if !ok {
			return false, fmt.Errorf("%w: %s needs a symmetric secret, got %s key", ErrKeyMismatch, spec, key.Kind())
		}
		return hmac.Equal(sig, hmacSum(spec, secret, signingInput)), nil

	case FamilyRSAPKCS1, FamilyRSAPSS:
		pub, ok := key.rsaVerifier()
		if !ok {
			return false, fmt.Errorf("%w: %s needs an RSA key, got %s key", ErrKeyMismatch, spec, key.Kind())
		}
		if err := spec.signingMethod().Verify(signingInput, sig, pub); err != nil {
			return false, nil
		}
		return true, nil

	case FamilyECDSA:
		pub, ok := key.ecdsaVerifier()
		if !ok {
			return false, fmt.Errorf("%w: %s needs an EC key, got %s key", ErrKeyMismatch, spec, key.Kind())
		}
		if pub.Curve != spec.Curve() {
			return false, fmt.Errorf("%w: %s needs a %s key, got %s", ErrKeyMismatch, spec, spec.Curve().Params().Name, pub.Curve.Params().Name)
		}
		if s.ecdsaEncoding == EncodingDER {
			return ecdsa.VerifyASN1(pub, hashInput(spec, signingInput), sig), nil
		}
		if err := spec.signingMethod().Verify(signingInput, sig, pub); err != nil {
			return false, nil
		}
		return true, nil
	}
	return false, fmt.Errorf("%w: algorithm not in registry", ErrKeyMismatch)
}

// HMACSum computes the digest an HMAC spec produces over signingInput. The
// cracker calls this once per candidate secret, bypassing Key construction.
func HMACSum(spec Spec, secret []byte, signingInput string) ([]byte, error) {
	if spec.Family() != FamilyHMAC {
		return nil, fmt.Errorf("%w: %s is not an HMAC algorithm", ErrKeyMismatch, spec)
	}
	return hmacSum(spec, secret, signingInput), nil
}

func hmacSum(spec Spec, secret []byte, signingInput string) []byte {
	mac := hmac.New(spec.Hash().New, secret)
	mac.Write([]byte(signingInput))
	return mac.Sum(nil)
}

func hashInput(spec Spec, signingInput string) []byte {
	h := spec.Hash().New()
	h.Write([]byte(signingInput))
	return h.Sum(nil)
}
