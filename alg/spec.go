package alg

import (
	"crypto"
	"crypto/elliptic"
	_ "crypto/sha256"
	_ "crypto/sha512"

	"github.com/golang-jwt/jwt/v5"
)

// Family groups specs by the cryptographic primitive they dispatch to.
type Family int

const (
	// FamilyUnknown is the family of the invalid zero Spec.
	FamilyUnknown Family = iota
	// FamilyNone is an exported constant or variable used by the token engine.
	FamilyNone
	// FamilyHMAC is an exported constant or variable used by the token engine.
	FamilyHMAC
	// FamilyRSAPKCS1 is an exported constant or variable used by the token engine.
	FamilyRSAPKCS1
	// FamilyRSAPSS is an exported constant or variable used by the token engine.
	FamilyRSAPSS
	// FamilyECDSA is an exported constant or variable used by the token engine.
	FamilyECDSA
)

func (f Family) String() string {
	switch f {
	case FamilyNone:
		return "none"
	case FamilyHMAC:
		return "HMAC"
	case FamilyRSAPKCS1:
		return "RSA-PKCS1"
	case FamilyRSAPSS:
		return "RSA-PSS"
	case FamilyECDSA:
		return "ECDSA"
	default:
		return "unknown"
	}
}

// Spec identifies one entry of the closed algorithm registry. The zero value is
// invalid and resolves to nothing.
type Spec int

const (
	specInvalid Spec = iota
	// None is an exported constant or variable used by the token engine.
	None
	// HS256 is an exported constant or variable used by the token engine.
	HS256
	// HS384 is an exported constant or variable used by the token engine.
	HS384
	// HS512 is an exported constant or variable used by the token engine.
	HS512
	// RS256 is an exported constant or variable used by the token engine.
	RS256
	// RS384 is an exported constant or variable used by the token engine.
	RS384
	// RS512 is an exported constant or variable used by the token engine.
	RS512
	// PS256 is an exported constant or variable used by the token engine.
	PS256
	// PS384 is an exported constant or variable used by the token engine.
	PS384
	// PS512 is an exported constant or variable used by the token engine.
	PS512
	// ES256 is an exported constant or variable used by the token engine.
	ES256
	// ES384 is an exported constant or variable used by the token engine.
	ES384
	// ES512 is an exported constant or variable used by the token engine.
	ES512
)

type specInfo struct {
	name      string
	family    Family
	hash      crypto.Hash
	curve     elliptic.Curve
	rawSigLen int
	method    jwt.SigningMethod
}

var specTable = [...]specInfo{
	specInvalid: {},
	None:        {name: "none", family: FamilyNone},
	HS256:       {name: "HS256", family: FamilyHMAC, hash: crypto.SHA256},
	HS384:       {name: "HS384", family: FamilyHMAC, hash: crypto.SHA384},
	HS512:       {name: "HS512", family: FamilyHMAC, hash: crypto.SHA512},
	RS256:       {name: "RS256", family: FamilyRSAPKCS1, hash: crypto.SHA256, method: jwt.SigningMethodRS256},
	RS384:       {name: "RS384", family: FamilyRSAPKCS1, hash: crypto.SHA384, method: jwt.SigningMethodRS384},
	RS512:       {name: "RS512", family: FamilyRSAPKCS1, hash: crypto.SHA512, method: jwt.SigningMethodRS512},
	PS256:       {name: "PS256", family: FamilyRSAPSS, hash: crypto.SHA256, method: jwt.SigningMethodPS256},
	PS384:       {name: "PS384", family: FamilyRSAPSS, hash: crypto.SHA384, method: jwt.SigningMethodPS384},
	PS512:       {name: "PS512", family: FamilyRSAPSS, hash: crypto.SHA512, method: jwt.SigningMethodPS512},
	ES256:       {name: "ES256", family: FamilyECDSA, hash: crypto.SHA256, curve: elliptic.P256(), rawSigLen: 64, method: jwt.SigningMethodES256},
	ES384:       {name: "ES384", family: FamilyECDSA, hash: crypto.SHA384, curve: elliptic.P384(), rawSigLen: 96, method: jwt.SigningMethodES384},
	ES512:       {name: "ES512", family: FamilyECDSA, hash: crypto.SHA512, curve: elliptic.P521(), rawSigLen: 132, method: jwt.SigningMethodES512},
}

var supportedOrder = []Spec{
	None,
	HS256, HS384, HS512,
	RS256, RS384, RS512,
	PS256, PS384, PS512,
	ES256, ES384, ES512,
}

// Supported returns the registry in its canonical order, none first. The slice
// is a copy and safe to reorder.
func Supported() []Spec {
	out := make([]Spec, len(supportedOrder))
	copy(out, supportedOrder)
	return out
}

// Valid reports whether the value is a registry entry.
func (s Spec) Valid() bool {
	return s > specInvalid && int(s) < len(specTable)
}

func (s Spec) index() int {
	if s.Valid() {
		return int(s)
	}
	return 0
}

// String returns the canonical JOSE header value.
func (s Spec) String() string {
	if !s.Valid() {
		return "invalid"
	}
	return specTable[s].name
}

// Family returns the primitive family the spec dispatches to.
func (s Spec) Family() Family {
	return specTable[s.index()].family
}

// Hash returns the digest the spec signs with, zero for none.
func (s Spec) Hash() crypto.Hash {
	return specTable[s.index()].hash
}

// Curve returns the curve for ECDSA specs, nil for every other family. ES512
// pairs SHA-512 with P-521, the curve does not follow the hash width.
func (s Spec) Curve() elliptic.Curve {
	return specTable[s.index()].curve
}

func (s Spec) rawSignatureLen() int {
	return specTable[s.index()].rawSigLen
}

func (s Spec) signingMethod() jwt.SigningMethod {
	return specTable[s.index()].method
}

// FromHeaderString resolves a header alg value against the registry. The match
// is case-sensitive, so "None" and "hs256" do not resolve. An unknown value
// reports false rather than failing because the token can still be inspected.
func FromHeaderString(s string) (Spec, bool) {
	for _, spec := range supportedOrder {
		if specTable[spec].name == s {
			return spec, true
		}
	}
	return specInvalid, false
}

// InferFromSignature guesses the HMAC width from the encoded signature length.
// Digests of 32, 48, and 64 bytes encode to 43, 64, and 86 characters. Used for
// crack attempts against tokens whose header segment is unreadable.
func InferFromSignature(sigB64 string) (Spec, bool) {
	switch len(sigB64) {
	case 43:
		return HS256, true
	case 64:
		return HS384, true
	case 86:
		return HS512, true
	}
	return specInvalid, false
}
