package attack

import (
	"errors"

	"github.com/google/uuid"

	"github.com/MrEthical07/goForge/token"
)

var (
	// ErrUnknownTarget is an exported constant or variable used by the token engine.
	ErrUnknownTarget = errors.New("target algorithm not in registry")
	// ErrTargetNotHMAC is an exported constant or variable used by the token engine.
	ErrTargetNotHMAC = errors.New("resign target must be an HMAC algorithm")
)

// Kind labels the tamper transform that produced a Variant.
type Kind string

const (
	// KindAlgNone is an exported constant or variable used by the token engine.
	KindAlgNone Kind = "alg_none"
	// KindConfusion is an exported constant or variable used by the token engine.
	KindConfusion Kind = "algorithm_confusion"
	// KindConfusionResign is an exported constant or variable used by the token engine.
	KindConfusionResign Kind = "algorithm_confusion_resign"
	// KindSignatureStrip is an exported constant or variable used by the token engine.
	KindSignatureStrip Kind = "signature_strip"
)

// Variant defines a public type used by goForge APIs.
//
// Variant instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Variant struct {
	ID          uuid.UUID
	Kind        Kind
	Token       *token.Token
	Description string
}

// Serialize returns the compact form of the derived token.
func (v Variant) Serialize() string {
	if v.Token == nil {
		return ""
	}
	return v.Token.Serialize()
}

func newVariant(kind Kind, t *token.Token, description string) Variant {
	return Variant{ID: uuid.New(), Kind: kind, Token: t, Description: description}
}
