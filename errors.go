package goForge

import (
	"errors"

	"github.com/MrEthical07/goForge/alg"
	"github.com/MrEthical07/goForge/attack"
	"github.com/MrEthical07/goForge/claims"
	"github.com/MrEthical07/goForge/crack"
	"github.com/MrEthical07/goForge/token"
	"github.com/MrEthical07/goForge/vault"
)

var (
	// ErrEngineNotReady is an exported constant or variable used by the token engine.
	ErrEngineNotReady = errors.New("engine not ready")
	// ErrEngineClosed is an exported constant or variable used by the token engine.
	ErrEngineClosed = errors.New("engine closed")
	// ErrNilToken is an exported constant or variable used by the token engine.
	ErrNilToken = errors.New("nil token")
	// ErrUnknownAlgorithm is an exported constant or variable used by the token engine.
	ErrUnknownAlgorithm = errors.New("algorithm not in registry")
	// ErrTooManyCrackRuns is an exported constant or variable used by the token engine.
	ErrTooManyCrackRuns = errors.New("max concurrent crack runs reached")
	// ErrVaultDisabled is an exported constant or variable used by the token engine.
	ErrVaultDisabled = errors.New("vault disabled")
)

// Domain sentinels re-exported so callers can errors.Is against the root
// package without importing every subpackage.
var (
	// ErrInvalidBase64 is an exported constant or variable used by the token engine.
	ErrInvalidBase64 = token.ErrInvalidBase64
	// ErrMalformedToken is an exported constant or variable used by the token engine.
	ErrMalformedToken = token.ErrMalformedToken
	// ErrSegmentNotObject is an exported constant or variable used by the token engine.
	ErrSegmentNotObject = token.ErrSegmentNotObject
	// ErrKeyMismatch is an exported constant or variable used by the token engine.
	ErrKeyMismatch = alg.ErrKeyMismatch
	// ErrKeyMaterialInvalid is an exported constant or variable used by the token engine.
	ErrKeyMaterialInvalid = alg.ErrKeyMaterialInvalid
	// ErrClaimNotNumeric is an exported constant or variable used by the token engine.
	ErrClaimNotNumeric = claims.ErrNotNumeric
	// ErrUnknownAttackTarget is an exported constant or variable used by the token engine.
	ErrUnknownAttackTarget = attack.ErrUnknownTarget
	// ErrAttackTargetNotHMAC is an exported constant or variable used by the token engine.
	ErrAttackTargetNotHMAC = attack.ErrTargetNotHMAC
	// ErrCrackUnsupportedAlgorithm is an exported constant or variable used by the token engine.
	ErrCrackUnsupportedAlgorithm = crack.ErrUnsupportedAlgorithm
	// ErrVaultNotFound is an exported constant or variable used by the token engine.
	ErrVaultNotFound = vault.ErrNotFound
	// ErrVaultUnavailable is an exported constant or variable used by the token engine.
	ErrVaultUnavailable = vault.ErrVaultUnavailable
)
