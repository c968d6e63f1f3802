package goForge

import (
	"context"
	"errors"
	"time"
)

const (
	auditEventTokenParsed     = "token_parsed"
	auditEventTokenSerialized = "token_serialized"
	auditEventTokenSigned     = "token_signed"
	auditEventTokenVerified   = "token_verified"
	auditEventClaimOffset     = "claim_offset"
	auditEventClaimRemoved    = "claim_removed"
	auditEventAttackGenerated = "attack_generated"
	auditEventAttackSweep     = "attack_sweep"
	auditEventCrackStarted    = "crack_started"
	auditEventCrackRejected   = "crack_rejected"
	auditEventCrackFound      = "crack_found"
	auditEventCrackExhausted  = "crack_exhausted"
	auditEventCrackCancelled  = "crack_cancelled"
	auditEventVaultSave       = "vault_save"
	auditEventVaultHit        = "vault_hit"
	auditEventVaultMiss       = "vault_miss"
)

// AuditErrorCode defines a public type used by goForge APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrMalformedToken       AuditErrorCode = "malformed_token"
	auditErrInvalidBase64        AuditErrorCode = "invalid_base64"
	auditErrSegmentNotObject     AuditErrorCode = "segment_not_object"
	auditErrKeyMismatch          AuditErrorCode = "key_mismatch"
	auditErrKeyMaterialInvalid   AuditErrorCode = "key_material_invalid"
	auditErrClaimNotNumeric      AuditErrorCode = "claim_not_numeric"
	auditErrUnknownAlgorithm     AuditErrorCode = "unknown_algorithm"
	auditErrUnsupportedAlgorithm AuditErrorCode = "unsupported_algorithm"
	auditErrTooManyRuns          AuditErrorCode = "too_many_runs"
	auditErrNilToken             AuditErrorCode = "nil_token"
	auditErrVaultDisabled        AuditErrorCode = "vault_disabled"
	auditErrVaultNotFound        AuditErrorCode = "vault_not_found"
	auditErrUnavailable          AuditErrorCode = "backend_unavailable"
	auditErrEngineClosed         AuditErrorCode = "engine_closed"
	auditErrInternal             AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	tokenFP string,
	runID string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Operator:  operatorFromContext(ctx),
		Target:    targetFromContext(ctx),
		RunID:     runID,
		TokenFP:   tokenFP,
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrMalformedToken):
		return auditErrMalformedToken
	case errors.Is(err, ErrInvalidBase64):
		return auditErrInvalidBase64
	case errors.Is(err, ErrSegmentNotObject):
		return auditErrSegmentNotObject
	case errors.Is(err, ErrKeyMismatch):
		return auditErrKeyMismatch
	case errors.Is(err, ErrKeyMaterialInvalid):
		return auditErrKeyMaterialInvalid
	case errors.Is(err, ErrClaimNotNumeric):
		return auditErrClaimNotNumeric
	case errors.Is(err, ErrUnknownAlgorithm),
		errors.Is(err, ErrUnknownAttackTarget):
		return auditErrUnknownAlgorithm
	case errors.Is(err, ErrAttackTargetNotHMAC),
		errors.Is(err, ErrCrackUnsupportedAlgorithm):
		return auditErrUnsupportedAlgorithm
	case errors.Is(err, ErrTooManyCrackRuns):
		return auditErrTooManyRuns
	case errors.Is(err, ErrNilToken):
		return auditErrNilToken
	case errors.Is(err, ErrVaultDisabled):
		return auditErrVaultDisabled
	case errors.Is(err, ErrVaultNotFound):
		return auditErrVaultNotFound
	case errors.Is(err, ErrVaultUnavailable):
		return auditErrUnavailable
	case errors.Is(err, ErrEngineClosed):
		return auditErrEngineClosed
	default:
		return auditErrInternal
	}
}
