package goForge

import (
	"context"
	"time"

	"github.com/MrEthical07/goForge/claims"
	"github.com/MrEthical07/goForge/token"
)

// OffsetTimestamp describes the offsettimestamp operation and its observable behavior.
//
// OffsetTimestamp may return an error when input validation, dependency calls, or security checks fail.
// OffsetTimestamp does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) OffsetTimestamp(ctx context.Context, t *token.Token, claim string, delta time.Duration) (*token.Token, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if t == nil {
		e.emitAudit(ctx, auditEventClaimOffset, false, "", "", ErrNilToken, nil)
		return nil, ErrNilToken
	}

	derived, err := claims.OffsetTimestamp(t, claim, delta)
	if err != nil {
		e.metricInc(MetricClaimOffsetFailure)
		e.emitAudit(ctx, auditEventClaimOffset, false, tokenFingerprint(t), "", err, func() map[string]string {
			return map[string]string{"claim": claim}
		})
		return nil, err
	}

	e.metricInc(MetricClaimOffset)
	e.emitAudit(ctx, auditEventClaimOffset, true, tokenFingerprint(derived), "", nil, func() map[string]string {
		return map[string]string{"claim": claim, "delta": delta.String()}
	})
	return derived, nil
}

// RemoveClaim describes the removeclaim operation and its observable behavior.
//
// RemoveClaim may return an error when input validation, dependency calls, or security checks fail.
// RemoveClaim does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) RemoveClaim(ctx context.Context, t *token.Token, claim string) (*token.Token, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if t == nil {
		e.emitAudit(ctx, auditEventClaimRemoved, false, "", "", ErrNilToken, nil)
		return nil, ErrNilToken
	}

	derived, err := claims.RemoveClaim(t, claim)
	if err != nil {
		e.metricInc(MetricClaimOffsetFailure)
		e.emitAudit(ctx, auditEventClaimRemoved, false, tokenFingerprint(t), "", err, func() map[string]string {
			return map[string]string{"claim": claim}
		})
		return nil, err
	}

	e.metricInc(MetricClaimRemoved)
	e.emitAudit(ctx, auditEventClaimRemoved, true, tokenFingerprint(derived), "", nil, func() map[string]string {
		return map[string]string{"claim": claim}
	})
	return derived, nil
}
