package goForge

import (
	"context"

	"github.com/MrEthical07/goForge/internal"
	"github.com/MrEthical07/goForge/token"
)

// ParseToken describes the parsetoken operation and its observable behavior.
//
// ParseToken may return an error when input validation, dependency calls, or security checks fail.
// ParseToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ParseToken(ctx context.Context, raw string) (*token.Token, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	t, err := token.Parse(raw)
	if err != nil {
		e.metricInc(MetricParseFailure)
		e.emitAudit(ctx, auditEventTokenParsed, false, "", "", err, nil)
		return nil, err
	}

	e.metricInc(MetricParseSuccess)
	e.emitAudit(ctx, auditEventTokenParsed, true, tokenFingerprint(t), "", nil, func() map[string]string {
		return map[string]string{"alg": t.Algorithm()}
	})
	return t, nil
}

// SerializeToken describes the serializetoken operation and its observable behavior.
//
// SerializeToken may return an error when input validation, dependency calls, or security checks fail.
// SerializeToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SerializeToken(ctx context.Context, t *token.Token) (string, error) {
	if err := e.ready(); err != nil {
		return "", err
	}
	if t == nil {
		e.emitAudit(ctx, auditEventTokenSerialized, false, "", "", ErrNilToken, nil)
		return "", ErrNilToken
	}

	out := t.Serialize()
	e.metricInc(MetricSerialize)
	e.emitAudit(ctx, auditEventTokenSerialized, true, tokenFingerprint(t), "", nil, nil)
	return out, nil
}

// tokenFingerprint finalizes pending segment edits and hashes the signing
// input. Callers must have nil-checked t.
func tokenFingerprint(t *token.Token) string {
	return internal.TokenFingerprint(t.SigningInput())
}
