package goForge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MrEthical07/goForge/alg"
	"github.com/MrEthical07/goForge/internal"
	"github.com/MrEthical07/goForge/token"
)

// Sign describes the sign operation and its observable behavior.
//
// Sign may return an error when input validation, dependency calls, or security checks fail.
// Sign does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Sign(ctx context.Context, t *token.Token, spec alg.Spec, key alg.Key) (*token.Token, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if t == nil {
		e.emitAudit(ctx, auditEventTokenSigned, false, "", "", ErrNilToken, nil)
		return nil, ErrNilToken
	}
	if !spec.Valid() {
		err := fmt.Errorf("%w: %s", ErrUnknownAlgorithm, spec)
		e.metricInc(MetricSignFailure)
		e.emitAudit(ctx, auditEventTokenSigned, false, tokenFingerprint(t), "", err, nil)
		return nil, err
	}

	derived := t.Clone()
	// A non-object header cannot carry an alg field; the signature is then
	// computed over the raw signing input unchanged.
	if derived.Algorithm() != spec.String() && derived.Header() != nil {
		if err := derived.SetHeaderField("alg", spec.String()); err != nil {
			e.metricInc(MetricSignFailure)
			e.emitAudit(ctx, auditEventTokenSigned, false, tokenFingerprint(t), "", err, nil)
			return nil, fmt.Errorf("sign: %w", err)
		}
	}

	start := time.Now()
	sig, err := e.suite.Sign(derived.SigningInput(), spec, key)
	if err != nil {
		e.metricInc(MetricSignFailure)
		e.emitAudit(ctx, auditEventTokenSigned, false, tokenFingerprint(t), "", err, nil)
		return nil, err
	}
	derived.SetSignatureBytes(sig)

	e.metricInc(MetricSignSuccess)
	e.metricObserve(MetricSignLatency, time.Since(start))
	e.emitAudit(ctx, auditEventTokenSigned, true, tokenFingerprint(derived), "", nil, func() map[string]string {
		return map[string]string{"alg": spec.String()}
	})
	return derived, nil
}

// SignRaw describes the signraw operation and its observable behavior.
//
// SignRaw may return an error when input validation, dependency calls, or security checks fail.
// SignRaw does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SignRaw(ctx context.Context, signingInput string, spec alg.Spec, key alg.Key) ([]byte, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if !spec.Valid() {
		err := fmt.Errorf("%w: %s", ErrUnknownAlgorithm, spec)
		e.metricInc(MetricSignFailure)
		e.emitAudit(ctx, auditEventTokenSigned, false, "", "", err, nil)
		return nil, err
	}

	fp := internal.TokenFingerprint(signingInput)

	start := time.Now()
	sig, err := e.suite.Sign(signingInput, spec, key)
	if err != nil {
		e.metricInc(MetricSignFailure)
		e.emitAudit(ctx, auditEventTokenSigned, false, fp, "", err, nil)
		return nil, err
	}

	e.metricInc(MetricSignSuccess)
	e.metricObserve(MetricSignLatency, time.Since(start))
	e.emitAudit(ctx, auditEventTokenSigned, true, fp, "", nil, func() map[string]string {
		return map[string]string{"alg": spec.String(), "detached": "true"}
	})
	return sig, nil
}

// Verify describes the verify operation and its observable behavior.
//
// Verify may return an error when input validation, dependency calls, or security checks fail.
// Verify does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Verify(ctx context.Context, t *token.Token, spec alg.Spec, key alg.Key) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	if t == nil {
		e.emitAudit(ctx, auditEventTokenVerified, false, "", "", ErrNilToken, nil)
		return false, ErrNilToken
	}
	if !spec.Valid() {
		err := fmt.Errorf("%w: %s", ErrUnknownAlgorithm, spec)
		e.metricInc(MetricVerifyFailure)
		e.emitAudit(ctx, auditEventTokenVerified, false, tokenFingerprint(t), "", err, nil)
		return false, err
	}

	start := time.Now()
	ok, err := e.suite.Verify(t, spec, key)
	if err != nil {
		e.metricInc(MetricVerifyFailure)
		e.emitAudit(ctx, auditEventTokenVerified, false, tokenFingerprint(t), "", err, nil)
		return false, err
	}

	if ok {
		e.metricInc(MetricVerifyValid)
	} else {
		e.metricInc(MetricVerifyInvalid)
	}
	e.metricObserve(MetricVerifyLatency, time.Since(start))
	e.emitAudit(ctx, auditEventTokenVerified, ok, tokenFingerprint(t), "", nil, func() map[string]string {
		return map[string]string{"alg": spec.String()}
	})
	return ok, nil
}

// VerifyDetached describes the verifydetached operation and its observable behavior.
//
// VerifyDetached may return an error when input validation, dependency calls, or security checks fail.
// VerifyDetached does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) VerifyDetached(ctx context.Context, signingInput, signatureB64 string, spec alg.Spec, key alg.Key) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	if !strings.Contains(signingInput, ".") {
		err := fmt.Errorf("detached signing input: %w", ErrMalformedToken)
		e.metricInc(MetricVerifyFailure)
		e.emitAudit(ctx, auditEventTokenVerified, false, "", "", err, nil)
		return false, err
	}

	t, err := token.Parse(signingInput + "." + signatureB64)
	if err != nil {
		e.metricInc(MetricVerifyFailure)
		e.emitAudit(ctx, auditEventTokenVerified, false, "", "", err, nil)
		return false, err
	}
	return e.Verify(ctx, t, spec, key)
}
