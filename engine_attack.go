package goForge

import (
	"context"
	"fmt"
	"strconv"

	"github.com/MrEthical07/goForge/alg"
	"github.com/MrEthical07/goForge/attack"
	"github.com/MrEthical07/goForge/token"
)

// AlgNone describes the algnone operation and its observable behavior.
//
// AlgNone may return an error when input validation, dependency calls, or security checks fail.
// AlgNone does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AlgNone(ctx context.Context, t *token.Token) ([]attack.Variant, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if t == nil {
		e.emitAudit(ctx, auditEventAttackGenerated, false, "", "", ErrNilToken, nil)
		return nil, ErrNilToken
	}

	variants, err := attack.AlgNone(t, e.config.Attack.NoneVariants)
	if err != nil {
		e.emitAudit(ctx, auditEventAttackGenerated, false, tokenFingerprint(t), "", err, func() map[string]string {
			return map[string]string{"kind": string(attack.KindAlgNone)}
		})
		return nil, err
	}

	e.metricInc(MetricAttackAlgNone)
	e.emitAudit(ctx, auditEventAttackGenerated, true, tokenFingerprint(t), "", nil, func() map[string]string {
		return map[string]string{
			"kind":     string(attack.KindAlgNone),
			"variants": strconv.Itoa(len(variants)),
		}
	})
	return variants, nil
}

// ConfuseAlgorithm describes the confusealgorithm operation and its observable behavior.
//
// ConfuseAlgorithm may return an error when input validation, dependency calls, or security checks fail.
// ConfuseAlgorithm does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ConfuseAlgorithm(ctx context.Context, t *token.Token, target alg.Spec) (attack.Variant, error) {
	if err := e.ready(); err != nil {
		return attack.Variant{}, err
	}
	if t == nil {
		e.emitAudit(ctx, auditEventAttackGenerated, false, "", "", ErrNilToken, nil)
		return attack.Variant{}, ErrNilToken
	}

	variant, err := attack.Confuse(t, target)
	if err != nil {
		e.emitAudit(ctx, auditEventAttackGenerated, false, tokenFingerprint(t), "", err, func() map[string]string {
			return map[string]string{"kind": string(attack.KindConfusion), "target": target.String()}
		})
		return attack.Variant{}, err
	}

	e.metricInc(MetricAttackConfusion)
	e.emitAudit(ctx, auditEventAttackGenerated, true, tokenFingerprint(t), "", nil, func() map[string]string {
		return map[string]string{"kind": string(attack.KindConfusion), "target": target.String()}
	})
	return variant, nil
}

// ConfuseAlgorithmResign describes the confusealgorithmresign operation and its observable behavior.
//
// ConfuseAlgorithmResign may return an error when input validation, dependency calls, or security checks fail.
// ConfuseAlgorithmResign does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ConfuseAlgorithmResign(ctx context.Context, t *token.Token, target alg.Spec, publicKey alg.Key) (attack.Variant, error) {
	if err := e.ready(); err != nil {
		return attack.Variant{}, err
	}
	if t == nil {
		e.emitAudit(ctx, auditEventAttackGenerated, false, "", "", ErrNilToken, nil)
		return attack.Variant{}, ErrNilToken
	}
	source := publicKey.Raw()
	if len(source) == 0 {
		err := fmt.Errorf("public key source: %w", ErrKeyMaterialInvalid)
		e.emitAudit(ctx, auditEventAttackGenerated, false, tokenFingerprint(t), "", err, func() map[string]string {
			return map[string]string{"kind": string(attack.KindConfusionResign), "target": target.String()}
		})
		return attack.Variant{}, err
	}

	variant, err := attack.ConfuseResign(t, target, source, e.suite)
	if err != nil {
		e.emitAudit(ctx, auditEventAttackGenerated, false, tokenFingerprint(t), "", err, func() map[string]string {
			return map[string]string{"kind": string(attack.KindConfusionResign), "target": target.String()}
		})
		return attack.Variant{}, err
	}

	e.metricInc(MetricAttackConfusionResign)
	e.emitAudit(ctx, auditEventAttackGenerated, true, tokenFingerprint(t), "", nil, func() map[string]string {
		return map[string]string{"kind": string(attack.KindConfusionResign), "target": target.String()}
	})
	return variant, nil
}

// StripSignature describes the stripsignature operation and its observable behavior.
//
// StripSignature may return an error when input validation, dependency calls, or security checks fail.
// StripSignature does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) StripSignature(ctx context.Context, t *token.Token) (attack.Variant, error) {
	if err := e.ready(); err != nil {
		return attack.Variant{}, err
	}
	if t == nil {
		e.emitAudit(ctx, auditEventAttackGenerated, false, "", "", ErrNilToken, nil)
		return attack.Variant{}, ErrNilToken
	}

	variant, err := attack.StripSignature(t)
	if err != nil {
		e.emitAudit(ctx, auditEventAttackGenerated, false, tokenFingerprint(t), "", err, func() map[string]string {
			return map[string]string{"kind": string(attack.KindSignatureStrip)}
		})
		return attack.Variant{}, err
	}

	e.metricInc(MetricAttackSignatureStrip)
	e.emitAudit(ctx, auditEventAttackGenerated, true, tokenFingerprint(t), "", nil, func() map[string]string {
		return map[string]string{"kind": string(attack.KindSignatureStrip)}
	})
	return variant, nil
}

// AttackSweep describes the attacksweep operation and its observable behavior.
//
// AttackSweep may return an error when input validation, dependency calls, or security checks fail.
// AttackSweep does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AttackSweep(ctx context.Context, t *token.Token, publicKey alg.Key) ([]attack.Variant, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if t == nil {
		e.emitAudit(ctx, auditEventAttackSweep, false, "", "", ErrNilToken, nil)
		return nil, ErrNilToken
	}

	cfg := attack.SweepConfig{
		NoneVariants:    e.config.Attack.NoneVariants,
		PublicKeySource: publicKey.Raw(),
		IncludeResign:   e.config.Attack.IncludeResignConfusion,
	}
	variants, err := attack.Sweep(t, e.suite, cfg)
	if err != nil {
		e.emitAudit(ctx, auditEventAttackSweep, false, tokenFingerprint(t), "", err, nil)
		return nil, err
	}

	e.metricInc(MetricAttackSweep)
	e.emitAudit(ctx, auditEventAttackSweep, true, tokenFingerprint(t), "", nil, func() map[string]string {
		return map[string]string{"variants": strconv.Itoa(len(variants))}
	})
	return variants, nil
}
