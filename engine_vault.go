package goForge

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/MrEthical07/goForge/token"
	"github.com/MrEthical07/goForge/vault"
)

// LookupRecoveredSecret describes the lookuprecoveredsecret operation and its observable behavior.
//
// LookupRecoveredSecret may return an error when input validation, dependency calls, or security checks fail.
// LookupRecoveredSecret does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) LookupRecoveredSecret(ctx context.Context, t *token.Token) ([]byte, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if t == nil {
		e.emitAudit(ctx, auditEventVaultMiss, false, "", "", ErrNilToken, nil)
		return nil, ErrNilToken
	}
	if e.vault == nil {
		e.emitAudit(ctx, auditEventVaultMiss, false, tokenFingerprint(t), "", ErrVaultDisabled, nil)
		return nil, ErrVaultDisabled
	}

	fp := tokenFingerprint(t)
	rec, err := e.vault.Get(ctx, fp)
	if err != nil {
		if errors.Is(err, ErrVaultNotFound) {
			e.metricInc(MetricVaultMiss)
		} else {
			e.metricInc(MetricVaultFailure)
		}
		e.emitAudit(ctx, auditEventVaultMiss, false, fp, "", err, nil)
		return nil, err
	}

	e.metricInc(MetricVaultHit)
	e.emitAudit(ctx, auditEventVaultHit, true, fp, "", nil, func() map[string]string {
		return map[string]string{
			"alg":      rec.Algorithm,
			"attempts": strconv.FormatUint(rec.Attempts, 10),
		}
	})
	return rec.Secret, nil
}

// SaveRecoveredSecret describes the saverecoveredsecret operation and its observable behavior.
//
// SaveRecoveredSecret may return an error when input validation, dependency calls, or security checks fail.
// SaveRecoveredSecret does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SaveRecoveredSecret(ctx context.Context, t *token.Token, secret []byte, attempts uint64, source string) error {
	if err := e.ready(); err != nil {
		return err
	}
	if t == nil {
		e.emitAudit(ctx, auditEventVaultSave, false, "", "", ErrNilToken, nil)
		return ErrNilToken
	}
	if e.vault == nil {
		e.emitAudit(ctx, auditEventVaultSave, false, tokenFingerprint(t), "", ErrVaultDisabled, nil)
		return ErrVaultDisabled
	}
	if source == "" {
		source = sourceTagFromContext(ctx)
	}

	fp := tokenFingerprint(t)
	rec := &vault.Record{
		Fingerprint: fp,
		Secret:      secret,
		Algorithm:   t.Algorithm(),
		Attempts:    attempts,
		Source:      source,
		RecoveredAt: time.Now().Unix(),
	}
	stored, err := e.vault.Save(ctx, rec)
	if err != nil {
		e.metricInc(MetricVaultFailure)
		e.emitAudit(ctx, auditEventVaultSave, false, fp, "", err, nil)
		return err
	}

	e.metricInc(MetricVaultSave)
	e.emitAudit(ctx, auditEventVaultSave, true, fp, "", nil, func() map[string]string {
		return map[string]string{"stored": strconv.FormatBool(stored)}
	})
	return nil
}
