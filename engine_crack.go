package goForge

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/MrEthical07/goForge/alg"
	"github.com/MrEthical07/goForge/crack"
	"github.com/MrEthical07/goForge/token"
	"github.com/MrEthical07/goForge/vault"
)

// StartCrack describes the startcrack operation and its observable behavior.
//
// StartCrack may return an error when input validation, dependency calls, or security checks fail.
// StartCrack does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) StartCrack(ctx context.Context, t *token.Token, source crack.Source) (*crack.Run, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if t == nil {
		e.metricInc(MetricCrackRejected)
		e.emitAudit(ctx, auditEventCrackRejected, false, "", "", ErrNilToken, nil)
		return nil, ErrNilToken
	}
	return e.startCrack(ctx, t, source)
}

// StartCrackWithSecrets describes the startcrackwithsecrets operation and its observable behavior.
//
// StartCrackWithSecrets may return an error when input validation, dependency calls, or security checks fail.
// StartCrackWithSecrets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) StartCrackWithSecrets(ctx context.Context, t *token.Token, secrets []string) (*crack.Run, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if t == nil {
		e.metricInc(MetricCrackRejected)
		e.emitAudit(ctx, auditEventCrackRejected, false, "", "", ErrNilToken, nil)
		return nil, ErrNilToken
	}
	return e.startCrack(ctx, t, crack.NewStringSource(secrets...))
}

// QuickScan describes the quickscan operation and its observable behavior.
//
// QuickScan may return an error when input validation, dependency calls, or security checks fail.
// QuickScan does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) QuickScan(ctx context.Context, t *token.Token) (*crack.Run, error) {
	return e.StartCrackWithSecrets(ctx, t, e.weakSecrets)
}

// CrackRun describes the crackrun operation and its observable behavior.
//
// CrackRun does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) CrackRun(id uuid.UUID) (*crack.Run, bool) {
	if e == nil {
		return nil, false
	}
	e.runMu.Lock()
	defer e.runMu.Unlock()
	run, ok := e.runs[id]
	return run, ok
}

// ActiveCrackRuns describes the activecrackruns operation and its observable behavior.
//
// ActiveCrackRuns does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ActiveCrackRuns() int {
	if e == nil {
		return 0
	}
	e.runMu.Lock()
	defer e.runMu.Unlock()
	return e.activeRunsLocked()
}

func (e *Engine) startCrack(ctx context.Context, t *token.Token, source crack.Source) (*crack.Run, error) {
	fp := tokenFingerprint(t)

	runCfg := crack.Config{ProgressEvery: e.config.Crack.ProgressEvery}
	if _, ok := alg.FromHeaderString(t.Algorithm()); !ok && e.config.Crack.InferAlgorithmFromSignature {
		if inferred, ok := alg.InferFromSignature(t.SignatureRaw()); ok {
			runCfg.Spec = inferred
		}
	}

	start := time.Now()

	e.runMu.Lock()
	if e.closed.Load() {
		e.runMu.Unlock()
		return nil, ErrEngineClosed
	}
	if e.activeRunsLocked() >= e.config.Crack.MaxConcurrentRuns {
		e.runMu.Unlock()
		e.metricInc(MetricCrackRejected)
		e.emitAudit(ctx, auditEventCrackRejected, false, fp, "", ErrTooManyCrackRuns, nil)
		return nil, ErrTooManyCrackRuns
	}
	run, err := crack.Start(t, source, runCfg)
	if err != nil {
		e.runMu.Unlock()
		e.metricInc(MetricCrackRejected)
		e.emitAudit(ctx, auditEventCrackRejected, false, fp, "", err, nil)
		return nil, err
	}
	e.runs[run.ID()] = run
	e.watchers.Add(1)
	e.runMu.Unlock()

	e.metricInc(MetricCrackStarted)
	e.emitAudit(ctx, auditEventCrackStarted, true, fp, run.ID().String(), nil, func() map[string]string {
		md := map[string]string{"alg": run.Spec().String()}
		if n, known := source.Size(); known {
			md["candidates"] = strconv.FormatUint(n, 10)
		}
		return md
	})

	go e.watchCrackRun(detachAuditContext(ctx), run, fp, sourceTagFromContext(ctx), start)
	return run, nil
}

// detachAuditContext carries the audit attribution of ctx into a fresh
// background context so terminal events keep their operator and target after
// the caller's context is cancelled.
func detachAuditContext(ctx context.Context) context.Context {
	out := context.Background()
	if op := operatorFromContext(ctx); op != "" {
		out = WithOperator(out, op)
	}
	if tg := targetFromContext(ctx); tg != "" {
		out = WithTarget(out, tg)
	}
	return out
}

// watchCrackRun blocks on the run's done channel and emits the terminal
// metrics, audit event, and vault write. One watcher per run; Close waits for
// all of them before shutting the dispatcher down.
func (e *Engine) watchCrackRun(ctx context.Context, run *crack.Run, fp, sourceTag string, start time.Time) {
	defer e.watchers.Done()
	<-run.Done()

	res, _ := run.Result()
	runID := run.ID().String()

	e.metricAdd(MetricCrackAttempts, res.Attempts)
	e.metricObserve(MetricCrackDuration, time.Since(start))

	switch res.State {
	case crack.StateFound:
		e.metricInc(MetricCrackFound)
		e.emitAudit(ctx, auditEventCrackFound, true, fp, runID, nil, func() map[string]string {
			return map[string]string{
				"alg":      run.Spec().String(),
				"attempts": strconv.FormatUint(res.Attempts, 10),
			}
		})
		e.persistRecovery(ctx, fp, run, res, sourceTag)
	case crack.StateCancelled:
		e.metricInc(MetricCrackCancelled)
		e.emitAudit(ctx, auditEventCrackCancelled, false, fp, runID, nil, func() map[string]string {
			return map[string]string{"attempts": strconv.FormatUint(res.Attempts, 10)}
		})
	default:
		e.metricInc(MetricCrackExhausted)
		e.emitAudit(ctx, auditEventCrackExhausted, false, fp, runID, res.Err, func() map[string]string {
			return map[string]string{"attempts": strconv.FormatUint(res.Attempts, 10)}
		})
	}
}

func (e *Engine) persistRecovery(ctx context.Context, fp string, run *crack.Run, res crack.Result, sourceTag string) {
	if e.vault == nil {
		return
	}

	rec := &vault.Record{
		Fingerprint: fp,
		Secret:      res.Secret,
		Algorithm:   run.Spec().String(),
		Attempts:    res.Attempts,
		Source:      sourceTag,
		RecoveredAt: time.Now().Unix(),
	}
	stored, err := e.vault.Save(ctx, rec)
	if err != nil {
		e.metricInc(MetricVaultFailure)
		e.emitAudit(ctx, auditEventVaultSave, false, fp, run.ID().String(), err, nil)
		return
	}

	e.metricInc(MetricVaultSave)
	e.emitAudit(ctx, auditEventVaultSave, true, fp, run.ID().String(), nil, func() map[string]string {
		return map[string]string{"stored": strconv.FormatBool(stored)}
	})
}

// activeRunsLocked counts non-terminal runs. Callers hold runMu.
func (e *Engine) activeRunsLocked() int {
	n := 0
	for _, run := range e.runs {
		if !run.State().Terminal() {
			n++
		}
	}
	return n
}
