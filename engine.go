package goForge

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrEthical07/goForge/alg"
	"github.com/MrEthical07/goForge/crack"
	internalaudit "github.com/MrEthical07/goForge/internal/audit"
	"github.com/MrEthical07/goForge/vault"
	"github.com/google/uuid"
)

// Engine defines a public type used by goForge APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config      Config
	suite       *alg.Suite
	vault       *vault.Store
	audit       *internalaudit.Dispatcher
	metrics     *Metrics
	weakSecrets []string

	runMu sync.Mutex
	runs  map[uuid.UUID]*crack.Run

	watchers  sync.WaitGroup
	closed    atomic.Bool
	closeOnce sync.Once
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() error {
	if e == nil {
		return nil
	}
	e.closeOnce.Do(func() {
		e.closed.Store(true)

		e.runMu.Lock()
		live := make([]*crack.Run, 0, len(e.runs))
		for _, r := range e.runs {
			live = append(live, r)
		}
		e.runMu.Unlock()

		for _, r := range live {
			r.Cancel()
		}
		// Watchers emit the terminal audit events, so they must drain before
		// the dispatcher closes.
		e.watchers.Wait()

		if e.audit != nil {
			e.audit.Close()
		}
	})
	return nil
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) ready() error {
	if e == nil {
		return ErrEngineNotReady
	}
	if e.closed.Load() {
		return ErrEngineClosed
	}
	return nil
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) metricAdd(id MetricID, n uint64) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Add(id, n)
}

func (e *Engine) metricObserve(id MetricID, d time.Duration) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Observe(id, d)
}
