package audit

import (
	"context"
	"sync"
	"sync/atomic"
)

// Config controls dispatcher buffering behavior.
type Config struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// Dispatcher decouples engine operations from sink latency: Emit enqueues,
// a single worker goroutine delivers in order. Every event that fails to
// enqueue is counted, and the engine surfaces that count, so operators can
// tell when the audit trail has gaps.
//
// A nil *Dispatcher is valid and drops everything, so callers emit without
// checking whether auditing is configured.
type Dispatcher struct {
	sink       Sink
	queue      chan Event
	dropIfFull bool

	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

func NewDispatcher(cfg Config, sink Sink) *Dispatcher {
	if !cfg.Enabled {
		return nil
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	d := &Dispatcher{
		sink:       sink,
		queue:      make(chan Event, cfg.BufferSize),
		dropIfFull: cfg.DropIfFull,
		done:       make(chan struct{}),
	}

	d.wg.Add(1)
	go d.deliver()

	return d
}

// deliver is the single consumer of the queue. Sink calls happen here, never
// on the engine's calling goroutine.
func (d *Dispatcher) deliver() {
	defer d.wg.Done()

	for {
		select {
		case event := <-d.queue:
			d.sink.Emit(context.Background(), event)
		case <-d.done:
			d.drain()
			return
		}
	}
}

// drain flushes whatever was accepted before Close so shutdown never loses
// enqueued events.
func (d *Dispatcher) drain() {
	for {
		select {
		case event := <-d.queue:
			d.sink.Emit(context.Background(), event)
		default:
			return
		}
	}
}

func (d *Dispatcher) Emit(ctx context.Context, event Event) {
	if d == nil {
		return
	}
	if d.closed.Load() {
		d.dropped.Add(1)
		return
	}

	if d.dropIfFull {
		d.emitOrDrop(event)
		return
	}
	d.emitOrWait(ctx, event)
}

// emitOrDrop never blocks the attack path; a full queue costs an event and
// bumps the drop counter.
func (d *Dispatcher) emitOrDrop(event Event) {
	select {
	case d.queue <- event:
	case <-d.done:
		d.dropped.Add(1)
	default:
		d.dropped.Add(1)
	}
}

// emitOrWait applies backpressure to the caller until the queue accepts the
// event, the context expires, or the dispatcher shuts down.
func (d *Dispatcher) emitOrWait(ctx context.Context, event Event) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case d.queue <- event:
	case <-ctx.Done():
		d.dropped.Add(1)
	case <-d.done:
		d.dropped.Add(1)
	}
}

func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}

// Dropped reports how many events were lost to backpressure, context
// cancellation, or post-close emission.
func (d *Dispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
