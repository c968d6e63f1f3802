package crack

import (
	"context"
	"crypto"
	"crypto/hmac"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/MrEthical07/goForge/alg"
	"github.com/MrEthical07/goForge/token"
)

var (
	// ErrUnsupportedAlgorithm is an exported constant or variable used by the token engine.
	ErrUnsupportedAlgorithm = errors.New("dictionary attack needs an HMAC algorithm")
	// ErrNilSource is an exported constant or variable used by the token engine.
	ErrNilSource = errors.New("wordlist source is nil")
)

// State tracks a run through Idle, Running, and its terminal outcomes.
type State int32

const (
	// StateIdle is an exported constant or variable used by the token engine.
	StateIdle State = iota
	// StateRunning is an exported constant or variable used by the token engine.
	StateRunning
	// StateFound is an exported constant or variable used by the token engine.
	StateFound
	// StateExhausted is an exported constant or variable used by the token engine.
	StateExhausted
	// StateCancelled is an exported constant or variable used by the token engine.
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFound:
		return "found"
	case StateExhausted:
		return "exhausted"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Terminal reports whether the state is a final outcome.
func (s State) Terminal() bool {
	return s == StateFound || s == StateExhausted || s == StateCancelled
}

// Progress defines a public type used by goForge APIs.
//
// Progress instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Progress struct {
	Attempts   uint64
	Total      uint64
	TotalKnown bool
	State      State
}

// Result defines a public type used by goForge APIs.
//
// Result instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Result struct {
	State    State
	Secret   []byte
	Attempts uint64
	// Err is set when the wordlist supply failed before exhaustion.
	Err error
}

// Config defines a public type used by goForge APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// Spec forces the HMAC spec instead of resolving the token's header alg.
	// Useful when the header lies about or omits the real algorithm.
	Spec alg.Spec
	// ProgressEvery invokes OnProgress every N attempts; zero disables the
	// periodic callbacks. The terminal transition always notifies.
	ProgressEvery uint64
	// OnProgress observes attempt milestones from the worker goroutine.
	OnProgress func(Progress)
}

// Run is one dictionary attack against one token. Each run owns its counters
// and worker; handles are safe for concurrent use.
type Run struct {
	id    uuid.UUID
	spec  alg.Spec
	hash  crypto.Hash
	input []byte
	want  []byte

	source Source
	cfg    Config

	state      atomic.Int32
	attempts   atomic.Uint64
	total      uint64
	totalKnown bool

	cancel     chan struct{}
	cancelOnce sync.Once
	done       chan struct{}
	result     Result
}

// Start validates the token against the wordlist attack preconditions and
// launches the worker. The token's algorithm must resolve to an HMAC spec and
// its signature segment must decode; candidates are then tried in source
// order until a digest matches, the source runs out, or Cancel is observed.
//
// Start may return an error when input validation, dependency calls, or security checks fail.
// Start does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func Start(t *token.Token, source Source, cfg Config) (*Run, error) {
	if source == nil {
		return nil, ErrNilSource
	}

	spec := cfg.Spec
	if !spec.Valid() {
		resolved, ok := alg.FromHeaderString(t.Algorithm())
		if !ok {
			return nil, fmt.Errorf("%w: header alg %q not in registry", ErrUnsupportedAlgorithm, t.Algorithm())
		}
		spec = resolved
	}
	if spec.Family() != alg.FamilyHMAC {
		return nil, fmt.Errorf("%w: got %s", ErrUnsupportedAlgorithm, spec)
	}

	want, err := t.SignatureBytes()
	if err != nil {
		return nil, err
	}

	r := &Run{
		id:     uuid.New(),
		spec:   spec,
		hash:   spec.Hash(),
		input:  []byte(t.SigningInput()),
		want:   want,
		source: source,
		cfg:    cfg,
		cancel: make(chan struct{}),
		done:   make(chan struct{}),
	}
	r.total, r.totalKnown = source.Size()

	go r.run()
	return r, nil
}

func (r *Run) run() {
	r.state.Store(int32(StateRunning))

	for {
		select {
		case <-r.cancel:
			r.finish(Result{State: StateCancelled, Attempts: r.attempts.Load()})
			return
		default:
		}

		candidate, ok, err := r.source.Next()
		if err != nil {
			r.finish(Result{
				State:    StateExhausted,
				Attempts: r.attempts.Load(),
				Err:      fmt.Errorf("wordlist read: %w", err),
			})
			return
		}
		if !ok {
			r.finish(Result{State: StateExhausted, Attempts: r.attempts.Load()})
			return
		}

		attempt := r.attempts.Add(1)
		mac := hmac.New(r.hash.New, candidate)
		mac.Write(r.input)
		if hmac.Equal(mac.Sum(nil), r.want) {
			secret := make([]byte, len(candidate))
			copy(secret, candidate)
			r.finish(Result{State: StateFound, Secret: secret, Attempts: attempt})
			return
		}

		if r.cfg.ProgressEvery > 0 && attempt%r.cfg.ProgressEvery == 0 {
			r.notify()
		}
	}
}

func (r *Run) finish(res Result) {
	r.result = res
	r.state.Store(int32(res.State))
	// Terminal notify precedes the done close so a caller that waits and then
	// inspects callback state sees every delivery.
	r.notify()
	close(r.done)
}

func (r *Run) notify() {
	if r.cfg.OnProgress == nil {
		return
	}
	r.cfg.OnProgress(r.Progress())
}

// ID returns the run's unique identifier.
func (r *Run) ID() uuid.UUID { return r.id }

// Spec returns the HMAC spec the run resolved at start.
func (r *Run) Spec() alg.Spec { return r.spec }

// State returns the current machine state without blocking.
func (r *Run) State() State {
	return State(r.state.Load())
}

// Progress snapshots the run without blocking it.
//
// Progress does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *Run) Progress() Progress {
	return Progress{
		Attempts:   r.attempts.Load(),
		Total:      r.total,
		TotalKnown: r.totalKnown,
		State:      r.State(),
	}
}

// Cancel requests a cooperative stop. The worker observes it between
// candidates, never mid-digest, so the run halts within one attempt.
//
// Cancel does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *Run) Cancel() {
	r.cancelOnce.Do(func() { close(r.cancel) })
}

// Done closes once the run reaches a terminal state.
func (r *Run) Done() <-chan struct{} { return r.done }

// Result returns the outcome and true once the run is terminal.
//
// Result does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *Run) Result() (Result, bool) {
	select {
	case <-r.done:
		return r.result, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the run terminates or the context expires.
//
// Wait may return an error when input validation, dependency calls, or security checks fail.
// Wait does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *Run) Wait(ctx context.Context) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-r.done:
		return r.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
