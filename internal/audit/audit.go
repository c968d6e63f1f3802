package audit

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Event is the canonical audit event model used by internal dispatching and root APIs.
//
// TokenFP is the SHA-256 fingerprint of the token signing input, never the
// token itself. Secret material must not be copied into any Event field.
type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType string            `json:"event_type"`
	Operator  string            `json:"operator,omitempty"`
	Target    string            `json:"target,omitempty"`
	RunID     string            `json:"run_id,omitempty"`
	TokenFP   string            `json:"token_fp,omitempty"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Sink receives emitted audit events. Implementations must tolerate
// concurrent Emit calls; the dispatcher serializes delivery but tests and
// embedders may not.
type Sink interface {
	Emit(ctx context.Context, event Event)
}

// NoOpSink drops audit events.
type NoOpSink struct{}

func (NoOpSink) Emit(context.Context, Event) {}

// ChannelSink hands audit events to a consumer goroutine over a buffered
// channel. Emit blocks until the consumer takes the event or ctx is done, so
// pair it with a dispatcher in drop-if-full mode when the consumer may stall.
type ChannelSink struct {
	events chan Event
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{events: make(chan Event, buffer)}
}

func (s *ChannelSink) Emit(ctx context.Context, event Event) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// JSONWriterSink streams events as JSON lines. Suitable for appending to an
// engagement log file or piping to stderr during interactive use.
type JSONWriterSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	if w == nil {
		return &JSONWriterSink{}
	}
	return &JSONWriterSink{enc: json.NewEncoder(w)}
}

func (s *JSONWriterSink) Emit(_ context.Context, event Event) {
	if s == nil || s.enc == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Encode appends the newline; an unwritable event is dropped rather than
	// stalling the dispatcher.
	_ = s.enc.Encode(event)
}
