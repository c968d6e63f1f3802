package goForge

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MrEthical07/goForge/alg"
)

type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) Emit(context.Context, AuditEvent) {
	s.count.Add(1)
}

func (s *countingSink) Count() int64 {
	return s.count.Load()
}

type captureSink struct {
	events chan AuditEvent
}

func newCaptureSink(buffer int) *captureSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &captureSink{
		events: make(chan AuditEvent, buffer),
	}
}

func (s *captureSink) Emit(ctx context.Context, event AuditEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

func TestAuditDisabledNoSinkCalls(t *testing.T) {
	cfg := engineTestConfig()
	cfg.Audit.Enabled = false

	sink := &countingSink{}
	engine, done := buildTestEngine(t, cfg, sink)
	defer done()

	ctx := context.Background()
	if _, err := engine.ParseToken(ctx, "notatoken"); err == nil {
		t.Fatal("expected parse failure")
	}
	tok := testHMACToken(t, alg.HS256, "s3cr3t")
	if _, err := engine.Sign(ctx, tok, alg.HS256, alg.SecretKey([]byte("s3cr3t"))); err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if sink.Count() != 0 {
		t.Fatalf("expected no audit sink calls when disabled, got %d", sink.Count())
	}
}

func TestAuditEnabledSinkReceivesEventWithFields(t *testing.T) {
	sink := newCaptureSink(8)
	engine, done := buildTestEngine(t, engineTestConfig(), sink)
	defer done()

	ctx := WithTarget(WithOperator(context.Background(), "analyst-7"), "api.example.test")
	tok := testHMACToken(t, alg.HS256, "s3cr3t")
	if _, err := engine.Sign(ctx, tok, alg.HS256, alg.SecretKey([]byte("s3cr3t"))); err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	select {
	case ev := <-sink.events:
		if ev.EventType != "token_signed" {
			t.Fatalf("event type = %q, want token_signed", ev.EventType)
		}
		if ev.Operator != "analyst-7" {
			t.Fatalf("operator = %q, want analyst-7", ev.Operator)
		}
		if ev.Target != "api.example.test" {
			t.Fatalf("target = %q, want api.example.test", ev.Target)
		}
		if ev.TokenFP == "" {
			t.Fatal("expected token fingerprint to be populated")
		}
		if !ev.Success {
			t.Fatal("expected success event")
		}
		if ev.Metadata["alg"] != "HS256" {
			t.Fatalf("metadata alg = %q, want HS256", ev.Metadata["alg"])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected audit event to be received")
	}
}

func TestAuditErrorFieldCarriesCodeNotErrorText(t *testing.T) {
	sink := newCaptureSink(8)
	engine, done := buildTestEngine(t, engineTestConfig(), sink)
	defer done()

	if _, err := engine.ParseToken(context.Background(), "justonesegment"); err == nil {
		t.Fatal("expected parse failure")
	}

	select {
	case ev := <-sink.events:
		if ev.EventType != "token_parsed" {
			t.Fatalf("event type = %q, want token_parsed", ev.EventType)
		}
		if ev.Success {
			t.Fatal("expected failure event")
		}
		if ev.Error != "malformed_token" {
			t.Fatalf("error field = %q, want stable code malformed_token", ev.Error)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected audit event to be received")
	}
}

func TestAuditChannelSinkReceivesEvents(t *testing.T) {
	sink := NewChannelSink(8)
	engine, done := buildTestEngine(t, engineTestConfig(), sink)
	defer done()

	tok := testHMACToken(t, alg.HS256, "s3cr3t")
	if _, err := engine.StripSignature(context.Background(), tok); err != nil {
		t.Fatalf("strip failed: %v", err)
	}

	select {
	case ev := <-sink.Events():
		if ev.EventType != "attack_generated" {
			t.Fatalf("event type = %q, want attack_generated", ev.EventType)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected audit event on channel sink")
	}
}

func TestAuditJSONWriterSinkWritesJSONLines(t *testing.T) {
	var buf syncBuffer
	sink := NewJSONWriterSink(&buf)
	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: auditEventCrackFound,
		Operator:  "analyst-7",
		TokenFP:   "fp-abc",
		Success:   true,
	}
	sink.Emit(context.Background(), event)

	if !buf.Contains("crack_found") {
		t.Fatal("expected JSON log line to contain event type")
	}
	if !buf.Contains("\"token_fp\":\"fp-abc\"") {
		t.Fatal("expected JSON log line to contain token fingerprint")
	}
}

func TestAuditNoSecretsInEvents(t *testing.T) {
	cfg := engineTestConfig()
	cfg.Audit.BufferSize = 64

	sensitiveSecret := "correct-horse-battery"
	candidates := []string{"hunter2-candidate", "qwerty-candidate", sensitiveSecret}

	sink := newCaptureSink(64)
	engine, done := buildVaultTestEngine(t, cfg, sink)
	defer done()

	ctx := WithOperator(context.Background(), "analyst-7")
	tok := testHMACToken(t, alg.HS256, sensitiveSecret)

	run, err := engine.StartCrackWithSecrets(ctx, tok, candidates)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	waitRun(t, run)
	waitForCounter(t, engine, MetricVaultSave, 1)

	secretNeedles := candidates

	// Collect a bounded number of audit events generated by the run above.
	events := make([]AuditEvent, 0, 8)
	timeout := time.After(2 * time.Second)
collectLoop:
	for len(events) < 8 {
		select {
		case ev := <-sink.events:
			events = append(events, ev)
		case <-timeout:
			break collectLoop
		}
	}

	if len(events) == 0 {
		t.Fatal("expected at least one audit event")
	}

	for _, ev := range events {
		fields := []string{ev.EventType, ev.Operator, ev.Target, ev.RunID, ev.TokenFP, ev.Error}
		for _, needle := range secretNeedles {
			if needle == "" {
				continue
			}
			for _, field := range fields {
				if stringContains(field, needle) {
					t.Fatalf("secret material leaked in audit field: %q", needle)
				}
			}
			for k, v := range ev.Metadata {
				if stringContains(k, needle) || stringContains(v, needle) {
					t.Fatalf("secret material leaked in audit metadata: %q", needle)
				}
			}
		}
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *syncBuffer) Contains(v string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return stringContains(string(b.buf), v)
}

func stringContains(s, sub string) bool {
	if len(sub) == 0 {
		return true
	}
	if len(sub) > len(s) {
		return false
	}
	for i := 0; i <= len(s)-len(sub); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
