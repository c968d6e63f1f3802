package goForge

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goForge/alg"
	"github.com/MrEthical07/goForge/token"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

func engineTestConfig() Config {
	cfg := defaultConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = 64
	cfg.Audit.DropIfFull = false
	cfg.Metrics.Enabled = true
	cfg.Metrics.EnableLatencyHistograms = true
	return cfg
}

func buildTestEngine(t *testing.T, cfg Config, sink AuditSink) (*Engine, func()) {
	t.Helper()

	engine, err := New().WithConfig(cfg).WithAuditSink(sink).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return engine, func() { engine.Close() }
}

func buildVaultTestEngine(t *testing.T, cfg Config, sink AuditSink) (*Engine, func()) {
	t.Helper()

	mr, rdb := newTestRedis(t)
	cfg.Vault.Enabled = true
	engine, err := New().WithConfig(cfg).WithRedis(rdb).WithAuditSink(sink).Build()
	if err != nil {
		mr.Close()
		t.Fatalf("Build failed: %v", err)
	}
	return engine, func() {
		engine.Close()
		mr.Close()
	}
}

func testUnsignedToken(t *testing.T, algName string) *token.Token {
	t.Helper()

	raw := token.EncodeSegment([]byte(`{"alg":"`+algName+`","typ":"JWT"}`)) + "." +
		token.EncodeSegment([]byte(`{"sub":"alice","exp":1700000000}`))
	tok, err := token.Parse(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return tok
}

func testHMACToken(t *testing.T, spec alg.Spec, secret string) *token.Token {
	t.Helper()

	tok := testUnsignedToken(t, spec.String())
	sig, err := alg.HMACSum(spec, []byte(secret), tok.SigningInput())
	if err != nil {
		t.Fatalf("hmac failed: %v", err)
	}
	tok.SetSignatureBytes(sig)
	return tok
}

func TestBuildWithDefaults(t *testing.T) {
	engine, err := New().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	tok, err := engine.ParseToken(context.Background(), testHMACToken(t, alg.HS256, "s3cr3t").Serialize())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if tok.Algorithm() != "HS256" {
		t.Fatalf("alg = %q", tok.Algorithm())
	}

	report := engine.EngineReport()
	if report.AuditActive || report.VaultActive || report.MetricsActive {
		t.Fatalf("default build enabled optional subsystems: %+v", report)
	}
	if report.WeakSecretCount == 0 {
		t.Fatal("expected built-in weak secret list")
	}
}

func TestBuilderAlreadyUsed(t *testing.T) {
	builder := New()
	engine, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	if _, err := builder.Build(); err == nil || err.Error() != "builder already used" {
		t.Fatalf("expected builder reuse error, got %v", err)
	}
}

func TestBuilderVaultRequiresRedis(t *testing.T) {
	cfg := defaultConfig()
	cfg.Vault.Enabled = true

	if _, err := New().WithConfig(cfg).Build(); err == nil || err.Error() != "Vault requires redis client" {
		t.Fatalf("expected redis requirement error, got %v", err)
	}
}

func TestBuilderRejectsInvalidConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Crack.MaxConcurrentRuns = 0

	if _, err := New().WithConfig(cfg).Build(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestBuilderWeakSecretOverride(t *testing.T) {
	engine, err := New().WithWeakSecrets([]string{"only-this"}).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	if got := engine.EngineReport().WeakSecretCount; got != 1 {
		t.Fatalf("weak secret count = %d, want 1", got)
	}
}

func TestEngineCloseIdempotent(t *testing.T) {
	engine, err := New().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if err := engine.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := engine.Close(); err != nil {
		t.Fatalf("second close failed: %v", err)
	}

	if _, err := engine.ParseToken(context.Background(), "a.b"); !errors.Is(err, ErrEngineClosed) {
		t.Fatalf("expected engine-closed error, got %v", err)
	}
	if _, err := engine.StartCrackWithSecrets(context.Background(), testHMACToken(t, alg.HS256, "x"), []string{"x"}); !errors.Is(err, ErrEngineClosed) {
		t.Fatalf("expected engine-closed error, got %v", err)
	}
}

func TestNilEngineSafeDefaults(t *testing.T) {
	var engine *Engine

	if err := engine.Close(); err != nil {
		t.Fatalf("nil close failed: %v", err)
	}
	if got := engine.ActiveCrackRuns(); got != 0 {
		t.Fatalf("active runs = %d", got)
	}
	if got := engine.AuditDropped(); got != 0 {
		t.Fatalf("dropped = %d", got)
	}
	if snap := engine.MetricsSnapshot(); len(snap.Counters) != 0 || len(snap.Histograms) != 0 {
		t.Fatalf("snapshot not empty: %+v", snap)
	}
	if report := engine.EngineReport(); report.MaxConcurrentRuns != 0 {
		t.Fatalf("report not zero: %+v", report)
	}
	if _, err := engine.ParseToken(context.Background(), "a.b"); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("expected not-ready error, got %v", err)
	}
}

func TestEngineReportReflectsConfig(t *testing.T) {
	cfg := AggressiveConfig()
	cfg.Audit.Enabled = true

	engine, done := buildVaultTestEngine(t, cfg, nil)
	defer done()

	report := engine.EngineReport()
	if len(report.Algorithms) != len(alg.Supported()) {
		t.Fatalf("algorithms = %d, want %d", len(report.Algorithms), len(alg.Supported()))
	}
	if !report.ResignConfusionActive {
		t.Fatal("expected resign confusion active under aggressive config")
	}
	if !report.InferenceActive {
		t.Fatal("expected inference active under aggressive config")
	}
	if len(report.NoneVariants) != 7 {
		t.Fatalf("none variants = %d, want 7", len(report.NoneVariants))
	}
	if report.MaxConcurrentRuns != 8 {
		t.Fatalf("max concurrent runs = %d, want 8", report.MaxConcurrentRuns)
	}
	if !report.VaultActive || report.VaultPrefix != "gfv" {
		t.Fatalf("vault posture wrong: %+v", report)
	}
	if !report.AuditActive {
		t.Fatal("expected audit active")
	}
	if report.MetricsActive {
		t.Fatal("metrics should stay off unless enabled")
	}
}

func TestSupportedAlgorithmsRegistryOrder(t *testing.T) {
	engine, err := New().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	specs := engine.SupportedAlgorithms()
	if len(specs) != 13 {
		t.Fatalf("registry size = %d, want 13", len(specs))
	}
	if specs[0] != alg.None {
		t.Fatalf("first spec = %s, want none", specs[0])
	}
}
