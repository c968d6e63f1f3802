package goForge

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MrEthical07/goForge/alg"
	"github.com/MrEthical07/goForge/crack"
)

// The invariants here are the ones an authorized engagement depends on:
// recovered and candidate secrets stay out of the audit trail, vault records
// honor their TTL, and tamper variants never pass verification by accident.

func TestSecurityInvariantAuditNeverCarriesSecretMaterial(t *testing.T) {
	secret := "tr0ub4dor-&3"

	cfg := engineTestConfig()
	// Every vault poll below emits a miss event; size the sink so the
	// blocking dispatcher can never wedge the poll loop.
	sink := newCaptureSink(1024)
	engine, done := buildVaultTestEngine(t, cfg, sink)

	ctx := context.Background()
	tok := testHMACToken(t, alg.HS256, secret)

	if valid, err := engine.Verify(ctx, tok, alg.HS256, alg.SecretKey([]byte(secret))); err != nil || !valid {
		done()
		t.Fatalf("verify failed: valid=%v err=%v", valid, err)
	}

	run, err := engine.StartCrackWithSecrets(ctx, tok, []string{"hunter2", "password", secret})
	if err != nil {
		done()
		t.Fatalf("start crack failed: %v", err)
	}
	res, werr := run.Wait(ctx)
	if werr != nil || res.State != crack.StateFound {
		done()
		t.Fatalf("expected found, got %+v err=%v", res, werr)
	}

	// The recovery watcher persists after the run reports done.
	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := engine.LookupRecoveredSecret(ctx, tok); err == nil {
			break
		}
		if time.Now().After(deadline) {
			done()
			t.Fatal("recovered secret never reached the vault")
		}
		time.Sleep(50 * time.Millisecond)
	}

	if _, err := engine.AlgNone(ctx, tok); err != nil {
		done()
		t.Fatalf("alg none failed: %v", err)
	}
	if _, err := engine.StripSignature(ctx, tok); err != nil {
		done()
		t.Fatalf("strip failed: %v", err)
	}

	// Close drains the dispatcher, so every accepted event is in the sink.
	done()

	leakForms := []string{
		secret,
		base64.StdEncoding.EncodeToString([]byte(secret)),
		base64.RawURLEncoding.EncodeToString([]byte(secret)),
		hex.EncodeToString([]byte(secret)),
	}

	captured := 0
drain:
	for {
		select {
		case event := <-sink.events:
			captured++
			blob, err := json.Marshal(event)
			if err != nil {
				t.Fatalf("marshal event: %v", err)
			}
			for _, form := range leakForms {
				if strings.Contains(string(blob), form) {
					t.Fatalf("audit event leaks secret material (%q): %s", form, blob)
				}
			}
		default:
			break drain
		}
	}
	if captured == 0 {
		t.Fatal("no audit events captured; invariant check saw nothing")
	}
}

func TestSecurityInvariantVaultRecordsExpire(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	cfg := engineTestConfig()
	cfg.Vault.Enabled = true
	cfg.Vault.TTL = time.Second

	engine, err := New().WithConfig(cfg).WithRedis(rdb).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	ctx := context.Background()
	tok := testHMACToken(t, alg.HS256, "short-lived")

	if err := engine.SaveRecoveredSecret(ctx, tok, []byte("short-lived"), 9, "manual"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := engine.LookupRecoveredSecret(ctx, tok); err != nil {
		t.Fatalf("lookup before expiry failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, err := engine.LookupRecoveredSecret(ctx, tok); !errors.Is(err, ErrVaultNotFound) {
		t.Fatalf("expected ErrVaultNotFound after TTL, got %v", err)
	}
}

func TestSecurityInvariantStrippedTokenFailsVerification(t *testing.T) {
	engine, done := buildTestEngine(t, engineTestConfig(), NoOpSink{})
	defer done()

	ctx := context.Background()
	tok := testHMACToken(t, alg.HS256, "k3y")

	variant, err := engine.StripSignature(ctx, tok)
	if err != nil {
		t.Fatalf("strip failed: %v", err)
	}

	valid, err := engine.Verify(ctx, variant.Token, alg.HS256, alg.SecretKey([]byte("k3y")))
	if err != nil {
		t.Fatalf("verify errored: %v", err)
	}
	if valid {
		t.Fatal("stripped token passed verification")
	}
}

func TestSecurityInvariantNoneVariantsFailHMACVerification(t *testing.T) {
	engine, done := buildTestEngine(t, engineTestConfig(), NoOpSink{})
	defer done()

	ctx := context.Background()
	tok := testHMACToken(t, alg.HS256, "k3y")

	variants, err := engine.AlgNone(ctx, tok)
	if err != nil {
		t.Fatalf("alg none failed: %v", err)
	}
	for _, v := range variants {
		valid, err := engine.Verify(ctx, v.Token, alg.HS256, alg.SecretKey([]byte("k3y")))
		if err != nil {
			t.Fatalf("verify errored on %q: %v", v.Description, err)
		}
		if valid {
			t.Fatalf("none variant %q passed HMAC verification", v.Description)
		}
	}
}

type foreverWrongSource struct{}

func (foreverWrongSource) Next() ([]byte, bool, error) { return []byte("wrong"), true, nil }
func (foreverWrongSource) Size() (uint64, bool)        { return 0, false }

func TestSecurityInvariantCancelledRunNeverReportsSecret(t *testing.T) {
	engine, done := buildTestEngine(t, engineTestConfig(), NoOpSink{})
	defer done()

	ctx := context.Background()
	tok := testHMACToken(t, alg.HS256, "unreachable")

	run, err := engine.StartCrack(ctx, tok, foreverWrongSource{})
	if err != nil {
		t.Fatalf("start crack failed: %v", err)
	}
	run.Cancel()

	res, err := run.Wait(ctx)
	if err != nil {
		t.Fatal("wait returned no result")
	}
	if res.State != crack.StateCancelled {
		t.Fatalf("expected cancelled state, got %v", res.State)
	}
	if res.Secret != nil {
		t.Fatal("cancelled run carried secret bytes")
	}
}
