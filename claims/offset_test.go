package claims

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/MrEthical07/goForge/token"
)

func payloadToken(t *testing.T, payload string) *token.Token {
	t.Helper()
	raw := token.EncodeSegment([]byte(`{"alg":"HS256"}`)) + "." + token.EncodeSegment([]byte(payload)) + ".c2ln"
	tok, err := token.Parse(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return tok
}

func claimNumber(t *testing.T, tok *token.Token, claim string) json.Number {
	t.Helper()
	v, ok := tok.Claims().Get(claim)
	if !ok {
		t.Fatalf("claim %q missing", claim)
	}
	n, ok := v.(json.Number)
	if !ok {
		t.Fatalf("claim %q is %T, not a number", claim, v)
	}
	return n
}

func TestOffsetTimestampShiftsInteger(t *testing.T) {
	tok := payloadToken(t, `{"exp":1000}`)
	out, err := OffsetTimestamp(tok, "exp", time.Hour)
	if err != nil {
		t.Fatalf("offset failed: %v", err)
	}
	if got := claimNumber(t, out, "exp"); got != "4600" {
		t.Fatalf("expected exp 4600, got %s", got)
	}

	back, err := OffsetTimestamp(out, "exp", -200*time.Second)
	if err != nil {
		t.Fatalf("negative offset failed: %v", err)
	}
	if got := claimNumber(t, back, "exp"); got != "4400" {
		t.Fatalf("expected exp 4400, got %s", got)
	}
}

func TestOffsetTimestampBootstrapsMissingClaim(t *testing.T) {
	tok := payloadToken(t, `{"sub":"1"}`)
	before := time.Now().Unix()
	out, err := OffsetTimestamp(tok, "exp", time.Hour)
	if err != nil {
		t.Fatalf("offset failed: %v", err)
	}
	after := time.Now().Unix()

	got, err := claimNumber(t, out, "exp").Int64()
	if err != nil {
		t.Fatalf("exp not an integer: %v", err)
	}
	if got < before+3600 || got > after+3600 {
		t.Fatalf("bootstrapped exp %d outside [%d, %d]", got, before+3600, after+3600)
	}

	if v, _ := out.Claims().Get("sub"); v != "1" {
		t.Fatalf("unrelated claim changed: %#v", v)
	}
}

func TestOffsetTimestampKeepsFractionalSeconds(t *testing.T) {
	tok := payloadToken(t, `{"exp":1000.5}`)
	out, err := OffsetTimestamp(tok, "exp", time.Second)
	if err != nil {
		t.Fatalf("offset failed: %v", err)
	}
	if got := claimNumber(t, out, "exp"); got != "1001.5" {
		t.Fatalf("expected exp 1001.5, got %s", got)
	}
}

func TestOffsetTimestampRejectsNonNumeric(t *testing.T) {
	for _, payload := range []string{`{"exp":"tomorrow"}`, `{"exp":true}`, `{"exp":null}`, `{"exp":[1]}`} {
		tok := payloadToken(t, payload)
		if _, err := OffsetTimestamp(tok, "exp", time.Hour); !errors.Is(err, ErrNotNumeric) {
			t.Fatalf("payload %s: expected ErrNotNumeric, got %v", payload, err)
		}
	}
}

func TestOffsetTimestampRejectsNonObjectPayload(t *testing.T) {
	tok := payloadToken(t, `[1,2]`)
	if _, err := OffsetTimestamp(tok, "exp", time.Hour); !errors.Is(err, token.ErrSegmentNotObject) {
		t.Fatalf("expected ErrSegmentNotObject, got %v", err)
	}
}

func TestOffsetTimestampIsPure(t *testing.T) {
	tok := payloadToken(t, `{"iat":500,"exp":1000,"sub":"x"}`)
	original := tok.Serialize()

	out, err := OffsetTimestamp(tok, "exp", time.Hour)
	if err != nil {
		t.Fatalf("offset failed: %v", err)
	}

	if got := tok.Serialize(); got != original {
		t.Fatalf("input token mutated: %q", got)
	}
	if out.HeaderRaw() != tok.HeaderRaw() {
		t.Fatal("header segment changed")
	}
	if out.SignatureRaw() != tok.SignatureRaw() {
		t.Fatal("signature segment changed")
	}
	if got := claimNumber(t, out, "iat"); got != "500" {
		t.Fatalf("untouched claim changed: %s", got)
	}
}

func TestRemoveClaim(t *testing.T) {
	tok := payloadToken(t, `{"sub":"1","exp":100}`)
	original := tok.Serialize()

	out, err := RemoveClaim(tok, "exp")
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, ok := out.Claims().Get("exp"); ok {
		t.Fatal("exp still present")
	}
	if tok.Serialize() != original {
		t.Fatal("input token mutated")
	}

	same, err := RemoveClaim(tok, "missing")
	if err != nil {
		t.Fatalf("remove of absent claim failed: %v", err)
	}
	if same.Serialize() != original {
		t.Fatal("no-op removal changed the token")
	}
}

func TestIsTimeClaim(t *testing.T) {
	for _, name := range []string{"exp", "iat", "nbf"} {
		if !IsTimeClaim(name) {
			t.Fatalf("expected %q to be a time claim", name)
		}
	}
	for _, name := range []string{"sub", "aud", "EXP", ""} {
		if IsTimeClaim(name) {
			t.Fatalf("expected %q to not be a time claim", name)
		}
	}
}
