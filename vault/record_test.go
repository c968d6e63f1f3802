package vault

import (
	"bytes"
	"strings"
	"testing"
)

func TestRecordEncodeDecode(t *testing.T) {
	rec := &Record{
		Fingerprint: "ZmluZ2VycHJpbnQ",
		Secret:      []byte("keyboard cat"),
		Algorithm:   "HS512",
		Attempts:    41234,
		Source:      "weak-builtin",
		RecoveredAt: 1699999999,
	}

	data, err := Encode(rec)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if data[0] != recordFormatVersionCurrent {
		t.Fatalf("version byte = %d", data[0])
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Fingerprint != rec.Fingerprint ||
		!bytes.Equal(got.Secret, rec.Secret) ||
		got.Algorithm != rec.Algorithm ||
		got.Attempts != rec.Attempts ||
		got.Source != rec.Source ||
		got.RecoveredAt != rec.RecoveredAt {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestRecordEncodeEmptySecret(t *testing.T) {
	rec := &Record{Fingerprint: "fp", Algorithm: "HS256"}

	data, err := Encode(rec)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Secret) != 0 {
		t.Fatalf("secret = %q", got.Secret)
	}
}

func TestRecordEncodeRejectsOversizedFields(t *testing.T) {
	if _, err := Encode(&Record{Fingerprint: strings.Repeat("x", 256)}); err == nil {
		t.Fatalf("oversized fingerprint accepted")
	}
	if _, err := Encode(&Record{Secret: make([]byte, 65536)}); err == nil {
		t.Fatalf("oversized secret accepted")
	}
	if _, err := Encode(&Record{Source: strings.Repeat("s", 256)}); err == nil {
		t.Fatalf("oversized source accepted")
	}
}

func TestRecordDecodeRejectsBadInput(t *testing.T) {
	if _, err := Decode(nil); err == nil {
		t.Fatalf("empty input accepted")
	}
	if _, err := Decode([]byte{99}); err == nil {
		t.Fatalf("unknown version accepted")
	}

	valid, err := Encode(testRecord())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for cut := 1; cut < len(valid); cut++ {
		if _, err := Decode(valid[:cut]); err == nil {
			t.Fatalf("truncation at %d accepted", cut)
		}
	}
}

// FuzzRecordDecode exercises the binary record decoder with arbitrary inputs.
// Goal: no panics, no unexpected nil dereferences, graceful error handling.
func FuzzRecordDecode(f *testing.F) {
	encoded, err := Encode(testRecord())
	if err == nil {
		f.Add(encoded)
	}

	f.Add([]byte{})
	f.Add([]byte{0})
	f.Add([]byte{1})
	f.Add([]byte{255, 255, 255})
	if len(encoded) > 10 {
		f.Add(encoded[:10])
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		rec, err := Decode(data)
		if err != nil {
			return
		}
		if _, err := Encode(rec); err != nil {
			t.Fatalf("re-encode of decoded record failed: %v", err)
		}
	})
}
