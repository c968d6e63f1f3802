package token

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEncodeSegmentIsUnpadded(t *testing.T) {
	cases := [][]byte{
		{},
		[]byte("{}"),
		[]byte(`{"alg":"none"}`),
		[]byte("a"),
		[]byte("ab"),
		[]byte("abc"),
		{0x00, 0xFF, 0x10, 0x80},
	}
	for _, c := range cases {
		enc := EncodeSegment(c)
		if strings.ContainsAny(enc, "=+/") {
			t.Fatalf("expected unpadded url-safe encoding, got %q for %q", enc, c)
		}
	}
	if got := EncodeSegment([]byte("{}")); got != "e30" {
		t.Fatalf("expected e30 for empty object, got %q", got)
	}
}

func TestDecodeSegmentRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		[]byte(`{"alg":"HS256","typ":"JWT"}`),
		[]byte("{not valid json"),
		{0x00, 0x01, 0xFE, 0xFF},
	}
	for _, c := range cases {
		dec, err := DecodeSegment(EncodeSegment(c))
		if err != nil {
			t.Fatalf("decode failed for %q: %v", c, err)
		}
		if !bytes.Equal(dec, c) {
			t.Fatalf("round trip mismatch: got %q want %q", dec, c)
		}
	}
}

func TestDecodeSegmentRejectsInvalidInput(t *testing.T) {
	cases := []string{
		"e30=",
		"a+b",
		"a/b",
		"%%%",
		"a",
	}
	for _, c := range cases {
		if _, err := DecodeSegment(c); err == nil {
			t.Fatalf("expected decode of %q to fail", c)
		} else if !errors.Is(err, ErrInvalidBase64) {
			t.Fatalf("expected ErrInvalidBase64 for %q, got %v", c, err)
		}
	}
}
