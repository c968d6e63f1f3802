package token

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedToken is an exported constant or variable used by the token engine.
	ErrMalformedToken = errors.New("malformed compact token")
	// ErrSegmentNotObject is an exported constant or variable used by the token engine.
	ErrSegmentNotObject = errors.New("segment is not a json object")
)

// Token is the in-memory form of one compact JWT: the three raw segment texts
// plus the decoded header and payload. Raw forms are the source of truth; a
// decoded segment is only re-encoded after it has been mutated, so untouched
// segments always serialize to their original bytes.
//
// A Token is not safe for concurrent mutation. Clone before sharing across
// goroutines that write.
type Token struct {
	headerRaw    string
	payloadRaw   string
	signatureRaw string
	sigPresent   bool

	header  Segment
	payload Segment

	headerDirty  bool
	payloadDirty bool
}

// New returns an empty hand-built token with object header and payload and no
// signature segment.
func New() *Token {
	return &Token{
		header:       Segment{obj: NewObject()},
		payload:      Segment{obj: NewObject()},
		headerDirty:  true,
		payloadDirty: true,
	}
}

// Parse splits raw compact text on '.' into header, payload, and signature.
// Anything after the second dot belongs to the signature segment, so inputs
// with surplus dots still round-trip exactly. Parse fails only when fewer than
// two segments are present; base64 or JSON problems in header/payload are
// recorded per segment and never abort the parse.
func Parse(raw string) (*Token, error) {
	parts := strings.SplitN(raw, ".", 3)
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: need at least header and payload segments", ErrMalformedToken)
	}

	t := &Token{
		headerRaw:  parts[0],
		payloadRaw: parts[1],
	}
	if len(parts) == 3 {
		t.signatureRaw = parts[2]
		t.sigPresent = true
	}

	t.header = decodeNamedSegment(parts[0], "header")
	t.payload = decodeNamedSegment(parts[1], "payload")
	return t, nil
}

func decodeNamedSegment(text, name string) Segment {
	b, err := DecodeSegment(text)
	if err != nil {
		return Segment{err: fmt.Errorf("%s segment: %w", name, err)}
	}
	return DecodeJSONLenient(b)
}

// refresh re-encodes any segment mutated since the last raw form was computed.
func (t *Token) refresh() {
	if t.headerDirty {
		if t.header.obj != nil {
			if b, err := t.header.obj.MarshalJSON(); err == nil {
				t.header.raw = b
				t.headerRaw = EncodeSegment(b)
			}
		}
		t.headerDirty = false
	}
	if t.payloadDirty {
		if t.payload.obj != nil {
			if b, err := t.payload.obj.MarshalJSON(); err == nil {
				t.payload.raw = b
				t.payloadRaw = EncodeSegment(b)
			}
		}
		t.payloadDirty = false
	}
}

// Serialize joins the raw segments back into compact form. A token parsed from
// text serializes to that exact text until a segment is mutated.
func (t *Token) Serialize() string {
	t.refresh()

	var b strings.Builder
	b.Grow(len(t.headerRaw) + len(t.payloadRaw) + len(t.signatureRaw) + 2)
	b.WriteString(t.headerRaw)
	b.WriteByte('.')
	b.WriteString(t.payloadRaw)
	if t.sigPresent {
		b.WriteByte('.')
		b.WriteString(t.signatureRaw)
	}
	return b.String()
}

// SigningInput returns the exact transmitted header_raw.payload_raw text that
// signatures are computed over.
func (t *Token) SigningInput() string {
	t.refresh()
	return t.headerRaw + "." + t.payloadRaw
}

// HeaderRaw returns the header segment text.
func (t *Token) HeaderRaw() string {
	t.refresh()
	return t.headerRaw
}

// PayloadRaw returns the payload segment text.
func (t *Token) PayloadRaw() string {
	t.refresh()
	return t.payloadRaw
}

// SignatureRaw returns the signature segment text; empty for unsigned tokens.
func (t *Token) SignatureRaw() string { return t.signatureRaw }

// HasSignatureSegment reports whether the compact form carries a third segment
// at all ("a.b." vs "a.b").
func (t *Token) HasSignatureSegment() bool { return t.sigPresent }

// Header returns the decoded header object, nil when the header is not a JSON
// object. Mutate through SetHeaderField/RemoveHeaderField so re-encoding tracks
// the change.
func (t *Token) Header() *Object { return t.header.obj }

// Claims returns the decoded payload object, nil when the payload is not a JSON
// object. Mutate through SetClaim/RemoveClaim so re-encoding tracks the change.
func (t *Token) Claims() *Object { return t.payload.obj }

// HeaderSegment returns the decoded header segment.
func (t *Token) HeaderSegment() Segment {
	t.refresh()
	return t.header
}

// PayloadSegment returns the decoded payload segment.
func (t *Token) PayloadSegment() Segment {
	t.refresh()
	return t.payload
}

// HeaderErr returns the header decode diagnostic, nil when it parsed cleanly.
func (t *Token) HeaderErr() error { return t.header.err }

// PayloadErr returns the payload decode diagnostic, nil when it parsed cleanly.
func (t *Token) PayloadErr() error { return t.payload.err }

// Algorithm returns the header "alg" value when it is a string, "" otherwise.
func (t *Token) Algorithm() string {
	if t.header.obj == nil {
		return ""
	}
	v, ok := t.header.obj.Get("alg")
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// SetHeaderField writes one header field, preserving the position of existing
// keys and appending new ones.
func (t *Token) SetHeaderField(key string, value any) error {
	if t.header.obj == nil {
		return fmt.Errorf("header segment: %w", ErrSegmentNotObject)
	}
	if err := t.header.obj.Set(key, value); err != nil {
		return fmt.Errorf("header field %q: %w", key, err)
	}
	t.headerDirty = true
	return nil
}

// SetClaim writes one payload claim, preserving the position of existing keys
// and appending new ones.
func (t *Token) SetClaim(key string, value any) error {
	if t.payload.obj == nil {
		return fmt.Errorf("payload segment: %w", ErrSegmentNotObject)
	}
	if err := t.payload.obj.Set(key, value); err != nil {
		return fmt.Errorf("claim %q: %w", key, err)
	}
	t.payloadDirty = true
	return nil
}

// RemoveHeaderField deletes one header field. Removing an absent key is a no-op.
func (t *Token) RemoveHeaderField(key string) error {
	if t.header.obj == nil {
		return fmt.Errorf("header segment: %w", ErrSegmentNotObject)
	}
	if t.header.obj.Delete(key) {
		t.headerDirty = true
	}
	return nil
}

// RemoveClaim deletes one payload claim. Removing an absent key is a no-op.
func (t *Token) RemoveClaim(key string) error {
	if t.payload.obj == nil {
		return fmt.Errorf("payload segment: %w", ErrSegmentNotObject)
	}
	if t.payload.obj.Delete(key) {
		t.payloadDirty = true
	}
	return nil
}

// SetSignatureRaw installs signature segment text verbatim.
func (t *Token) SetSignatureRaw(s string) {
	t.signatureRaw = s
	t.sigPresent = true
}

// SetSignatureBytes encodes and installs raw signature bytes. Empty input
// installs the empty signature used by unsigned tokens.
func (t *Token) SetSignatureBytes(b []byte) {
	t.signatureRaw = EncodeSegment(b)
	t.sigPresent = true
}

// RemoveSignature clears the signature segment to the canonical unsigned form
// ("header.payload.").
func (t *Token) RemoveSignature() {
	t.signatureRaw = ""
	t.sigPresent = true
}

// SignatureBytes decodes the signature segment. An empty segment yields nil.
func (t *Token) SignatureBytes() ([]byte, error) {
	if t.signatureRaw == "" {
		return nil, nil
	}
	b, err := DecodeSegment(t.signatureRaw)
	if err != nil {
		return nil, fmt.Errorf("signature segment: %w", err)
	}
	return b, nil
}

// Clone returns a deep copy safe to mutate independently.
func (t *Token) Clone() *Token {
	if t == nil {
		return nil
	}
	return &Token{
		headerRaw:    t.headerRaw,
		payloadRaw:   t.payloadRaw,
		signatureRaw: t.signatureRaw,
		sigPresent:   t.sigPresent,
		header:       t.header.clone(),
		payload:      t.payload.clone(),
		headerDirty:  t.headerDirty,
		payloadDirty: t.payloadDirty,
	}
}
