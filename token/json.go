package token

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Object is an insertion-ordered JSON object. Keys keep the position they first
// appeared at; overwriting an existing key keeps its position, new keys append.
// Values are one of: nil, bool, string, json.Number, *Object, []any.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{
		values: make(map[string]any),
	}
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Set stores value under key, normalizing arbitrary Go values into the internal
// JSON value set. Unmarshalable values (channels, funcs, cycles) are rejected.
func (o *Object) Set(key string, value any) error {
	v, err := normalizeValue(value)
	if err != nil {
		return err
	}
	o.setRaw(key, v)
	return nil
}

func (o *Object) setRaw(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	if o == nil {
		return false
	}
	if _, ok := o.values[key]; !ok {
		return false
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len reports the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Clone returns a deep copy.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	out := &Object{
		keys:   make([]string, len(o.keys)),
		values: make(map[string]any, len(o.values)),
	}
	copy(out.keys, o.keys)
	for k, v := range o.values {
		out.values[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case *Object:
		return x.Clone()
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = cloneValue(x[i])
		}
		return out
	default:
		return x
	}
}

// MarshalJSON serializes the object with keys in insertion order and without
// HTML escaping, so re-encoded segments stay as close to the source text as the
// mutation allows.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := appendValue(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func normalizeValue(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case bool, string, json.Number:
		return x, nil
	case *Object:
		return x, nil
	case []any:
		out := make([]any, len(x))
		for i := range x {
			nv, err := normalizeValue(x[i])
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("unsupported value: %v", err)
		}
		return decodeValueBytes(b)
	}
}

func decodeValueBytes(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	v, err := parseValue(dec)
	if err != nil {
		return nil, err
	}

	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected %v after top-level value", tok)
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return parseFrom(dec, tok)
}

func parseFrom(dec *json.Decoder, tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	default:
		// string, json.Number, bool, or nil.
		return t, nil
	}
}

func parseObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T", keyTok)
		}
		v, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		obj.setRaw(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseArray(dec *json.Decoder) ([]any, error) {
	out := make([]any, 0, 4)
	for dec.More() {
		v, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

func appendValue(buf *bytes.Buffer, v any) error {
	switch x := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if x {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case string:
		appendQuoted(buf, x)
	case json.Number:
		if len(x) == 0 {
			buf.WriteByte('0')
		} else {
			buf.WriteString(string(x))
		}
	case *Object:
		buf.WriteByte('{')
		for i, k := range x.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			appendQuoted(buf, k)
			buf.WriteByte(':')
			if err := appendValue(buf, x.values[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendValue(buf, x[i]); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return fmt.Errorf("unsupported json value %T", v)
	}
	return nil
}

const hexDigits = "0123456789abcdef"

func appendQuoted(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	start := 0
	for i := 0; i < len(s); {
		b := s[i]
		if b >= 0x20 && b != '"' && b != '\\' {
			i++
			continue
		}
		buf.WriteString(s[start:i])
		switch b {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexDigits[b>>4])
			buf.WriteByte(hexDigits[b&0xf])
		}
		i++
		start = i
	}
	buf.WriteString(s[start:])
	buf.WriteByte('"')
}

// Segment is the decoded form of one token segment: the exact decoded bytes, the
// parsed object when those bytes are a JSON object, and a diagnostic when they
// are not valid JSON at all. Invalid JSON is preserved, never rejected.
type Segment struct {
	raw []byte
	obj *Object
	err error
}

// DecodeJSONLenient parses raw strictly and keeps the original bytes regardless
// of the outcome. Valid non-object JSON (arrays, scalars) yields a Segment with
// no object and no error.
func DecodeJSONLenient(raw []byte) Segment {
	seg := Segment{raw: raw}
	v, err := decodeValueBytes(raw)
	if err != nil {
		seg.err = err
		return seg
	}
	if obj, ok := v.(*Object); ok {
		seg.obj = obj
	}
	return seg
}

// Raw returns the decoded segment bytes. Callers must not modify the slice.
func (s Segment) Raw() []byte { return s.raw }

// Object returns the parsed object, or nil when the segment is not a JSON object.
func (s Segment) Object() *Object { return s.obj }

// Err returns the JSON diagnostic, or nil when the segment parsed cleanly.
func (s Segment) Err() error { return s.err }

// IsObject reports whether the segment decoded to a JSON object.
func (s Segment) IsObject() bool { return s.obj != nil }

func (s Segment) clone() Segment {
	out := Segment{err: s.err}
	if s.raw != nil {
		out.raw = append([]byte(nil), s.raw...)
	}
	if s.obj != nil {
		out.obj = s.obj.Clone()
	}
	return out
}
