package token

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrInvalidBase64 is an exported constant or variable used by the token engine.
var ErrInvalidBase64 = errors.New("invalid base64url segment")

// DecodeSegment decodes one compact-serialization segment. Segments use unpadded
// base64url; padded or otherwise illegal input fails wrapping [ErrInvalidBase64].
func DecodeSegment(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}
	return b, nil
}

// EncodeSegment encodes raw bytes into unpadded base64url segment text.
func EncodeSegment(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}
