package claims

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MrEthical07/goForge/token"
)

// ErrNotNumeric is an exported constant or variable used by the token engine.
var ErrNotNumeric = errors.New("claim is not numeric")

// IsTimeClaim reports whether name is one of the standard epoch-second claims.
func IsTimeClaim(name string) bool {
	switch name {
	case "exp", "iat", "nbf":
		return true
	}
	return false
}

// OffsetTimestamp returns a copy of t with the named claim shifted by delta.
// The claim is read as epoch seconds and integer values stay integers. A
// missing claim is inserted as now+delta since attack workflows commonly add an
// exp to a token that never carried one. The input token is never mutated.
func OffsetTimestamp(t *token.Token, claim string, delta time.Duration) (*token.Token, error) {
	out := t.Clone()
	obj := out.Claims()
	if obj == nil {
		return nil, fmt.Errorf("payload segment: %w", token.ErrSegmentNotObject)
	}

	deltaSeconds := int64(delta / time.Second)

	v, present := obj.Get(claim)
	if !present {
		bootstrap := time.Now().Unix() + deltaSeconds
		if err := out.SetClaim(claim, json.Number(strconv.FormatInt(bootstrap, 10))); err != nil {
			return nil, err
		}
		return out, nil
	}

	num, ok := v.(json.Number)
	if !ok {
		return nil, fmt.Errorf("claim %q: %w", claim, ErrNotNumeric)
	}

	if i, err := num.Int64(); err == nil {
		if err := out.SetClaim(claim, json.Number(strconv.FormatInt(i+deltaSeconds, 10))); err != nil {
			return nil, err
		}
		return out, nil
	}

	f, err := num.Float64()
	if err != nil {
		return nil, fmt.Errorf("claim %q: %w", claim, ErrNotNumeric)
	}
	shifted := strconv.FormatFloat(f+delta.Seconds(), 'f', -1, 64)
	if err := out.SetClaim(claim, json.Number(shifted)); err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveClaim returns a copy of t with the named claim deleted. Deleting an
// absent claim leaves the copy identical to the input.
func RemoveClaim(t *token.Token, claim string) (*token.Token, error) {
	out := t.Clone()
	if err := out.RemoveClaim(claim); err != nil {
		return nil, err
	}
	return out, nil
}
