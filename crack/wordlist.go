package crack

import (
	"bufio"
	"io"
)

// Candidates longer than this abort the run with a read error.
const maxCandidateBytes = 1 << 20

// Source streams candidate secrets to a run. Next returns the next candidate
// and true, or false once the sequence is exhausted; a non-nil error means the
// underlying supply failed mid-iteration and the run cannot continue.
type Source interface {
	Next() ([]byte, bool, error)
	// Size reports the total candidate count when the source knows it up front.
	Size() (n uint64, known bool)
}

// SliceSource defines a public type used by goForge APIs.
//
// SliceSource instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SliceSource struct {
	candidates [][]byte
	pos        int
}

// NewSliceSource wraps an in-memory wordlist. Candidate slices are handed to
// the run as given and must not be mutated while it consumes them.
func NewSliceSource(candidates ...[]byte) *SliceSource {
	return &SliceSource{candidates: candidates}
}

// NewStringSource wraps string candidates, copying each into bytes.
func NewStringSource(candidates ...string) *SliceSource {
	out := make([][]byte, len(candidates))
	for i, c := range candidates {
		out[i] = []byte(c)
	}
	return &SliceSource{candidates: out}
}

// Next describes the next operation and its observable behavior.
//
// Next may return an error when input validation, dependency calls, or security checks fail.
// Next does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *SliceSource) Next() ([]byte, bool, error) {
	if s.pos >= len(s.candidates) {
		return nil, false, nil
	}
	c := s.candidates[s.pos]
	s.pos++
	return c, true, nil
}

// Size describes the size operation and its observable behavior.
//
// Size does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *SliceSource) Size() (uint64, bool) {
	return uint64(len(s.candidates)), true
}

// ReaderSource defines a public type used by goForge APIs.
//
// ReaderSource instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ReaderSource struct {
	scanner *bufio.Scanner
}

// NewReaderSource yields one candidate per line, empty lines included. The
// total count is unknown until exhaustion.
func NewReaderSource(r io.Reader) *ReaderSource {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxCandidateBytes)
	return &ReaderSource{scanner: sc}
}

// Next describes the next operation and its observable behavior.
//
// Next may return an error when input validation, dependency calls, or security checks fail.
// Next does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *ReaderSource) Next() ([]byte, bool, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}
	// Scanner reuses its buffer across lines.
	line := s.scanner.Bytes()
	out := make([]byte, len(line))
	copy(out, line)
	return out, true, nil
}

// Size describes the size operation and its observable behavior.
//
// Size does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *ReaderSource) Size() (uint64, bool) {
	return 0, false
}
