package vault

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is an exported constant or variable used by the token engine.
var ErrNotFound = errors.New("no recovered secret for fingerprint")

// ErrVaultUnavailable is an exported constant or variable used by the token engine.
var ErrVaultUnavailable = errors.New("vault redis unavailable")

const saveIfAbsentScript = `
if redis.call("EXISTS", KEYS[1]) == 1 then
  return 0
end
local px = tonumber(ARGV[2])
if px > 0 then
  redis.call("SET", KEYS[1], ARGV[1], "PX", px)
else
  redis.call("SET", KEYS[1], ARGV[1])
end
return 1
`

var saveIfAbsentLua = redis.NewScript(saveIfAbsentScript)

// Store is a Redis-backed vault for recovered secrets keyed by token
// fingerprint. Writes are first-wins so a re-discovered secret keeps its
// original attempt count and recovery time.
type Store struct {
	redis  redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewStore creates a vault [Store] backed by the given Redis client. prefix
// sets the key namespace ("gfv" when empty); ttl bounds how long recoveries
// persist, zero or negative meaning no expiry.
func NewStore(redis redis.UniversalClient, prefix string, ttl time.Duration) *Store {
	if prefix == "" {
		prefix = "gfv"
	}
	return &Store{redis: redis, prefix: prefix, ttl: ttl}
}

func (s *Store) key(fingerprint string) string {
	return s.prefix + ":" + fingerprint
}

// Save persists a record unless one already exists for the fingerprint. The
// returned bool reports whether this record was written; false means an
// earlier recovery was kept.
//
//	Performance: 1 Lua EVALSHA (atomic write-if-absent).
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) Save(ctx context.Context, rec *Record) (bool, error) {
	data, err := Encode(rec)
	if err != nil {
		return false, err
	}

	px := int64(0)
	if s.ttl > 0 {
		px = s.ttl.Milliseconds()
	}

	stored, err := saveIfAbsentLua.Run(ctx, s.redis, []string{s.key(rec.Fingerprint)}, data, px).Int64()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrVaultUnavailable, err)
	}
	return stored == 1, nil
}

// Get retrieves the record for a fingerprint, or ErrNotFound.
//
//	Performance: 1 Redis GET.
//
// Get may return an error when input validation, dependency calls, or security checks fail.
// Get does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) Get(ctx context.Context, fingerprint string) (*Record, error) {
	data, err := s.redis.Get(ctx, s.key(fingerprint)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrVaultUnavailable, err)
	}

	rec, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes the record for a fingerprint. Deleting a missing record is
// not an error.
func (s *Store) Delete(ctx context.Context, fingerprint string) error {
	if err := s.redis.Del(ctx, s.key(fingerprint)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrVaultUnavailable, err)
	}
	return nil
}

// Count scans the vault namespace and returns the number of stored records.
// This is an admin-only O(n) operation and must not be used in request hot paths.
func (s *Store) Count(ctx context.Context) (int64, error) {
	pattern := s.prefix + ":*"
	var (
		cursor uint64
		total  int64
	)

	for {
		keys, next, err := s.redis.Scan(ctx, cursor, pattern, 1000).Result()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrVaultUnavailable, err)
		}
		total += int64(len(keys))
		cursor = next
		if cursor == 0 {
			break
		}
	}

	return total, nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrVaultUnavailable, err)
	}
	return time.Since(start), nil
}
