// Package engine defines the transport boundary between the session store
// and the key-value engine.
//
// Implementations MUST be value-transparent: Get must return exactly the
// string previously passed to Set for a key (no prepended metadata, no
// re-encoding). The store relies on literal equality against its tombstone
// sentinel, so any transform of stored values breaks deletion semantics.
//
// Implementations must be safe for concurrent use; the store shares one
// engine across all in-flight operations and performs no pooling of its own.
package engine

import (
	"context"
	"time"
)

// Engine is a minimal string store with TTLs, cursor iteration, and
// server-side atomic script execution.
//
// Errors from the engine are infrastructure failures and are surfaced to
// store callers unmodified; state conditions (absent key, refused script)
// are reported through return values, never through errors.
type Engine interface {
	// Get returns (value, true, nil) on hit and ("", false, nil) on miss.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key with the given expiry. ttl <= 0 means no
	// expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// SetMulti writes the same value under every key in one transactional
	// round trip: either all keys are written or none are.
	SetMulti(ctx context.Context, keys []string, value string, ttl time.Duration) error

	// Del removes keys and reports how many existed.
	Del(ctx context.Context, keys ...string) (int64, error)

	// MGet returns one element per key; nil marks an absent key.
	MGet(ctx context.Context, keys ...string) ([]*string, error)

	// Scan returns up to count keys matching the glob pattern starting at
	// cursor, plus the next cursor. Iteration starts at cursor 0 and is done
	// when the returned cursor is 0. Batches may be empty mid-iteration.
	Scan(ctx context.Context, cursor uint64, match string, count int64) ([]string, uint64, error)

	// Eval executes a server-side script as a single indivisible unit: no
	// other write to the addressed keys can interleave with it.
	Eval(ctx context.Context, script string, keys []string, args ...any) (any, error)

	// Close releases resources.
	Close(ctx context.Context) error
}
