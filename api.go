package sessionstore

import (
	"time"

	"github.com/rahil-p/connect-redis-session/engine"
)

// Options tune the session store. Only Engine is required; everything else
// has a sensible default.
type Options struct {
	// Required
	Engine engine.Engine

	Prefix           string        // key namespace; "" => "sessions:"
	ScanCount        int64         // keys requested per scan cursor; 0 => 100
	TTL              time.Duration // fallback lifetime for records without a cookie deadline; 0 => 24h
	ConcurrencyGrace time.Duration // tombstone lifetime after a destroy; 0 => 5m
	ScanConcurrency  int           // concurrently processed scan batches in bulk operations; 0 => 4
	Codec            Codec         // nil => JSONCodec
	Logger           Logger        // nil => NopLogger
	Clock            Clock         // nil => system clock

	// DisableFallbackTTL treats records without a cookie deadline as already
	// expired: Set and Touch on them destroy the key instead of writing.
	DisableFallbackTTL bool
}

// New validates opts and returns a ready Store.
func New(opts Options) (*Store, error) {
	if opts.Engine == nil {
		return nil, ErrNilEngine
	}

	s := &Store{
		engine:     opts.Engine,
		noFallback: opts.DisableFallbackTTL,
	}

	// defaults
	s.prefix = coalesce(opts.Prefix, "sessions:")
	s.scanCount = coalesce(opts.ScanCount, 100)
	s.ttl = coalesce(opts.TTL, 24*time.Hour)
	s.grace = coalesce(opts.ConcurrencyGrace, 5*time.Minute)
	s.scanWorkers = coalesce(opts.ScanConcurrency, 4)
	s.codec = coalesce[Codec](opts.Codec, JSONCodec{})
	s.log = coalesce[Logger](opts.Logger, NopLogger{})
	s.clock = coalesce[Clock](opts.Clock, systemClock{})

	return s, nil
}
