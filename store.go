package sessionstore

import (
	"context"
	"errors"
	"time"

	"github.com/rahil-p/connect-redis-session/engine"
	"github.com/rahil-p/connect-redis-session/internal/structeq"
)

// Tombstone is the reserved sentinel stored in place of a destroyed record.
// It blocks resurrecting writes until the concurrency grace period elapses,
// then self-expires and the key reverts to absent. Record payloads must
// never encode to this literal; Set enforces that with ErrReservedValue.
const Tombstone = "TOMBSTONE"

// Store is the session adapter. Every key under its prefix holds exactly one
// of {absent, tombstone, encoded record}; transitions between those states
// go through the engine's atomic scripts, so they appear atomic to all
// readers. A Store holds no locks across engine round trips and is safe for
// concurrent use.
type Store struct {
	engine      engine.Engine
	prefix      string
	scanCount   int64
	ttl         time.Duration
	noFallback  bool
	grace       time.Duration
	scanWorkers int
	codec       Codec
	log         Logger
	clock       Clock
}

// Key returns the storage key for a session id.
func (s *Store) Key(id string) string { return s.prefix + id }

// Get returns the decoded record, or nil when the key is absent or
// tombstoned. Decode failures are fatal and propagate.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	raw, ok, err := s.engine.Get(ctx, s.Key(id))
	if err != nil || !ok {
		return nil, err
	}
	if raw == Tombstone {
		return nil, nil
	}
	rec, err := s.codec.Decode(raw)
	if err != nil {
		return nil, s.annotate(err, s.Key(id))
	}
	return rec, nil
}

// Set stamps LastModified and writes the record with its resolved TTL.
// It returns nil (and no error) in two refusal cases callers cannot tell
// apart: the record's resolved TTL was non-positive (the key is destroyed
// instead of written), or the key is tombstoned and the destroy lock wins.
// On success the returned record carries the stamped LastModified.
func (s *Store) Set(ctx context.Context, id string, rec *Record) (*Record, error) {
	ttl := s.ttlFor(rec)
	if ttl <= 0 {
		s.log.Debug("set resolved non-positive ttl; destroying", Fields{"id": id, "ttl": ttl})
		if _, err := s.Destroy(ctx, id, true); err != nil {
			return nil, err
		}
		return nil, nil
	}

	rec.LastModified = s.clock.Now()
	payload, err := s.codec.Encode(rec)
	if err != nil {
		return nil, err
	}
	if payload == Tombstone {
		return nil, ErrReservedValue
	}

	ok, err := s.runSet(ctx, s.Key(id), payload, ttl)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.log.Debug("set refused by tombstone", Fields{"id": id})
		return nil, nil
	}
	return rec, nil
}

// Touch renews the key's expiry from the record's deadline (or the
// fallback) without rewriting its value.
func (s *Store) Touch(ctx context.Context, id string, rec *Record) (time.Time, bool, error) {
	return s.touch(ctx, id, s.ttlFor(rec))
}

// TouchTTL renews the key's expiry to now+ttl without rewriting its value.
func (s *Store) TouchTTL(ctx context.Context, id string, ttl time.Duration) (time.Time, bool, error) {
	return s.touch(ctx, id, ttl)
}

// touch reports the new expiry on success; false means the key was absent,
// tombstoned, or destroyed here because ttl was non-positive.
func (s *Store) touch(ctx context.Context, id string, ttl time.Duration) (time.Time, bool, error) {
	if ttl <= 0 {
		s.log.Debug("touch resolved non-positive ttl; destroying", Fields{"id": id, "ttl": ttl})
		if _, err := s.Destroy(ctx, id, true); err != nil {
			return time.Time{}, false, err
		}
		return time.Time{}, false, nil
	}
	ok, err := s.runTouch(ctx, s.Key(id), ttl)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	return s.clock.Now().Add(ttl), true, nil
}

// Destroy removes a record. With tombstone=true the key is overwritten with
// the sentinel for the concurrency grace period, refusing stale concurrent
// writes; the result is always true. With tombstone=false the key is
// deleted outright and the result reports whether a key existed.
func (s *Store) Destroy(ctx context.Context, id string, tombstone bool) (bool, error) {
	if tombstone {
		if err := s.engine.Set(ctx, s.Key(id), Tombstone, s.grace); err != nil {
			return false, err
		}
		return true, nil
	}
	n, err := s.engine.Del(ctx, s.Key(id))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Comparison classifies a candidate record against current stored state.
// The store itself is last-writer-wins; callers wanting optimistic
// merge-or-reject logic build it on top of this.
type Comparison struct {
	// Existing is the currently stored record; nil when absent or tombstoned.
	Existing *Record
	// Concurrent reports that the stored LastModified differs from the
	// candidate's, i.e. another writer got in since the candidate was read.
	Concurrent bool
	// Consistent reports that the stored application fields (Data, plus
	// cookie attributes minus the expiry) deep-equal the candidate's.
	Consistent bool
}

// Compare fetches the stored record and classifies the candidate against
// it. A missing record reports Concurrent: whatever snapshot the candidate
// came from no longer exists.
func (s *Store) Compare(ctx context.Context, id string, candidate *Record) (*Comparison, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return &Comparison{Concurrent: true}, nil
	}
	return &Comparison{
		Existing:   existing,
		Concurrent: !existing.LastModified.Equal(candidate.LastModified),
		Consistent: structeq.Equal(existing.Data, candidate.Data) &&
			existing.Cookie.equalIgnoringExpiry(candidate.Cookie),
	}, nil
}

// Close releases the engine.
func (s *Store) Close(ctx context.Context) error {
	return s.engine.Close(ctx)
}

// ttlFor resolves a record's remaining lifetime: time until the cookie
// deadline when one is set, otherwise the configured fallback. Non-positive
// means the record is already expired and must be destroyed, not written.
func (s *Store) ttlFor(rec *Record) time.Duration {
	if rec != nil && rec.Cookie.Expires != nil {
		return rec.Cookie.Expires.Sub(s.clock.Now())
	}
	if s.noFallback {
		return 0
	}
	return s.ttl
}

// annotate fills in the storage key on decode errors bubbling up from the
// codec, which does not know it.
func (s *Store) annotate(err error, key string) error {
	var mre *MalformedRecordError
	if errors.As(err, &mre) && mre.Key == "" {
		mre.Key = key
	}
	return err
}
