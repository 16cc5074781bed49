package sessionstore

import (
	"context"
	"time"
)

// Server-side scripts collapse "check tombstone, then act" into one
// indivisible step at the engine. Without them, a read-modify-write cycle in
// application code would race against a concurrent destroy and could
// resurrect a deleted session.

// setScript: KEYS[1]=key, ARGV[1]=payload, ARGV[2]=tombstone sentinel,
// ARGV[3]=ttl millis. Returns 0 when the key holds the sentinel (the destroy
// lock wins over the write), 1 after writing.
const setScript = `local v = redis.call('GET', KEYS[1])
if v == ARGV[2] then
  return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1`

// touchScript: KEYS[1]=key, ARGV[1]=tombstone sentinel, ARGV[2]=ttl millis.
// Returns 0 when the key is absent or tombstoned, 1 after renewing the
// expiry without altering the value.
const touchScript = `local v = redis.call('GET', KEYS[1])
if v == false or v == ARGV[1] then
  return 0
end
redis.call('PEXPIRE', KEYS[1], ARGV[2])
return 1`

func (s *Store) runSet(ctx context.Context, key, payload string, ttl time.Duration) (bool, error) {
	res, err := s.engine.Eval(ctx, setScript, []string{key}, payload, Tombstone, ttl.Milliseconds())
	if err != nil {
		return false, err
	}
	return scriptOK(res), nil
}

func (s *Store) runTouch(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	res, err := s.engine.Eval(ctx, touchScript, []string{key}, Tombstone, ttl.Milliseconds())
	if err != nil {
		return false, err
	}
	return scriptOK(res), nil
}

func scriptOK(res any) bool {
	switch v := res.(type) {
	case int64:
		return v == 1
	case int:
		return v == 1
	case bool:
		return v
	}
	return false
}
