// Package sessionstore implements a concurrency-safe, TTL-aware session
// store over a Redis-compatible key-value engine. It survives concurrent
// writers racing on the same session id without any external locking: the
// write path runs server-side atomic scripts, and explicit deletion leaves a
// tombstone behind so a stale concurrent write cannot resurrect the record.
//
// Components:
//   - Engine: the transport boundary (get, set-with-expiry, del, mget,
//     cursor scan, script eval, transactional multi-set).
//   - Codec: (de)serializes records; temporal fields travel as
//     epoch-millisecond numbers on the wire.
//   - Store: the adapter; owns the tombstone and TTL policy.
//
// Keys:
//
//	<prefix><id>  - one record per session id (default prefix "sessions:")
//
// A record's lifetime comes from its cookie deadline when set, otherwise
// from the configured fallback TTL. A resolved lifetime of zero or less
// destroys the key instead of writing it.
//
// Bulk operations (All, Len, Clear) ride a cursor scan over the namespace
// and are atomic per scan batch only; they provide no snapshot isolation
// across the whole key space.
package sessionstore
