package sessionstore

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Bulk operations walk the scanner and are atomic per processed batch only.
// Batches fan out to at most scanWorkers concurrent processors; the first
// failing batch cancels the scan and any in-flight batches, whose results
// are abandoned. There is no partial-success reporting.

// Clear removes every key under the prefix and returns how many keys were
// processed. With tombstones=true each batch is transactionally overwritten
// with the sentinel, so cleared ids stay write-locked for the grace period;
// otherwise batches are deleted outright. Keys created mid-scan may be
// missed.
func (s *Store) Clear(ctx context.Context, tombstones bool) (int64, error) {
	var n atomic.Int64
	err := s.eachBatch(ctx, func(ctx context.Context, keys []string) error {
		if tombstones {
			if err := s.engine.SetMulti(ctx, keys, Tombstone, s.grace); err != nil {
				return err
			}
		} else {
			if _, err := s.engine.Del(ctx, keys...); err != nil {
				return err
			}
		}
		n.Add(int64(len(keys)))
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.log.Debug("cleared namespace", Fields{"prefix": s.prefix, "keys": n.Load(), "tombstones": tombstones})
	return n.Load(), nil
}

// Len reports how many keys live under the prefix. With estimate=true it
// counts scanned keys without fetching values, so tombstones count as
// present. Precise mode fetches each batch and excludes tombstones and keys
// that expired mid-scan.
func (s *Store) Len(ctx context.Context, estimate bool) (int64, error) {
	var n atomic.Int64
	if estimate {
		err := s.ScanBatches(ctx, func(keys []string) error {
			n.Add(int64(len(keys)))
			return nil
		})
		if err != nil {
			return 0, err
		}
		return n.Load(), nil
	}
	err := s.eachBatch(ctx, func(ctx context.Context, keys []string) error {
		vals, err := s.engine.MGet(ctx, keys...)
		if err != nil {
			return err
		}
		for _, v := range vals {
			if v != nil && *v != Tombstone {
				n.Add(1)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n.Load(), nil
}

// All decodes every live record under the prefix into an id-keyed map, ids
// recovered by stripping the namespace prefix. Tombstones are excluded. A
// value that fails to decode fails the whole operation.
func (s *Store) All(ctx context.Context) (map[string]*Record, error) {
	var mu sync.Mutex
	out := make(map[string]*Record)
	err := s.eachBatch(ctx, func(ctx context.Context, keys []string) error {
		vals, err := s.engine.MGet(ctx, keys...)
		if err != nil {
			return err
		}
		decoded := make(map[string]*Record, len(keys))
		for i, v := range vals {
			if v == nil || *v == Tombstone {
				continue
			}
			rec, err := s.codec.Decode(*v)
			if err != nil {
				return s.annotate(err, keys[i])
			}
			decoded[strings.TrimPrefix(keys[i], s.prefix)] = rec
		}
		mu.Lock()
		for id, rec := range decoded {
			out[id] = rec
		}
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) eachBatch(ctx context.Context, fn func(ctx context.Context, keys []string) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.scanWorkers)
	scanErr := s.ScanBatches(gctx, func(keys []string) error {
		g.Go(func() error { return fn(gctx, keys) })
		// Stop feeding the group once a batch has failed.
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return scanErr
}
