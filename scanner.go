package sessionstore

import "context"

// ScanBatches enumerates every key under the namespace prefix, delivering
// each cursor batch as it arrives. The sequence is lazy and non-restartable.
// Every live key is visited at least once; duplicates are possible when the
// key space is mutated mid-scan (an engine-level property the store does not
// paper over). Empty batches are never delivered. Iteration stops at the
// first callback error, which is returned.
func (s *Store) ScanBatches(ctx context.Context, fn func(keys []string) error) error {
	var cursor uint64
	for {
		keys, next, err := s.engine.Scan(ctx, cursor, s.prefix+"*", s.scanCount)
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := fn(keys); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// ScanKeys is ScanBatches flattened to one callback per key.
func (s *Store) ScanKeys(ctx context.Context, fn func(key string) error) error {
	return s.ScanBatches(ctx, func(keys []string) error {
		for _, k := range keys {
			if err := fn(k); err != nil {
				return err
			}
		}
		return nil
	})
}
