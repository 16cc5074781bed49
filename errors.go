package sessionstore

import (
	"errors"
	"fmt"
)

var (
	// ErrNilEngine is returned by New when Options.Engine is missing.
	ErrNilEngine = errors.New("sessionstore: engine is required")

	// ErrReservedValue is returned by Set when the encoded record equals the
	// tombstone sentinel. Storing it would make the record read back as
	// deleted, so the write is rejected instead.
	ErrReservedValue = errors.New("sessionstore: record encodes to the reserved tombstone sentinel")
)

// MalformedRecordError reports a stored value that could not be decoded into
// a record. It is fatal to the operation that triggered it; the store never
// silently treats a corrupt value as a miss.
type MalformedRecordError struct {
	Key string // storage key, when known
	Err error
}

func (e *MalformedRecordError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("sessionstore: malformed record: %v", e.Err)
	}
	return fmt.Sprintf("sessionstore: malformed record at %q: %v", e.Key, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }
