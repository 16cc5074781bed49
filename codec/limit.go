package codec

import (
	"fmt"

	store "github.com/rahil-p/connect-redis-session"
)

// Limit wraps another codec to enforce a maximum allowed payload size at
// Decode time. Encode is forwarded to Inner unchanged. If MaxDecode <= 0,
// size limiting is disabled.
//
// Typical use: protect against oversized values coming back from a shared
// key space.
type Limit struct {
	// Inner is the underlying codec being wrapped. It must be set.
	Inner store.Codec
	// MaxDecode is the maximum permitted length (in bytes) of the incoming
	// payload for Decode. Longer payloads fail without invoking Inner.
	MaxDecode int
}

var _ store.Codec = Limit{}

func (c Limit) Encode(r *store.Record) (string, error) { return c.Inner.Encode(r) }

func (c Limit) Decode(s string) (*store.Record, error) {
	if c.MaxDecode > 0 && len(s) > c.MaxDecode {
		return nil, &store.MalformedRecordError{
			Err: fmt.Errorf("payload too large: %d > %d", len(s), c.MaxDecode),
		}
	}
	return c.Inner.Decode(s)
}
