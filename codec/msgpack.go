package codec

import (
	"github.com/vmihailenco/msgpack/v5"

	store "github.com/rahil-p/connect-redis-session"
)

// Msgpack serializes records with vmihailenco/msgpack/v5. The zero value is
// ready to use.
//
// Msgpack is compact and fast; the stored string carries binary bytes, which
// the engine must keep value-transparent (Redis does).
type Msgpack struct{}

var _ store.Codec = Msgpack{}

func (Msgpack) Encode(r *store.Record) (string, error) {
	m, err := r.WireMap()
	if err != nil {
		return "", err
	}
	b, err := msgpack.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (Msgpack) Decode(s string) (*store.Record, error) {
	var m map[string]any
	if err := msgpack.Unmarshal([]byte(s), &m); err != nil {
		return nil, &store.MalformedRecordError{Err: err}
	}
	r, err := store.RecordFromWire(m)
	if err != nil {
		return nil, &store.MalformedRecordError{Err: err}
	}
	return r, nil
}
