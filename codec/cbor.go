package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"

	store "github.com/rahil-p/connect-redis-session"
)

// CBOR serializes records with fxamacker/cbor. The zero value is NOT ready
// to use; construct with NewCBOR or MustCBOR.
//
// Deterministic encoding (RFC 8949 Core Deterministic) gives byte-for-byte
// stable output for equal records; otherwise PreferredUnsortedEncOptions are
// used. Temporal fields are already plain epoch-millisecond integers on the
// wire map, so no CBOR time tagging is involved.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ store.Codec = CBOR{}

func NewCBOR(deterministic bool) (CBOR, error) {
	var eo cbor.EncOptions
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}
	em, err := eo.EncMode()
	if err != nil {
		return CBOR{}, err
	}
	// Nested maps must come back as map[string]any for the wire translation.
	dm, err := (cbor.DecOptions{DefaultMapType: reflect.TypeOf(map[string]any(nil))}).DecMode()
	if err != nil {
		return CBOR{}, err
	}
	return CBOR{enc: em, dec: dm}, nil
}

// MustCBOR is like NewCBOR but panics on error. Handy for package-level
// variables in tests and examples.
func MustCBOR(deterministic bool) CBOR {
	c, err := NewCBOR(deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR) Encode(r *store.Record) (string, error) {
	m, err := r.WireMap()
	if err != nil {
		return "", err
	}
	b, err := c.enc.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c CBOR) Decode(s string) (*store.Record, error) {
	var m map[string]any
	if err := c.dec.Unmarshal([]byte(s), &m); err != nil {
		return nil, &store.MalformedRecordError{Err: err}
	}
	r, err := store.RecordFromWire(m)
	if err != nil {
		return nil, &store.MalformedRecordError{Err: err}
	}
	return r, nil
}
