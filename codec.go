package sessionstore

import "encoding/json"

// Codec translates records to and from their transport-safe string form.
// Implementations must be side-effect-free and total for well-formed records
// whose temporal fields are whole milliseconds: Decode(Encode(r)) is
// structurally equal to r. Decode failures must surface as
// *MalformedRecordError.
//
// Binary codecs live in the codec subpackage (msgpack, CBOR, a size-limit
// wrapper).
type Codec interface {
	Encode(*Record) (string, error)
	Decode(string) (*Record, error)
}

// JSONCodec is the default codec: one JSON object per record, application
// fields at the top level, "cookie.expires" and "lastModified" as
// epoch-millisecond numbers.
type JSONCodec struct{}

func (JSONCodec) Encode(r *Record) (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (JSONCodec) Decode(s string) (*Record, error) {
	var r Record
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return nil, &MalformedRecordError{Err: err}
	}
	return &r, nil
}
