package sessionstore

import (
	"encoding/json"
	"fmt"
	"time"
)

// Wire fields owned by the store. Application data must not use these names.
const (
	fieldCookie       = "cookie"
	fieldLastModified = "lastModified"
)

// Cookie carries the session cookie attributes stored alongside the record.
// Expires doubles as the record's absolute deadline: when set, the store
// derives the key TTL from it instead of the configured fallback.
type Cookie struct {
	Path     string
	Domain   string
	SameSite string
	MaxAge   int
	Secure   bool
	HTTPOnly bool
	Expires  *time.Time
}

// equalIgnoringExpiry compares cookie attributes with the deadline blanked
// out. Used by Compare, where expiry is TTL metadata rather than an
// application field.
func (c Cookie) equalIgnoringExpiry(o Cookie) bool {
	c.Expires, o.Expires = nil, nil
	return c == o
}

// Record is a session payload: two store-owned temporal fields plus an open
// map of application fields. LastModified is stamped by the store on every
// successful write and is never trusted from caller input; it is read back
// to detect concurrent overwrites.
type Record struct {
	Cookie       Cookie
	LastModified time.Time
	Data         map[string]any
}

// WireMap flattens the record into its wire shape: application fields at the
// top level next to "cookie" and "lastModified", with timestamps as
// epoch-millisecond numbers. Codecs marshal this map.
func (r *Record) WireMap() (map[string]any, error) {
	m := make(map[string]any, len(r.Data)+2)
	for k, v := range r.Data {
		if k == fieldCookie || k == fieldLastModified {
			return nil, fmt.Errorf("record field %q is reserved", k)
		}
		m[k] = v
	}
	m[fieldCookie] = r.Cookie.wireMap()
	m[fieldLastModified] = r.LastModified.UnixMilli()
	return m, nil
}

func (c Cookie) wireMap() map[string]any {
	m := make(map[string]any, 7)
	if c.Path != "" {
		m["path"] = c.Path
	}
	if c.Domain != "" {
		m["domain"] = c.Domain
	}
	if c.SameSite != "" {
		m["sameSite"] = c.SameSite
	}
	if c.MaxAge != 0 {
		m["maxAge"] = c.MaxAge
	}
	if c.Secure {
		m["secure"] = true
	}
	if c.HTTPOnly {
		m["httpOnly"] = true
	}
	if c.Expires != nil {
		m["expires"] = c.Expires.UnixMilli()
	}
	return m
}

// RecordFromWire rebuilds a record from its wire shape. Unknown top-level
// fields land in Data; temporal fields are restored from epoch milliseconds.
func RecordFromWire(m map[string]any) (*Record, error) {
	r := &Record{Data: make(map[string]any, len(m))}
	for k, v := range m {
		switch k {
		case fieldCookie:
			cm, ok := v.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("wire field %q: expected object, got %T", k, v)
			}
			c, err := cookieFromWire(cm)
			if err != nil {
				return nil, err
			}
			r.Cookie = c
		case fieldLastModified:
			ms, ok := asInt64(v)
			if !ok {
				return nil, fmt.Errorf("wire field %q: expected epoch milliseconds, got %T", k, v)
			}
			r.LastModified = time.UnixMilli(ms)
		default:
			r.Data[k] = v
		}
	}
	return r, nil
}

func cookieFromWire(m map[string]any) (Cookie, error) {
	var c Cookie
	for k, v := range m {
		switch k {
		case "path", "domain", "sameSite":
			s, ok := v.(string)
			if !ok {
				return c, fmt.Errorf("cookie field %q: expected string, got %T", k, v)
			}
			switch k {
			case "path":
				c.Path = s
			case "domain":
				c.Domain = s
			case "sameSite":
				c.SameSite = s
			}
		case "maxAge":
			n, ok := asInt64(v)
			if !ok {
				return c, fmt.Errorf("cookie field %q: expected number, got %T", k, v)
			}
			c.MaxAge = int(n)
		case "secure", "httpOnly":
			b, ok := v.(bool)
			if !ok {
				return c, fmt.Errorf("cookie field %q: expected bool, got %T", k, v)
			}
			if k == "secure" {
				c.Secure = b
			} else {
				c.HTTPOnly = b
			}
		case "expires":
			ms, ok := asInt64(v)
			if !ok {
				return c, fmt.Errorf("cookie field %q: expected epoch milliseconds, got %T", k, v)
			}
			t := time.UnixMilli(ms)
			c.Expires = &t
		default:
			// Unknown cookie attributes from newer writers are tolerated.
		}
	}
	return c, nil
}

// asInt64 normalizes the numeric types the supported codecs hand back for a
// whole-millisecond timestamp (encoding/json: float64; msgpack/cbor: signed
// and unsigned ints).
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case uint32:
		return int64(n), true
	case float64:
		return int64(n), n == float64(int64(n))
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

func (r *Record) MarshalJSON() ([]byte, error) {
	m, err := r.WireMap()
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

func (r *Record) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	dec, err := RecordFromWire(m)
	if err != nil {
		return err
	}
	*r = *dec
	return nil
}
