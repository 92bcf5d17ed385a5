// Package jsonx provides JSON serialization using Sonic, a drop-in
// replacement for encoding/json. The data-access layer serializes every
// polled response to a snapshot for change detection, so marshal speed
// is on the hot path of every subscription tick.
package jsonx

import (
	"bytes"
	"io"

	"github.com/bytedance/sonic"
)

// Marshal returns the JSON encoding of v.
func Marshal(v interface{}) ([]byte, error) {
	return sonic.Marshal(v)
}

// Unmarshal parses the JSON-encoded data and stores the result in the
// value pointed to by v.
func Unmarshal(data []byte, v interface{}) error {
	return sonic.Unmarshal(data, v)
}

// MarshalToString is like Marshal but returns the JSON as a string,
// avoiding an allocation on the []byte-to-string conversion.
func MarshalToString(v interface{}) (string, error) {
	return sonic.MarshalString(v)
}

// UnmarshalFromString parses the JSON string and stores the result in v.
func UnmarshalFromString(data string, v interface{}) error {
	return sonic.UnmarshalString(data, v)
}

// EncodeTo writes the JSON encoding of v to w. The transport encodes
// request bodies into pooled buffers through this.
func EncodeTo(w io.Writer, v interface{}) error {
	return sonic.ConfigDefault.NewEncoder(w).Encode(v)
}

// Snapshot serializes v for change detection. A value that cannot be
// serialized snapshots to nil, which never compares equal to a real
// snapshot, so the change is propagated rather than suppressed.
func Snapshot(v interface{}) []byte {
	data, err := sonic.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

// SnapshotEqual reports whether two snapshots are byte-identical. This is
// a full serialized comparison, O(size) per tick; it does not detect
// semantically equal but differently ordered data.
func SnapshotEqual(a, b []byte) bool {
	if a == nil || b == nil {
		return false
	}
	return bytes.Equal(a, b)
}
