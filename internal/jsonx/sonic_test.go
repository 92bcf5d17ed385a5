package jsonx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotEqual(t *testing.T) {
	type doc struct {
		ID   string `json:"id"`
		Size int64  `json:"size"`
	}

	a := Snapshot([]doc{{ID: "d1", Size: 512}})
	b := Snapshot([]doc{{ID: "d1", Size: 512}})
	c := Snapshot([]doc{{ID: "d1", Size: 1024}})

	assert.True(t, SnapshotEqual(a, b))
	assert.False(t, SnapshotEqual(a, c))
}

func TestSnapshotNilNeverEqual(t *testing.T) {
	// An unserializable value must not suppress callbacks.
	bad := Snapshot(make(chan int))
	assert.Nil(t, bad)
	assert.False(t, SnapshotEqual(bad, bad))
	assert.False(t, SnapshotEqual(bad, Snapshot("x")))
}

func TestRoundTripThroughString(t *testing.T) {
	s, err := MarshalToString(map[string]int{"tokens": 42})
	assert.NoError(t, err)

	var out map[string]int
	assert.NoError(t, UnmarshalFromString(s, &out))
	assert.Equal(t, 42, out["tokens"])
}
