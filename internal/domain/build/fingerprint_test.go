package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeKey(t *testing.T) {
	a := Fingerprint{ContentHash: "c", OptionsHash: "o", SchemaVersion: "2", Mode: "validate"}
	a.ComputeKey()
	assert.Len(t, a.Key, 64)

	b := a
	b.ComputeKey()
	assert.Equal(t, a.Key, b.Key)

	c := a
	c.SchemaVersion = "3"
	c.ComputeKey()
	assert.NotEqual(t, a.Key, c.Key)

	// part boundaries are kept
	d := Fingerprint{ContentHash: "co", OptionsHash: "", SchemaVersion: "2", Mode: "validate"}
	d.ComputeKey()
	assert.NotEqual(t, a.Key, d.Key)
}

func TestHashString(t *testing.T) {
	assert.Equal(t, HashString("x"), HashString("x"))
	assert.NotEqual(t, HashString("x"), HashString("y"))
}
