package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestNeighbouringSeedsDiffer(t *testing.T) {
	assert.NotEqual(t, New(1).Uint64(), New(2).Uint64())
}

func TestSeedPrefersConfigured(t *testing.T) {
	assert.Equal(t, int64(7), Seed(7))
	assert.NotZero(t, Seed(0))
}
