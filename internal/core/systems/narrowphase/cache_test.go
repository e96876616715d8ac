package narrowphase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/narrowphase/internal/core/systems/physics"
)

func TestFingerprintPair(t *testing.T) {
	a := circleBody(t, "a", 0, 0, 1).WorldShape()
	b := boxBody(t, "b", 1.5, 0, 1).WorldShape()
	again := boxBody(t, "other", 1.5, 0, 1).WorldShape()
	moved := boxBody(t, "b", 1.5000001, 0, 1).WorldShape()

	ab, err := FingerprintPair(a, b)
	require.NoError(t, err)
	ab2, err := FingerprintPair(a, again)
	require.NoError(t, err)
	ba, err := FingerprintPair(b, a)
	require.NoError(t, err)
	am, err := FingerprintPair(a, moved)
	require.NoError(t, err)

	assert.Equal(t, ab, ab2, "equal geometry must hash equal")
	assert.NotEqual(t, ab, ba, "pair order changes the normal, so it changes the key")
	assert.NotEqual(t, ab, am)

	_, err = FingerprintPair(a, segmentShape{})
	assert.ErrorIs(t, err, ErrUnsupportedShape)
}

func TestCacheGetPut(t *testing.T) {
	c := NewCache(8)
	info := physics.ContactInfo{HasCollision: true, Normal: physics.Vec(1, 0), Depth: 0.5}

	_, ok := c.Get(1)
	assert.False(t, ok)

	c.Put(1, info)
	got, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, info, got)

	stats := c.Stats()
	assert.Equal(t, CacheStats{Entries: 1, Hits: 1, Misses: 1}, stats)

	c.Reset()
	assert.Zero(t, c.Len())
}

func TestCacheClearsWhenFull(t *testing.T) {
	c := NewCache(2)
	c.Put(1, physics.ContactInfo{})
	c.Put(2, physics.ContactInfo{})
	c.Put(2, physics.ContactInfo{Depth: 1})
	assert.Equal(t, 2, c.Len(), "overwriting an entry must not clear")

	c.Put(3, physics.ContactInfo{})
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, uint64(1), c.Stats().Resets)

	_, ok := c.Get(3)
	assert.True(t, ok)
}

func TestNewCacheDefaultCapacity(t *testing.T) {
	c := NewCache(0)
	assert.Equal(t, defaultCacheCapacity, c.capacity)
}
