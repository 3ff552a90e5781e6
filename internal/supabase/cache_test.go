package supabase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePutGet(t *testing.T) {
	c := NewCache(30 * time.Second)

	_, ok := c.Get("landlords")
	assert.False(t, ok)

	c.Put("landlords", []string{"a", "b"})

	got, ok := c.Get("landlords")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(30 * time.Second)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Put("reviews", 42)

	c.now = func() time.Time { return base.Add(29 * time.Second) }
	_, ok := c.Get("reviews")
	assert.True(t, ok)

	c.now = func() time.Time { return base.Add(31 * time.Second) }
	_, ok = c.Get("reviews")
	assert.False(t, ok)
}

func TestCacheInvalidatePrefix(t *testing.T) {
	c := NewCache(time.Minute)

	c.Put("reviews", 1)
	c.Put("reviews:landlord:7", 2)
	c.Put("landlords", 3)

	c.Invalidate("reviews")

	_, ok := c.Get("reviews")
	assert.False(t, ok)
	_, ok = c.Get("reviews:landlord:7")
	assert.False(t, ok)
	_, ok = c.Get("landlords")
	assert.True(t, ok)
}

func TestCacheInvalidateAll(t *testing.T) {
	c := NewCache(time.Minute)

	c.Put("reviews", 1)
	c.Put("landlords", 2)

	c.Invalidate("")

	_, ok := c.Get("reviews")
	assert.False(t, ok)
	_, ok = c.Get("landlords")
	assert.False(t, ok)
}
