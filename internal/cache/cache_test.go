package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	c := New()
	defer c.Stop()

	c.Set("k", "v", 0)
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCacheExpiration(t *testing.T) {
	c := New()
	defer c.Stop()

	c.Set("short", 1, 10*time.Millisecond)
	require.True(t, c.Exists("short"))

	time.Sleep(20 * time.Millisecond)
	_, ok := c.Get("short")
	assert.False(t, ok, "expired entries must not be served")
	assert.False(t, c.Exists("short"))
}

func TestCacheDelete(t *testing.T) {
	c := New()
	defer c.Stop()

	c.Set("k", "v", 0)
	c.Delete("k")
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCacheOverwrite(t *testing.T) {
	c := New()
	defer c.Stop()

	c.Set("k", 1, 0)
	c.Set("k", 2, 0)
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, got)
}
