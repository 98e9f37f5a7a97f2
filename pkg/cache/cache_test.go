package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestURLCache_GetSet(t *testing.T) {
	c := NewURLCache()

	_, found := c.Get("missing")
	assert.False(t, found)

	c.Set("key", "https://example.com/signed", time.Now().Add(time.Minute))
	value, found := c.Get("key")
	assert.True(t, found)
	assert.Equal(t, "https://example.com/signed", value)
}

func TestURLCache_Expiry(t *testing.T) {
	c := NewURLCache()

	c.Set("key", "value", time.Now().Add(-time.Second))
	_, found := c.Get("key")
	assert.False(t, found)
}

func TestURLCache_ClearDropsOnlyExpired(t *testing.T) {
	c := NewURLCache()

	c.Set("stale", "a", time.Now().Add(-time.Minute))
	c.Set("fresh", "b", time.Now().Add(time.Minute))

	c.Clear()

	assert.Equal(t, 1, c.Len())
	_, found := c.Get("fresh")
	assert.True(t, found)
}

func TestURLCache_Delete(t *testing.T) {
	c := NewURLCache()

	c.Set("key", "value", time.Now().Add(time.Minute))
	c.Delete("key")

	_, found := c.Get("key")
	assert.False(t, found)
}
