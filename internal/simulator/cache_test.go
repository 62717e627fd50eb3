package simulator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionCacheServesWithinTTL(t *testing.T) {
	clock := time.Now()
	c := newDefinitionCache(5*time.Minute, 16)
	c.now = func() time.Time { return clock }

	loads := 0
	loader := func() (interface{}, error) {
		loads++
		return "value", nil
	}

	for i := 0; i < 5; i++ {
		v, err := c.Get("discounts", loader)
		require.NoError(t, err)
		assert.Equal(t, "value", v)
	}
	assert.Equal(t, 1, loads)
}

func TestDefinitionCacheReloadsAfterTTL(t *testing.T) {
	clock := time.Now()
	c := newDefinitionCache(5*time.Minute, 16)
	c.now = func() time.Time { return clock }

	loads := 0
	loader := func() (interface{}, error) {
		loads++
		return loads, nil
	}

	v, _ := c.Get("combos", loader)
	assert.Equal(t, 1, v)

	clock = clock.Add(5*time.Minute + time.Second)
	v, _ = c.Get("combos", loader)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, loads)
}

func TestDefinitionCacheLoaderErrorNotCached(t *testing.T) {
	c := newDefinitionCache(time.Minute, 16)

	calls := 0
	loader := func() (interface{}, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("upstream down")
		}
		return "ok", nil
	}

	_, err := c.Get("coupons", loader)
	assert.Error(t, err)
	assert.Equal(t, 0, c.Len())

	v, err := c.Get("coupons", loader)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestDefinitionCacheInvalidate(t *testing.T) {
	c := newDefinitionCache(time.Hour, 16)

	loads := 0
	loader := func() (interface{}, error) {
		loads++
		return loads, nil
	}

	c.Get("discounts", loader)
	c.Invalidate("discounts")
	v, _ := c.Get("discounts", loader)
	assert.Equal(t, 2, v)
}

func TestDefinitionCacheInvalidateIfExpired(t *testing.T) {
	clock := time.Now()
	c := newDefinitionCache(time.Minute, 16)
	c.now = func() time.Time { return clock }

	c.Get("a", func() (interface{}, error) { return 1, nil })
	c.Get("b", func() (interface{}, error) { return 2, nil })
	require.Equal(t, 2, c.Len())

	clock = clock.Add(2 * time.Minute)
	c.InvalidateIfExpired()
	assert.Equal(t, 0, c.Len())
}

func TestDefinitionCacheEvictsLeastRecentlyUsed(t *testing.T) {
	clock := time.Now()
	c := newDefinitionCache(time.Hour, 2)
	c.now = func() time.Time { return clock }

	c.Get("a", func() (interface{}, error) { return "a", nil })
	clock = clock.Add(time.Second)
	c.Get("b", func() (interface{}, error) { return "b", nil })

	// Touch "a" so "b" is the eviction candidate.
	clock = clock.Add(time.Second)
	c.Get("a", func() (interface{}, error) { return "reloaded", nil })

	clock = clock.Add(time.Second)
	c.Get("c", func() (interface{}, error) { return "c", nil })
	assert.Equal(t, 2, c.Len())

	loads := 0
	v, _ := c.Get("a", func() (interface{}, error) { loads++; return "miss", nil })
	assert.Equal(t, "a", v)
	assert.Equal(t, 0, loads)
}
