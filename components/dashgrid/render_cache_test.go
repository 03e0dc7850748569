package dashgrid

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCacheStoresEntry(t *testing.T) {
	cache := NewRenderCache(10 * time.Millisecond)
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}

	val1, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	val2, err := cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, "html", val1)
	assert.Equal(t, val1, val2)
	assert.Equal(t, 1, calls)
}

func TestRenderCacheExpires(t *testing.T) {
	cache := NewRenderCache(2 * time.Millisecond)
	calls := 0
	render := func() (string, error) {
		calls++
		return "fresh", nil
	}

	_, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestRenderCachePropagatesRenderError(t *testing.T) {
	cache := NewRenderCache(time.Minute)
	_, err := cache.GetOrRender("key", func() (string, error) {
		return "", errors.New("render failed")
	})
	require.Error(t, err)

	// Errors are not cached.
	val, err := cache.GetOrRender("key", func() (string, error) {
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", val)
}
