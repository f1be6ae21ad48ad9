package engine

import (
	"fmt"
	"testing"

	"github.com/asaidimu/go-sift/core/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCache(t *testing.T) {
	t.Run("get after put", func(t *testing.T) {
		c, err := newResultCache(4)
		require.NoError(t, err)

		want := &ProcessingResult{TotalCount: 3}
		c.Put("k", want)

		got, ok := c.Get("k")
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("capacity defaults when unset", func(t *testing.T) {
		c, err := newResultCache(0)
		require.NoError(t, err)
		for i := 0; i < DefaultCacheCapacity+10; i++ {
			c.Put(fmt.Sprintf("k%d", i), &ProcessingResult{})
		}
		assert.Equal(t, DefaultCacheCapacity, c.Len())
	})

	t.Run("least recently used entry is evicted", func(t *testing.T) {
		c, err := newResultCache(2)
		require.NoError(t, err)

		c.Put("a", &ProcessingResult{TotalCount: 1})
		c.Put("b", &ProcessingResult{TotalCount: 2})

		// Touch "a" so "b" becomes the eviction candidate.
		_, ok := c.Get("a")
		require.True(t, ok)

		c.Put("c", &ProcessingResult{TotalCount: 3})

		_, ok = c.Get("a")
		assert.True(t, ok)
		_, ok = c.Get("b")
		assert.False(t, ok)
		_, ok = c.Get("c")
		assert.True(t, ok)
	})

	t.Run("clear empties the store", func(t *testing.T) {
		c, err := newResultCache(4)
		require.NoError(t, err)
		c.Put("a", &ProcessingResult{})
		c.Clear()
		assert.Equal(t, 0, c.Len())
	})
}

func TestCanonicalOptions(t *testing.T) {
	t.Run("equal options produce equal canonical forms", func(t *testing.T) {
		build := func() ProcessingOptions {
			return NewOptionsBuilder().
				Where("status").Equals("Actief").
				OrderByAsc("age").
				Page(1, 10).
				Build()
		}
		a, err := canonicalOptions(build())
		require.NoError(t, err)
		b, err := canonicalOptions(build())
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("different options differ", func(t *testing.T) {
		a, err := canonicalOptions(NewOptionsBuilder().Where("status").Equals("Actief").Build())
		require.NoError(t, err)
		b, err := canonicalOptions(NewOptionsBuilder().Where("status").Equals("Inactief").Build())
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}

func TestCacheKey(t *testing.T) {
	records := []record.Record{{"id": 1}, {"id": 2}}
	other := []record.Record{{"id": 1}, {"id": 3}}

	t.Run("same inputs same key", func(t *testing.T) {
		assert.Equal(t, cacheKey(records, "opts"), cacheKey(records, "opts"))
	})

	t.Run("different record sets differ", func(t *testing.T) {
		assert.NotEqual(t, cacheKey(records, "opts"), cacheKey(other, "opts"))
	})

	t.Run("different options differ", func(t *testing.T) {
		assert.NotEqual(t, cacheKey(records, "a"), cacheKey(records, "b"))
	})
}
