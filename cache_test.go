package regexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/regexpr/syntax"
)

func TestMatchStringFunc(t *testing.T) {
	ok, err := MatchString(`ab(c.*de)fg`, "abcdefg")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = MatchString(`ab(c.*de)fg`, "abcfg")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = MatchString(`(abc`, "abc")
	assert.False(t, ok)
	assert.ErrorIs(t, err, syntax.ErrMissingParen)
}

func TestCompileCached(t *testing.T) {
	first, err := CompileCached("cache(d|s)")
	require.NoError(t, err)

	// Sets are applied asynchronously.
	patternCache.Wait()

	second, err := CompileCached("cache(d|s)")
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = CompileCached("cache(")
	require.Error(t, err)
	patternCache.Wait()
	_, found := patternCache.Get("cache(")
	assert.False(t, found, "compile errors must not be cached")
}

func TestPatternCacheBounded(t *testing.T) {
	cache := newPatternCache(4)
	defer cache.Close()

	for _, p := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		cache.Set(p, MustCompile(p), 1)
	}
	cache.Wait()

	held := 0
	for _, p := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		if _, ok := cache.Get(p); ok {
			held++
		}
	}
	assert.LessOrEqual(t, held, 4)
}
