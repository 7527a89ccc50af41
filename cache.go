package regexpr

import (
	"github.com/dgraph-io/ristretto/v2"
	"github.com/golang/glog"
)

const (
	// cacheMaxPatterns bounds the number of compiled patterns kept by
	// CompileCached. Each entry costs 1.
	cacheMaxPatterns = 1 << 10
)

var patternCache = newPatternCache(cacheMaxPatterns)

func newPatternCache(maxPatterns int64) *ristretto.Cache[string, *Regex] {
	cache, err := ristretto.NewCache(&ristretto.Config[string, *Regex]{
		NumCounters:        maxPatterns * 10,
		MaxCost:            maxPatterns,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		// Only reachable with a zero-sized configuration.
		glog.Fatalf("regexpr: pattern cache: %v", err)
	}
	return cache
}

// CompileCached is like Compile but reuses a previously compiled Regex for
// the same pattern when one is still cached. Compile errors are not cached.
func CompileCached(pattern string) (*Regex, error) {
	if re, ok := patternCache.Get(pattern); ok {
		return re, nil
	}
	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	patternCache.Set(pattern, re, 1)
	return re, nil
}

// MatchString reports whether s contains any match of pattern. Compiled
// patterns are cached, so repeated calls with the same pattern only parse it
// once.
//
// Example:
//
//	ok, err := regexpr.MatchString(`ab(c.*de)fg`, "abcdefg")
//	// ok == true, err == nil
func MatchString(pattern, s string) (bool, error) {
	re, err := CompileCached(pattern)
	if err != nil {
		return false, err
	}
	return re.Test(s), nil
}
