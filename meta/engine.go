package meta

import (
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/coregx/regexpr/backtrack"
	"github.com/coregx/regexpr/internal/conv"
	"github.com/coregx/regexpr/prefilter"
	"github.com/coregx/regexpr/syntax"
)

// Engine is a compiled pattern.
//
// The Engine:
//  1. Holds the parsed tree and the matcher built from it
//  2. Holds an optional prefilter built from the pattern's prefix literals
//  3. Runs leftmost-first searches: the matcher is tried at each candidate
//     start offset in order and the first success wins
//
// Thread safety: the tree, matcher and prefilter are immutable after
// compilation. Capture buffers come from a sync.Pool, so any number of
// goroutines may search with the same Engine concurrently.
//
// Example:
//
//	engine, err := meta.Compile("(foo|bar)x+")
//	if err != nil {
//	    return err
//	}
//	match := engine.Find("test fooxx end")
//	if match != nil {
//	    println(match.String()) // "fooxx"
//	}
type Engine struct {
	// IMPORTANT: stats MUST be first field for proper 8-byte alignment on 32-bit platforms.
	stats Stats

	re        *syntax.Regexp
	matcher   *backtrack.Matcher
	prefilter prefilter.Prefilter
	statePool *searchStatePool
	config    Config
}

// Stats counts search work, for debugging and tuning.
type Stats struct {
	// Searches counts calls into the search loop.
	Searches uint64

	// PrefilterCandidates counts start offsets reported by the prefilter.
	PrefilterCandidates uint64

	// MatcherAttempts counts start offsets the matcher was run at.
	MatcherAttempts uint64
}

// Stats returns a snapshot of the execution statistics.
func (e *Engine) Stats() Stats {
	return Stats{
		Searches:            atomic.LoadUint64(&e.stats.Searches),
		PrefilterCandidates: atomic.LoadUint64(&e.stats.PrefilterCandidates),
		MatcherAttempts:     atomic.LoadUint64(&e.stats.MatcherAttempts),
	}
}

// ResetStats resets execution statistics to zero.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.Searches, 0)
	atomic.StoreUint64(&e.stats.PrefilterCandidates, 0)
	atomic.StoreUint64(&e.stats.MatcherAttempts, 0)
}

// Pattern returns the source text the engine was compiled from.
func (e *Engine) Pattern() string {
	return e.re.Pattern
}

// Syntax returns the parsed pattern. It must not be modified.
func (e *Engine) Syntax() *syntax.Regexp {
	return e.re
}

// NumCaptures returns the number of groups in the pattern, not counting
// group 0, the whole match.
func (e *Engine) NumCaptures() int {
	return e.re.NumCaps
}

// Prefilter returns the engine's prefilter, or nil if it has none.
func (e *Engine) Prefilter() prefilter.Prefilter {
	return e.prefilter
}

// Config returns the configuration the engine was compiled with.
func (e *Engine) Config() Config {
	return e.config
}

// Dump describes the compiled pattern: its source, prefilter and tree.
func (e *Engine) Dump() string {
	var b strings.Builder
	b.WriteString("pattern: " + e.re.Pattern + "\n")
	b.WriteString("prefilter: ")
	if e.prefilter != nil {
		b.WriteString(e.prefilter.String())
	} else {
		b.WriteString("none")
	}
	b.WriteByte('\n')
	b.WriteString(e.re.Root.Dump())
	return b.String()
}

// IsMatch reports whether the pattern matches anywhere in text.
// It stops at the first start offset where a match exists.
func (e *Engine) IsMatch(text string) bool {
	if e.prefilter != nil && e.prefilter.IsComplete() {
		atomic.AddUint64(&e.stats.Searches, 1)
		return e.prefilter.Find(conv.StringBytes(text), 0) >= 0
	}
	_, _, ok := e.searchAt(text, 0, nil)
	return ok
}

// Find returns the leftmost match in text, or nil.
func (e *Engine) Find(text string) *Match {
	return e.FindAt(text, 0)
}

// FindAt returns the leftmost match starting at or after byte offset at,
// which must be on a character boundary.
func (e *Engine) FindAt(text string, at int) *Match {
	start, end, ok := e.searchAt(text, at, nil)
	if !ok {
		return nil
	}
	return NewMatch(start, end, text)
}

// FindSubmatch returns the leftmost match in text with group bounds, or nil.
func (e *Engine) FindSubmatch(text string) *MatchWithCaptures {
	return e.FindSubmatchAt(text, 0)
}

// FindSubmatchAt is like FindAt but also reports group bounds.
func (e *Engine) FindSubmatchAt(text string, at int) *MatchWithCaptures {
	state := e.getSearchState()
	defer e.putSearchState(state)

	if _, _, ok := e.searchAt(text, at, state.slots); !ok {
		return nil
	}
	slots := make([]int, len(state.slots))
	copy(slots, state.slots)
	return NewMatchWithCaptures(text, slots)
}

// MatchFull reports whether the whole of text matches the pattern.
func (e *Engine) MatchFull(text string) bool {
	atomic.AddUint64(&e.stats.Searches, 1)
	atomic.AddUint64(&e.stats.MatcherAttempts, 1)
	return e.matcher.MatchFull(text, 0, nil)
}

// searchAt tries the matcher at each start offset from at to len(text), one
// character at a time, and returns the first match. When there is a
// prefilter, offsets before its next candidate are skipped. slots may be nil.
func (e *Engine) searchAt(text string, at int, slots []int) (start, end int, ok bool) {
	atomic.AddUint64(&e.stats.Searches, 1)
	if at < 0 || at > len(text) {
		return -1, -1, false
	}

	var haystack []byte
	if e.prefilter != nil {
		haystack = conv.StringBytes(text)
	}

	for pos := at; pos <= len(text); pos += charWidth(text, pos) {
		if e.prefilter != nil {
			candidate := e.prefilter.Find(haystack, pos)
			if candidate < 0 {
				return -1, -1, false
			}
			atomic.AddUint64(&e.stats.PrefilterCandidates, 1)
			pos = candidate
		}
		atomic.AddUint64(&e.stats.MatcherAttempts, 1)
		if end, ok := e.matcher.MatchAt(text, pos, slots); ok {
			return pos, end, true
		}
	}
	return -1, -1, false
}

// charWidth returns the byte width of the character at pos, and 1 at the
// end of text so that loops over offsets 0..len(text) terminate.
func charWidth(text string, pos int) int {
	if pos >= len(text) || text[pos] < utf8.RuneSelf {
		return 1
	}
	_, w := utf8.DecodeRuneInString(text[pos:])
	return w
}

// getSearchState retrieves a SearchState from the pool.
// Caller must call putSearchState when done.
func (e *Engine) getSearchState() *SearchState {
	return e.statePool.get()
}

// putSearchState returns a SearchState to the pool.
func (e *Engine) putSearchState(state *SearchState) {
	e.statePool.put(state)
}
