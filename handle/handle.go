// Package handle exposes compiled patterns and match iterators through
// opaque integer handles, the shape a foreign caller sees.
//
// A PatternID is obtained from Compile and stays valid until
// ReleasePattern. A MatcherID scans one text with one pattern and stays
// valid until ReleaseMatcher. Releasing a pattern invalidates every matcher
// opened on it; the matchers must still be released.
//
// Using a handle that was never issued, was already released, or belongs
// to a released pattern is a programming error: it is logged and then
// reported by panicking with a *MisuseError. Stale data is never returned.
//
// Example:
//
//	id, err := handle.Compile("(abc|def)")
//	if err != nil {
//	    return err
//	}
//	defer handle.ReleasePattern(id)
//
//	m := handle.OpenMatcher(id, "abcdefabc")
//	defer handle.ReleaseMatcher(m)
//	for span, ok := handle.Next(m); ok; span, ok = handle.Next(m) {
//	    fmt.Println(span)
//	}
package handle

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/coregx/regexpr"
	"github.com/coregx/regexpr/internal/conv"
	"github.com/coregx/regexpr/meta"
)

// PatternID identifies a compiled pattern. The zero value is never issued.
type PatternID uint32

// MatcherID identifies an open match iterator. The zero value is never issued.
type MatcherID uint32

// Span is a match location: a byte offset and a length.
type Span = regexpr.Span

// MisuseError describes an invalid use of a handle.
type MisuseError struct {
	Op     string
	Kind   string // "pattern" or "matcher"
	ID     uint32
	Reason string
}

// Error implements the error interface.
func (e *MisuseError) Error() string {
	return fmt.Sprintf("handle: %s: %s %d %s", e.Op, e.Kind, e.ID, e.Reason)
}

// scanner is the part of *regexpr.Iterator a matcher uses.
type scanner interface {
	Next() (Span, bool)
}

type matcher struct {
	pattern PatternID

	// mu serializes Next on this matcher. The flags are set without it so
	// a release never waits for a running search.
	mu       sync.Mutex
	scan     scanner
	orphaned atomic.Bool
	released atomic.Bool
}

// Registry owns a set of handles. It is safe for concurrent use. The
// registry lock only guards the handle tables; each matcher is advanced
// under its own lock, so concurrent Next calls on the same MatcherID see
// distinct spans and a slow search never stalls other handles.
type Registry struct {
	mu          sync.RWMutex
	patterns    map[PatternID]*regexpr.Regex
	matchers    map[MatcherID]*matcher
	lastPattern int
	lastMatcher int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		patterns: make(map[PatternID]*regexpr.Regex),
		matchers: make(map[MatcherID]*matcher),
	}
}

// Compile parses pattern and returns a handle to it. Compiled patterns are
// shared through the regexpr pattern cache, so compiling the same text twice
// parses it once; each call still gets its own handle.
func (r *Registry) Compile(pattern string) (PatternID, error) {
	re, err := regexpr.CompileCached(pattern)
	if err != nil {
		return 0, err
	}
	return r.register(re), nil
}

// CompileWithConfig is like Compile but uses config and bypasses the cache.
func (r *Registry) CompileWithConfig(pattern string, config meta.Config) (PatternID, error) {
	re, err := regexpr.CompileWithConfig(pattern, config)
	if err != nil {
		return 0, err
	}
	return r.register(re), nil
}

func (r *Registry) register(re *regexpr.Regex) PatternID {
	r.mu.Lock()
	r.lastPattern++
	id := PatternID(conv.IntToUint32(r.lastPattern))
	r.patterns[id] = re
	r.mu.Unlock()

	if glog.V(2) {
		glog.Infof("handle: compiled pattern %d %q", id, re.String())
	}
	return id
}

// Test reports whether the pattern matches anywhere in text.
func (r *Registry) Test(id PatternID, text string) bool {
	r.mu.RLock()
	re, ok := r.patterns[id]
	r.mu.RUnlock()
	if !ok {
		misuse("Test", "pattern", uint32(id), "is not live")
	}
	return re.Test(text)
}

// OpenMatcher starts a scan of text and returns a handle to it.
func (r *Registry) OpenMatcher(id PatternID, text string) MatcherID {
	r.mu.Lock()
	defer r.mu.Unlock()

	re, ok := r.patterns[id]
	if !ok {
		misuse("OpenMatcher", "pattern", uint32(id), "is not live")
	}
	r.lastMatcher++
	mid := MatcherID(conv.IntToUint32(r.lastMatcher))
	r.matchers[mid] = &matcher{pattern: id, scan: re.Scan(text)}
	return mid
}

// Next returns the next match of the scan, or false once it is exhausted.
func (r *Registry) Next(id MatcherID) (Span, bool) {
	r.mu.RLock()
	m, ok := r.matchers[id]
	r.mu.RUnlock()
	if !ok {
		misuse("Next", "matcher", uint32(id), "is not live")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.orphaned.Load() {
		misuse("Next", "matcher", uint32(id), fmt.Sprintf("belongs to released pattern %d", m.pattern))
	}
	if m.released.Load() {
		misuse("Next", "matcher", uint32(id), "is not live")
	}
	return m.scan.Next()
}

// ReleasePattern frees a pattern and invalidates the matchers opened on it.
func (r *Registry) ReleasePattern(id PatternID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.patterns[id]; !ok {
		misuse("ReleasePattern", "pattern", uint32(id), "is not live")
	}
	delete(r.patterns, id)
	orphaned := 0
	for _, m := range r.matchers {
		if m.pattern == id {
			m.orphaned.Store(true)
			orphaned++
		}
	}
	if glog.V(2) {
		glog.Infof("handle: released pattern %d, %d matchers invalidated", id, orphaned)
	}
}

// ReleaseMatcher frees a matcher. Matchers of released patterns may still
// be released.
func (r *Registry) ReleaseMatcher(id MatcherID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.matchers[id]
	if !ok {
		misuse("ReleaseMatcher", "matcher", uint32(id), "is not live")
	}
	delete(r.matchers, id)
	m.released.Store(true)
}

// Live returns the number of live patterns and matchers. Invalidated
// matchers count until they are released.
func (r *Registry) Live() (patterns, matchers int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.patterns), len(r.matchers)
}

func misuse(op, kind string, id uint32, reason string) {
	err := &MisuseError{Op: op, Kind: kind, ID: id, Reason: reason}
	glog.Errorf("%v", err)
	panic(err)
}
