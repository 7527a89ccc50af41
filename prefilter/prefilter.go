// Package prefilter provides fast candidate filtering for regex search using
// extracted literal sequences.
//
// A prefilter is used to quickly reject positions in the haystack that cannot
// possibly start a match. The backtracking matcher is then only started at
// the positions the prefilter reports.
//
// The package selects a prefilter based on the extracted prefix literals:
//   - Single byte → memchr (bytes.IndexByte)
//   - Single substring → memmem (bytes.Index)
//   - Several literals → Aho-Corasick automaton
//
// Example usage:
//
//	re, _ := syntax.Parse("(hello|world)", 0)
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(re.Root)
//
//	pf := prefilter.NewBuilder(prefixes).Build()
//
//	haystack := []byte("foo hello bar world baz")
//	pos := pf.Find(haystack, 0)
//	// pos == 4 (position of "hello")
package prefilter

import (
	"bytes"
	"strconv"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/regexpr/literal"
)

// Prefilter finds candidate match positions before the matcher runs.
type Prefilter interface {
	// Find returns the index of the first candidate match starting at or after
	// 'start', or -1 if no candidate is found.
	//
	// A candidate is a position where one of the prefilter literals starts.
	// No match of the pattern can start before the returned position.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a candidate is already a match: every
	// literal is an entire match of the pattern.
	IsComplete() bool

	// String describes the prefilter for logging and Dump output.
	String() string
}

// Builder selects and builds a prefilter for a prefix literal sequence.
type Builder struct {
	prefixes *literal.Seq
	minLen   int
}

// NewBuilder creates a builder for the given prefix literals.
func NewBuilder(prefixes *literal.Seq) *Builder {
	return &Builder{prefixes: prefixes, minLen: 1}
}

// WithMinLen sets the shortest literal worth prefiltering on. When any
// literal is shorter, Build returns nil.
func (b *Builder) WithMinLen(n int) *Builder {
	b.minLen = n
	return b
}

// Build returns the prefilter, or nil when the literals cannot narrow the search.
func (b *Builder) Build() Prefilter {
	seq := b.prefixes
	if seq.IsEmpty() || minLen(seq) < b.minLen {
		return nil
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return newMemchrPrefilter(lit.Bytes[0], lit.Complete)
		}
		return newMemmemPrefilter(lit.Bytes, lit.Complete)
	}

	if pf, err := newAhoCorasickPrefilter(seq); err == nil {
		return pf
	}

	// Fall back to the common prefix of all literals, which every
	// candidate has to start with anyway.
	lcp := seq.LongestCommonPrefix()
	if len(lcp) < b.minLen || len(lcp) == 0 {
		return nil
	}
	if len(lcp) == 1 {
		return newMemchrPrefilter(lcp[0], false)
	}
	return newMemmemPrefilter(lcp, false)
}

func minLen(seq *literal.Seq) int {
	shortest := int(^uint(0) >> 1)
	for i := 0; i < seq.Len(); i++ {
		if l := seq.Get(i).Len(); l < shortest {
			shortest = l
		}
	}
	return shortest
}

// memchrPrefilter finds a single byte.
type memchrPrefilter struct {
	needle   byte
	complete bool
}

func newMemchrPrefilter(needle byte, complete bool) Prefilter {
	return &memchrPrefilter{
		needle:   needle,
		complete: complete,
	}
}

func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}

	idx := bytes.IndexByte(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

func (p *memchrPrefilter) String() string {
	return "memchr(" + strconv.QuoteRuneToASCII(rune(p.needle)) + ")"
}

// memmemPrefilter finds a single substring.
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

func newMemmemPrefilter(needle []byte, complete bool) Prefilter {
	needleCopy := make([]byte, len(needle))
	copy(needleCopy, needle)

	return &memmemPrefilter{
		needle:   needleCopy,
		complete: complete,
	}
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}

	idx := bytes.Index(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

func (p *memmemPrefilter) String() string {
	return "memmem(" + strconv.Quote(string(p.needle)) + ")"
}

// ahoCorasickPrefilter finds the leftmost occurrence of any of several literals.
type ahoCorasickPrefilter struct {
	automaton *ahocorasick.Automaton
	count     int
	complete  bool
}

func newAhoCorasickPrefilter(seq *literal.Seq) (Prefilter, error) {
	builder := ahocorasick.NewBuilder()
	for _, pattern := range seq.Bytes() {
		builder.AddPattern(pattern)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &ahoCorasickPrefilter{
		automaton: auto,
		count:     seq.Len(),
		complete:  seq.AllComplete(),
	}, nil
}

func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}

	m := p.automaton.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (p *ahoCorasickPrefilter) IsComplete() bool {
	return p.complete
}

func (p *ahoCorasickPrefilter) String() string {
	return "aho-corasick(" + strconv.Itoa(p.count) + " literals)"
}
