package regexpr

import (
	"iter"
	"strconv"

	"github.com/coregx/regexpr/meta"
)

// Span is a half-open byte range [Offset, Offset+Length) of a searched text.
type Span struct {
	Offset int
	Length int
}

// End returns the offset just past the span.
func (s Span) End() int {
	return s.Offset + s.Length
}

// String formats the span as (offset,length).
func (s Span) String() string {
	return "(" + strconv.Itoa(s.Offset) + "," + strconv.Itoa(s.Length) + ")"
}

// Iterator yields the successive non-overlapping matches of a Regex in one
// text, left to right.
//
// After a match the search continues at its end, or one character further
// if the match was empty; it stops once the start offset passes the end of
// the text. A pattern that can match the empty string therefore also yields
// an empty span at len(text).
//
// An Iterator is single-pass. Call Scan again to start over. It must not be
// shared between goroutines, but one Regex may back any number of iterators.
type Iterator struct {
	it *meta.Iterator
}

// Scan returns an iterator over the matches of r in text.
//
// Example:
//
//	re := regexpr.MustCompile(`(abc|def)`)
//	for span := range re.Scan("abcdefabc").All() {
//	    fmt.Println(span) // (0,3) (3,3) (6,3)
//	}
func (r *Regex) Scan(text string) *Iterator {
	return &Iterator{it: r.engine.Iter(text)}
}

// Next returns the next match, or false once there are no more.
func (it *Iterator) Next() (Span, bool) {
	start, end, ok := it.it.Next()
	if !ok {
		return Span{}, false
	}
	return Span{Offset: start, Length: end - start}, true
}

// Submatches returns the group bounds of the span last returned by Next:
// 2*(NumSubexp()+1) offsets, -1 for groups that did not take part.
func (it *Iterator) Submatches() []int {
	slots := it.it.Submatches()
	out := make([]int, len(slots))
	copy(out, slots)
	return out
}

// All returns the remaining matches as a sequence for use with range.
func (it *Iterator) All() iter.Seq[Span] {
	return func(yield func(Span) bool) {
		for {
			span, ok := it.Next()
			if !ok || !yield(span) {
				return
			}
		}
	}
}
