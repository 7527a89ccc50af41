package meta

// Iterator yields the successive non-overlapping matches of an Engine in one
// text, left to right.
//
// After a match [start, end) the next search begins at end, or one character
// past end when the match was empty. Searching stops once the start offset
// passes len(text). An empty match is therefore possible at len(text).
//
// An Iterator is single-pass and must not be shared between goroutines; the
// Engine behind it may back any number of iterators at once.
type Iterator struct {
	engine *Engine
	text   string
	pos    int
	slots  []int
	done   bool
}

// Iter returns an iterator over the matches of e in text.
func (e *Engine) Iter(text string) *Iterator {
	return &Iterator{
		engine: e,
		text:   text,
		slots:  make([]int, e.matcher.NumSlots()),
	}
}

// Next advances to the next match and returns its bounds. ok is false once
// the matches are exhausted; every later call also returns false.
func (it *Iterator) Next() (start, end int, ok bool) {
	if it.done || it.pos > len(it.text) {
		it.done = true
		return -1, -1, false
	}
	start, end, ok = it.engine.searchAt(it.text, it.pos, it.slots)
	if !ok {
		it.done = true
		return -1, -1, false
	}
	it.pos = end
	if start == end {
		it.pos += charWidth(it.text, end)
	}
	return start, end, true
}

// Submatches returns the group bounds of the match last returned by Next,
// laid out as [start0, end0, start1, end1, ...] with -1 for groups that did
// not take part. The slice is overwritten by the next call to Next.
func (it *Iterator) Submatches() []int {
	return it.slots
}

// FindAll returns the bounds of up to n successive matches in text, all of
// them if n < 0.
func (e *Engine) FindAll(text string, n int) [][2]int {
	if n == 0 {
		return nil
	}
	var results [][2]int
	it := e.Iter(text)
	for {
		start, end, ok := it.Next()
		if !ok {
			break
		}
		results = append(results, [2]int{start, end})
		if n > 0 && len(results) == n {
			break
		}
	}
	return results
}
