// Package backtrack implements a continuation-passing backtracking matcher
// over the tree produced by package syntax.
//
// Every node is matched together with a Continuation: the obligation to
// match everything that follows it. A node proposes candidate end positions
// in its preferred order and accepts the first one for which the
// continuation succeeds. When the continuation fails, control returns into
// the node, which proposes its next candidate. This is what lets `.*` inside
// a group give back input needed after the group, or inside a bounded
// repetition give back input needed by later iterations.
//
// A repetition whose body always ends at one known offset, such as `a*`,
// `.{2,5}` or `(ab|cd)+`, and has no group inside an alternation, is
// matched with a loop instead of one recursive
// call per iteration, so its stack use does not grow with the input. Other
// repetitions recurse once per iteration.
//
// The worst case is exponential in the length of the input. There is no step
// limit or timeout.
package backtrack

import (
	"unicode"
	"unicode/utf8"

	"github.com/coregx/regexpr/syntax"
)

// Continuation reports whether the rest of a pattern matches starting at
// pos. Continuations may be invoked many times while backtracking.
type Continuation func(pos int) bool

// Matcher runs a parsed pattern against text. A Matcher holds no mutable
// state and is safe for concurrent use; each call owns its capture slots.
type Matcher struct {
	root     *syntax.Node
	numCaps  int
	foldCase bool

	// fixed holds the repetitions matched by repeatFixed.
	fixed map[*syntax.Node]bool
}

// New returns a Matcher for re.
func New(re *syntax.Regexp) *Matcher {
	m := &Matcher{
		root:     re.Root,
		numCaps:  re.NumCaps,
		foldCase: re.Flags&syntax.FoldCase != 0,
		fixed:    make(map[*syntax.Node]bool),
	}
	m.markFixed(re.Root)
	return m
}

// markFixed records the repetitions whose body has a single possible end
// and sets the same groups on every iteration. Replaying the last iteration
// then reproduces every capture the recursive path would leave.
func (m *Matcher) markFixed(n *syntax.Node) {
	if n.Op == syntax.OpRepeat {
		if _, ok := fixedWidth(n.Sub[0]); ok && !groupInBranch(n.Sub[0], false) {
			m.fixed[n] = true
		}
	}
	for _, sub := range n.Sub {
		m.markFixed(sub)
	}
}

// groupInBranch reports whether n has a group inside an alternation branch,
// that is, a group that may be skipped by some iteration.
func groupInBranch(n *syntax.Node, inBranch bool) bool {
	if n.Op == syntax.OpGroup && inBranch {
		return true
	}
	inBranch = inBranch || n.Op == syntax.OpAlternate
	for _, sub := range n.Sub {
		if groupInBranch(sub, inBranch) {
			return true
		}
	}
	return false
}

// fixedWidth returns the number of characters every match of n consumes,
// if that number is the same for all of them. Such a node can end at only
// one offset for a given start.
func fixedWidth(n *syntax.Node) (int, bool) {
	switch n.Op {
	case syntax.OpEmpty:
		return 0, true
	case syntax.OpLiteral, syntax.OpAnyChar:
		return 1, true
	case syntax.OpGroup:
		return fixedWidth(n.Sub[0])
	case syntax.OpConcat:
		total := 0
		for _, sub := range n.Sub {
			w, ok := fixedWidth(sub)
			if !ok {
				return 0, false
			}
			total += w
		}
		return total, true
	case syntax.OpAlternate:
		width := -1
		for _, sub := range n.Sub {
			w, ok := fixedWidth(sub)
			if !ok || (width >= 0 && w != width) {
				return 0, false
			}
			width = w
		}
		return width, true
	case syntax.OpRepeat:
		if n.Min != n.Max {
			return 0, false
		}
		w, ok := fixedWidth(n.Sub[0])
		return w * n.Min, ok
	}
	return 0, false
}

// NumSlots returns the length of a capture slot buffer covering the whole
// match (slots 0 and 1) and every group.
func (m *Matcher) NumSlots() int {
	return 2 * (m.numCaps + 1)
}

// MatchAt reports whether the pattern matches text starting exactly at pos,
// and if so the end of the first match found in backtracking order.
//
// caps may be nil when captures are not needed. Otherwise it must hold
// NumSlots() entries; on success slot 2*i and 2*i+1 hold the bounds of
// group i (-1 for groups that did not participate), on failure all slots are -1.
func (m *Matcher) MatchAt(text string, pos int, caps []int) (int, bool) {
	return m.run(text, pos, caps, false)
}

// MatchFull is like MatchAt but only accepts matches that end at len(text).
func (m *Matcher) MatchFull(text string, pos int, caps []int) bool {
	_, ok := m.run(text, pos, caps, true)
	return ok
}

func (m *Matcher) run(text string, pos int, caps []int, anchored bool) (int, bool) {
	clearSlots(caps)
	if pos < 0 || pos > len(text) {
		return -1, false
	}
	end := -1
	s := &search{text: text, caps: caps, foldCase: m.foldCase, fixed: m.fixed}
	ok := s.match(m.root, pos, func(e int) bool {
		if anchored && e != len(text) {
			return false
		}
		end = e
		return true
	})
	if !ok {
		return -1, false
	}
	if len(caps) >= 2 {
		caps[0], caps[1] = pos, end
	}
	return end, true
}

// MatchHere matches node at pos in text and then invokes k. It reports
// whether some way of matching node made k succeed. Group bounds are
// recorded in caps, which may be nil.
func (m *Matcher) MatchHere(node *syntax.Node, text string, pos int, k Continuation, caps []int) bool {
	s := &search{text: text, caps: caps, foldCase: m.foldCase, fixed: m.fixed}
	return s.match(node, pos, k)
}

func clearSlots(caps []int) {
	for i := range caps {
		caps[i] = -1
	}
}

// search is the per-call state of one match attempt.
type search struct {
	text     string
	caps     []int
	foldCase bool
	fixed    map[*syntax.Node]bool
}

// next decodes the character at pos. A zero width means end of text.
func (s *search) next(pos int) (rune, int) {
	if pos >= len(s.text) {
		return 0, 0
	}
	if c := s.text[pos]; c < utf8.RuneSelf {
		return rune(c), 1
	}
	return utf8.DecodeRuneInString(s.text[pos:])
}

func (s *search) match(n *syntax.Node, pos int, k Continuation) bool {
	switch n.Op {
	case syntax.OpEmpty:
		return k(pos)
	case syntax.OpLiteral, syntax.OpAnyChar:
		end, ok := s.char(n, pos)
		return ok && k(end)
	case syntax.OpConcat:
		return s.concat(n.Sub, pos, k)
	case syntax.OpAlternate:
		for _, alt := range n.Sub {
			if s.match(alt, pos, k) {
				return true
			}
		}
		return false
	case syntax.OpGroup:
		return s.group(n, pos, k)
	case syntax.OpRepeat:
		if s.fixed[n] {
			return s.repeatFixed(n, pos, k)
		}
		return s.repeat(n, 0, pos, k)
	}
	return false
}

// char matches a literal or '.' at pos and returns the end of the character.
func (s *search) char(n *syntax.Node, pos int) (int, bool) {
	r, w := s.next(pos)
	if w == 0 {
		return pos, false
	}
	if n.Op == syntax.OpAnyChar || r == n.Rune || (s.foldCase && equalFold(r, n.Rune)) {
		return pos + w, true
	}
	return pos, false
}

// advance matches a fixed width node at pos without a continuation and
// returns where it ends. Captures are not recorded.
func (s *search) advance(n *syntax.Node, pos int) (int, bool) {
	switch n.Op {
	case syntax.OpEmpty:
		return pos, true
	case syntax.OpLiteral, syntax.OpAnyChar:
		return s.char(n, pos)
	case syntax.OpGroup:
		return s.advance(n.Sub[0], pos)
	case syntax.OpConcat:
		for _, sub := range n.Sub {
			var ok bool
			if pos, ok = s.advance(sub, pos); !ok {
				return pos, false
			}
		}
		return pos, true
	case syntax.OpAlternate:
		for _, sub := range n.Sub {
			if end, ok := s.advance(sub, pos); ok {
				return end, true
			}
		}
	case syntax.OpRepeat:
		for i := 0; i < n.Min; i++ {
			var ok bool
			if pos, ok = s.advance(n.Sub[0], pos); !ok {
				return pos, false
			}
		}
		return pos, true
	}
	return pos, false
}

// concat matches subs[0] with a continuation that matches subs[1:] and
// finally k, so each element backtracks with knowledge of all later ones.
func (s *search) concat(subs []*syntax.Node, pos int, k Continuation) bool {
	if len(subs) == 0 {
		return k(pos)
	}
	rest := subs[1:]
	return s.match(subs[0], pos, func(next int) bool {
		return s.concat(rest, next, k)
	})
}

// group records [pos, end) for the group before handing over to k, and puts
// the previous bounds back if k fails, so only bounds on the accepted path
// survive.
func (s *search) group(n *syntax.Node, pos int, k Continuation) bool {
	lo, hi := 2*n.Index, 2*n.Index+1
	if hi >= len(s.caps) {
		return s.match(n.Sub[0], pos, k)
	}
	return s.match(n.Sub[0], pos, func(end int) bool {
		prevLo, prevHi := s.caps[lo], s.caps[hi]
		s.caps[lo], s.caps[hi] = pos, end
		if k(end) {
			return true
		}
		s.caps[lo], s.caps[hi] = prevLo, prevHi
		return false
	})
}

// repeat matches the remaining iterations of n, count of which are done.
// Another iteration is tried before stopping. Once Min is reached, an
// iteration that consumes nothing is accepted but ends the repetition,
// which bounds the recursion for bodies that can match the empty string.
func (s *search) repeat(n *syntax.Node, count, pos int, k Continuation) bool {
	canStop := count >= n.Min
	canGo := n.Max == syntax.Unbounded || count < n.Max

	if canGo && s.match(n.Sub[0], pos, func(next int) bool {
		if next == pos && canStop {
			return k(next)
		}
		return s.repeat(n, count+1, next, k)
	}) {
		return true
	}
	return canStop && k(pos)
}

// repeatFixed is repeat for a body with a single possible end. The end of
// every iteration is found in a loop, and the continuation is then tried
// from the most iterations down to Min. The last iteration is matched again
// with the continuation so that groups inside the body record it.
func (s *search) repeatFixed(n *syntax.Node, pos int, k Continuation) bool {
	body := n.Sub[0]
	ends := []int{pos}
	for n.Max == syntax.Unbounded || len(ends)-1 < n.Max {
		cur := ends[len(ends)-1]
		next, ok := s.advance(body, cur)
		if !ok {
			break
		}
		ends = append(ends, next)
		if next == cur && len(ends)-2 >= n.Min {
			break
		}
	}

	for i := len(ends) - 1; i >= n.Min; i-- {
		if i == 0 {
			return k(pos)
		}
		if s.match(body, ends[i-1], k) {
			return true
		}
	}
	return false
}

// equalFold reports whether a and b are equal under simple case folding.
func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}
