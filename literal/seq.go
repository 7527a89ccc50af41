// Package literal extracts the literal strings every match of a pattern must
// begin with, and provides the set operations the prefilter needs on them.
//
// Key concepts:
//   - A Literal is a concrete byte sequence that a match starts with
//   - A Seq is a set of alternative literals (e.g. from /foo|bar/)
//   - Minimize and LongestCommonPrefix shrink a Seq before a prefilter is built
package literal

import (
	"bytes"
	"sort"
	"strings"
)

// Literal is a byte sequence extracted from a pattern.
// Complete reports whether the literal is an entire match of the pattern
// (true) or only a prefix of one (false).
//
// Example:
//   - Pattern /hello/ → Literal{[]byte("hello"), true}
//   - Pattern /hello.*/ → Literal{[]byte("hello"), false}
type Literal struct {
	// Bytes contains the literal, UTF-8 encoded.
	Bytes []byte

	// Complete indicates that finding Bytes in the text is already a match.
	Complete bool
}

// NewLiteral creates a new Literal from the given byte sequence and completeness flag.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{
		Bytes:    b,
		Complete: complete,
	}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a string representation of the literal for debugging purposes.
// Format: "literal{bytes, complete=true/false}"
//
// Example:
//
//	lit := literal.NewLiteral([]byte("test"), true)
//	fmt.Println(lit.String()) // Output: literal{test, complete=true}
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq is a set of alternative literals. A match of the pattern the Seq was
// extracted from begins with at least one of them.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("bar"), true),
//	)
//	fmt.Printf("Sequence has %d literals\n", seq.Len()) // Output: Sequence has 2 literals
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{
		literals: lits,
	}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at the specified index.
// Panics if index is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty returns true if the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// AllComplete reports whether every literal is a complete match. An empty
// sequence is never complete.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete {
			return false
		}
	}
	return true
}

// Bytes returns the literals' byte slices in order.
func (s *Seq) Bytes() [][]byte {
	if s == nil {
		return nil
	}
	out := make([][]byte, len(s.literals))
	for i, lit := range s.literals {
		out[i] = lit.Bytes
	}
	return out
}

// Minimize removes redundant literals from the sequence.
//
// A literal L is redundant if a shorter literal S is a prefix of L: any text
// position where L starts is also a position where S starts. Duplicates are
// removed the same way. If L was complete, S is only kept complete when it
// was complete itself, so AllComplete never becomes true by minimizing.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("foobar"), true),
//	)
//	seq.Minimize()
//	fmt.Println(seq.Len()) // Output: 1
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	sort.SliceStable(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, current := range s.literals {
		redundant := false
		for j := range kept {
			if isPrefix(kept[j].Bytes, current.Bytes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, current)
		}
	}
	s.literals = kept
}

// LongestCommonPrefix returns the longest common prefix of all literals in the sequence.
// If the sequence is empty or has no common prefix, returns an empty slice.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("hello"), false),
//	    literal.NewLiteral([]byte("help"), false),
//	)
//	fmt.Println(string(seq.LongestCommonPrefix())) // Output: hel
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}

	prefix := s.literals[0].Bytes
	for i := 1; i < len(s.literals); i++ {
		prefix = commonPrefix(prefix, s.literals[i].Bytes)
		if len(prefix) == 0 {
			return []byte{}
		}
	}

	result := make([]byte, len(prefix))
	copy(result, prefix)
	return result
}

// String renders the sequence as ["a" "b"...], with a trailing '*' on
// incomplete literals.
func (s *Seq) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < s.Len(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		lit := s.literals[i]
		b.WriteString(`"` + string(lit.Bytes) + `"`)
		if !lit.Complete {
			b.WriteByte('*')
		}
	}
	b.WriteByte(']')
	return b.String()
}

// isPrefix returns true if prefix is a prefix of s.
func isPrefix(prefix, s []byte) bool {
	if len(prefix) > len(s) {
		return false
	}
	return bytes.Equal(prefix, s[:len(prefix)])
}

// commonPrefix returns the longest common prefix of a and b.
func commonPrefix(a, b []byte) []byte {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
