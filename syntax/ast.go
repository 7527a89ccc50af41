// Package syntax parses regular expressions into an abstract syntax tree.
//
// The accepted syntax is deliberately small:
//
//	c        literal character
//	\c       escaped character c, taken literally
//	.        any single character
//	xy       x followed by y
//	x|y      x or y, tried left to right
//	(x)      capturing group, numbered by its opening parenthesis
//	x*       zero or more x
//	x+       one or more x
//	x?       zero or one x
//	x{m,n}   between m and n x ({m}, {m,} and {,n} are also accepted)
//
// All repetition is greedy. The tree produced by Parse is never modified
// afterwards and may be shared by any number of concurrent matches.
package syntax

import (
	"strconv"
	"strings"
)

// Op is the operator of a single Node.
type Op uint8

const (
	OpEmpty     Op = iota + 1 // matches the empty string
	OpLiteral                 // matches Rune
	OpAnyChar                 // matches any character
	OpConcat                  // matches Sub[0], then Sub[1], ...
	OpAlternate               // matches Sub[0] or Sub[1] or ...
	OpGroup                   // capturing group Index around Sub[0]
	OpRepeat                  // matches Sub[0] Min to Max times, most first
)

// Unbounded is the Max of a repetition without an upper limit.
const Unbounded = -1

// MaxRepeat is the largest bound accepted inside {m,n}.
const MaxRepeat = 1000

var opNames = [...]string{
	OpEmpty:     "Empty",
	OpLiteral:   "Literal",
	OpAnyChar:   "AnyChar",
	OpConcat:    "Concat",
	OpAlternate: "Alternate",
	OpGroup:     "Group",
	OpRepeat:    "Repeat",
}

func (op Op) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return "Op(" + strconv.Itoa(int(op)) + ")"
}

// Node is one element of a parsed pattern.
type Node struct {
	Op    Op
	Rune  rune    // OpLiteral
	Sub   []*Node // OpConcat, OpAlternate: operands; OpGroup, OpRepeat: body
	Index int     // OpGroup: capture slot, starting at 1
	Min   int     // OpRepeat
	Max   int     // OpRepeat; Unbounded for no limit
}

// Regexp is the result of parsing a pattern.
type Regexp struct {
	Pattern string
	Root    *Node
	NumCaps int // number of capturing groups, not counting the whole match
	Flags   Flags
}

// Flags alter how a parsed pattern is matched.
type Flags uint8

const (
	// FoldCase makes literals match regardless of letter case.
	FoldCase Flags = 1 << iota
)

// MinLen returns the minimum number of characters any match of n consumes.
func (n *Node) MinLen() int {
	switch n.Op {
	case OpLiteral, OpAnyChar:
		return 1
	case OpConcat:
		total := 0
		for _, sub := range n.Sub {
			total += sub.MinLen()
		}
		return total
	case OpAlternate:
		least := -1
		for _, sub := range n.Sub {
			if l := sub.MinLen(); least < 0 || l < least {
				least = l
			}
		}
		if least < 0 {
			return 0
		}
		return least
	case OpGroup:
		return n.Sub[0].MinLen()
	case OpRepeat:
		return n.Min * n.Sub[0].MinLen()
	}
	return 0
}

// String renders n back into pattern syntax. Parsing the result yields an
// equivalent tree.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	switch n.Op {
	case OpEmpty:
	case OpLiteral:
		writeLiteral(b, n.Rune)
	case OpAnyChar:
		b.WriteByte('.')
	case OpConcat:
		for _, sub := range n.Sub {
			if sub.Op == OpAlternate {
				b.WriteByte('(')
				sub.write(b)
				b.WriteByte(')')
				continue
			}
			sub.write(b)
		}
	case OpAlternate:
		for i, sub := range n.Sub {
			if i > 0 {
				b.WriteByte('|')
			}
			sub.write(b)
		}
	case OpGroup:
		b.WriteByte('(')
		n.Sub[0].write(b)
		b.WriteByte(')')
	case OpRepeat:
		sub := n.Sub[0]
		if sub.Op == OpConcat || sub.Op == OpAlternate || sub.Op == OpRepeat || sub.Op == OpEmpty {
			// Only groups bind tighter than a quantifier; the parser never
			// produces these bodies, hand-built trees might.
			b.WriteByte('(')
			sub.write(b)
			b.WriteByte(')')
		} else {
			sub.write(b)
		}
		writeQuantifier(b, n.Min, n.Max)
	}
}

func writeLiteral(b *strings.Builder, r rune) {
	if r < 0x80 && strings.IndexByte(metaChars, byte(r)) >= 0 {
		b.WriteByte('\\')
	}
	b.WriteRune(r)
}

// metaChars are the characters that need a backslash to be taken literally.
const metaChars = `\.+*?()|{}`

func writeQuantifier(b *strings.Builder, lo, hi int) {
	switch {
	case lo == 0 && hi == Unbounded:
		b.WriteByte('*')
	case lo == 1 && hi == Unbounded:
		b.WriteByte('+')
	case lo == 0 && hi == 1:
		b.WriteByte('?')
	case hi == Unbounded:
		b.WriteString("{" + strconv.Itoa(lo) + ",}")
	case lo == hi:
		b.WriteString("{" + strconv.Itoa(lo) + "}")
	default:
		b.WriteString("{" + strconv.Itoa(lo) + "," + strconv.Itoa(hi) + "}")
	}
}

// Dump returns an indented, one node per line description of the tree.
func (n *Node) Dump() string {
	var b strings.Builder
	n.dump(&b, 0)
	return b.String()
}

func (n *Node) dump(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Op.String())
	switch n.Op {
	case OpLiteral:
		b.WriteString(" " + strconv.QuoteRune(n.Rune))
	case OpGroup:
		b.WriteString(" #" + strconv.Itoa(n.Index))
	case OpRepeat:
		hi := "inf"
		if n.Max != Unbounded {
			hi = strconv.Itoa(n.Max)
		}
		b.WriteString(" {" + strconv.Itoa(n.Min) + "," + hi + "}")
	}
	b.WriteByte('\n')
	for _, sub := range n.Sub {
		sub.dump(b, depth+1)
	}
}
