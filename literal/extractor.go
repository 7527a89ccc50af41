package literal

import (
	"unicode/utf8"

	"github.com/coregx/regexpr/syntax"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits prevent excessive extraction from complex patterns:
//   - MaxLiterals: prevents memory bloat from alternations like (a|b|c|d|...)
//   - MaxLiteralLen: prevents extracting very long literals that hurt cache locality
type ExtractorConfig struct {
	// MaxLiterals limits the number of literals in an extracted Seq.
	// Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the length in bytes of each extracted literal.
	// Longer literals are cut and become incomplete. Default: 64.
	MaxLiteralLen int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
	}
}

// Extractor extracts prefix literals from a parsed pattern.
//
// Example:
//
//	re, _ := syntax.Parse("(hello|world)", 0)
//	extractor := literal.New(literal.DefaultConfig())
//	prefixes := extractor.ExtractPrefixes(re.Root)
//	// prefixes = ["hello", "world"]
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// ExtractPrefixes returns literals that every match of n starts with.
//
// Handles each syntax.Op:
//   - OpLiteral: the character itself, complete
//   - OpConcat: cross product of consecutive operands while they stay complete
//   - OpAlternate: union of all alternatives (e.g. (foo|bar) → ["foo", "bar"])
//   - OpGroup: extract from the body
//   - OpRepeat: the body's prefixes if at least one iteration is required
//   - OpAnyChar: no requirement
//
// Examples:
//
//	"hello"         → ["hello"]
//	"(foo|bar)"     → ["foo", "bar"]
//	"hello.*world"  → ["hello"*]
//	"a+b"           → ["a"*]
//	".*foo"         → [] (no prefix requirement)
//
// Returns an empty Seq if some match can start with an arbitrary character
// or can be empty.
func (e *Extractor) ExtractPrefixes(n *syntax.Node) *Seq {
	lits := e.extract(n)
	for _, lit := range lits {
		if len(lit.Bytes) == 0 {
			return NewSeq()
		}
	}
	seq := NewSeq(lits...)
	seq.Minimize()
	return seq
}

// unconstrained is the result for a node whose matches may start anywhere.
func unconstrained() []Literal {
	return []Literal{{Bytes: []byte{}, Complete: false}}
}

func (e *Extractor) extract(n *syntax.Node) []Literal {
	switch n.Op {
	case syntax.OpEmpty:
		return []Literal{{Bytes: []byte{}, Complete: true}}
	case syntax.OpLiteral:
		// The matcher reads any invalid byte in the text as U+FFFD, so the
		// encoded replacement character is not a byte string every match holds.
		if n.Rune == utf8.RuneError {
			return unconstrained()
		}
		return []Literal{{Bytes: utf8.AppendRune(nil, n.Rune), Complete: true}}
	case syntax.OpConcat:
		return e.extractConcat(n.Sub)
	case syntax.OpAlternate:
		return e.extractAlternate(n.Sub)
	case syntax.OpGroup:
		return e.extract(n.Sub[0])
	case syntax.OpRepeat:
		if n.Min == 0 {
			return unconstrained()
		}
		lits := e.extract(n.Sub[0])
		if n.Min == 1 && n.Max == 1 {
			return lits
		}
		return markIncomplete(lits)
	}
	return unconstrained()
}

func (e *Extractor) extractConcat(subs []*syntax.Node) []Literal {
	acc := []Literal{{Bytes: []byte{}, Complete: true}}
	for _, sub := range subs {
		if !anyComplete(acc) {
			break
		}
		next := e.extract(sub)
		if len(acc)*len(next) > e.config.MaxLiterals {
			return markIncomplete(acc)
		}
		acc = e.cross(acc, next)
	}
	return acc
}

// cross appends every literal of next to every complete literal of acc.
func (e *Extractor) cross(acc, next []Literal) []Literal {
	out := make([]Literal, 0, len(acc)*len(next))
	for _, a := range acc {
		if !a.Complete {
			out = append(out, a)
			continue
		}
		for _, b := range next {
			joined := make([]byte, 0, len(a.Bytes)+len(b.Bytes))
			joined = append(joined, a.Bytes...)
			joined = append(joined, b.Bytes...)
			out = append(out, e.clip(Literal{Bytes: joined, Complete: b.Complete}))
		}
	}
	return out
}

func (e *Extractor) extractAlternate(subs []*syntax.Node) []Literal {
	var out []Literal
	for _, sub := range subs {
		out = append(out, e.extract(sub)...)
		if len(out) > e.config.MaxLiterals {
			return unconstrained()
		}
	}
	return out
}

// clip cuts a literal to MaxLiteralLen bytes on a character boundary.
func (e *Extractor) clip(lit Literal) Literal {
	if len(lit.Bytes) <= e.config.MaxLiteralLen {
		return lit
	}
	end := e.config.MaxLiteralLen
	for end > 0 && !utf8.RuneStart(lit.Bytes[end]) {
		end--
	}
	return Literal{Bytes: lit.Bytes[:end], Complete: false}
}

func anyComplete(lits []Literal) bool {
	for _, lit := range lits {
		if lit.Complete {
			return true
		}
	}
	return false
}

func markIncomplete(lits []Literal) []Literal {
	out := make([]Literal, len(lits))
	for i, lit := range lits {
		out[i] = Literal{Bytes: lit.Bytes, Complete: false}
	}
	return out
}
