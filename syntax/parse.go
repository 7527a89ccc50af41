package syntax

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultMaxNesting is the group nesting limit used by Parse.
const DefaultMaxNesting = 1000

// Parse parses pattern into a tree. Capture groups are numbered from 1 in
// the order of their opening parenthesis.
func Parse(pattern string, flags Flags) (*Regexp, error) {
	return ParseWithLimit(pattern, flags, DefaultMaxNesting)
}

// ParseWithLimit is like Parse but rejects patterns whose groups nest more
// than maxNesting levels deep.
func ParseWithLimit(pattern string, flags Flags, maxNesting int) (*Regexp, error) {
	p := &parser{src: pattern, maxDepth: maxNesting}
	root, err := p.parseAlternate()
	if err != nil {
		return nil, err
	}
	if p.more() {
		// parseAlternate only stops early at a ')' with no open group.
		return nil, p.errorAt(ErrUnexpectedParen, p.pos, "")
	}
	return &Regexp{
		Pattern: pattern,
		Root:    root,
		NumCaps: p.ncap,
		Flags:   flags,
	}, nil
}

type parser struct {
	src      string
	pos      int
	ncap     int
	depth    int
	maxDepth int
}

func (p *parser) more() bool {
	return p.pos < len(p.src)
}

func (p *parser) peek() byte {
	return p.src[p.pos]
}

func (p *parser) errorAt(code ErrorCode, offset int, expr string) *Error {
	return &Error{Code: code, Offset: offset, Expr: expr, Pattern: p.src}
}

// parseAlternate parses concatenations separated by '|'.
func (p *parser) parseAlternate() (*Node, error) {
	var branches []*Node
	var starts []int
	for {
		starts = append(starts, p.pos)
		branch, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
		if !p.more() || p.peek() != '|' {
			break
		}
		p.pos++
	}
	if len(branches) == 1 {
		return branches[0], nil
	}
	for i, branch := range branches {
		if branch.Op != OpEmpty {
			continue
		}
		// Point at the '|' that borders the empty branch.
		offset := starts[i]
		if i > 0 {
			offset--
		}
		return nil, p.errorAt(ErrEmptyAlternative, offset, "")
	}
	return &Node{Op: OpAlternate, Sub: branches}, nil
}

// parseConcat parses repeated atoms up to '|', ')' or the end of input.
func (p *parser) parseConcat() (*Node, error) {
	var items []*Node
	for p.more() {
		if c := p.peek(); c == '|' || c == ')' {
			break
		}
		item, err := p.parseRepeat()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	switch len(items) {
	case 0:
		return &Node{Op: OpEmpty}, nil
	case 1:
		return items[0], nil
	}
	return &Node{Op: OpConcat, Sub: items}, nil
}

// parseRepeat parses an atom and at most one quantifier after it.
func (p *parser) parseRepeat() (*Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if !p.more() || !isQuantifier(p.peek()) {
		return atom, nil
	}
	start := p.pos
	lo, hi, err := p.parseQuantifier()
	if err != nil {
		return nil, err
	}
	if p.more() && isQuantifier(p.peek()) {
		return nil, p.errorAt(ErrRepeatedQuantifier, p.pos, p.src[start:p.pos+1])
	}
	return &Node{Op: OpRepeat, Sub: []*Node{atom}, Min: lo, Max: hi}, nil
}

func isQuantifier(c byte) bool {
	return c == '*' || c == '+' || c == '?' || c == '{'
}

// parseQuantifier consumes one quantifier and returns its bounds.
func (p *parser) parseQuantifier() (lo, hi int, err error) {
	c := p.peek()
	p.pos++
	switch c {
	case '*':
		return 0, Unbounded, nil
	case '+':
		return 1, Unbounded, nil
	case '?':
		return 0, 1, nil
	}
	return p.parseBraces(p.pos - 1)
}

// parseBraces parses the {m,n} family. open is the offset of '{'.
func (p *parser) parseBraces(open int) (lo, hi int, err error) {
	end := strings.IndexByte(p.src[open:], '}')
	if end < 0 {
		return 0, 0, p.errorAt(ErrMissingBrace, open, p.src[open:])
	}
	end += open
	expr := p.src[open : end+1]
	body := p.src[open+1 : end]
	p.pos = end + 1

	invalid := func() (int, int, error) {
		return 0, 0, p.errorAt(ErrInvalidRepeatSize, open, expr)
	}
	minText, maxText, hasComma := strings.Cut(body, ",")
	if !hasComma {
		n, ok := parseBound(minText)
		if !ok {
			return invalid()
		}
		return n, n, nil
	}
	if minText == "" && maxText == "" {
		return invalid()
	}
	lo, hi = 0, Unbounded
	if minText != "" {
		n, ok := parseBound(minText)
		if !ok {
			return invalid()
		}
		lo = n
	}
	if maxText != "" {
		n, ok := parseBound(maxText)
		if !ok || n < lo {
			return invalid()
		}
		hi = n
	}
	return lo, hi, nil
}

// parseBound parses a non-empty run of decimal digits no larger than MaxRepeat.
func parseBound(s string) (int, bool) {
	if s == "" || len(s) > 4 {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > MaxRepeat {
		return 0, false
	}
	return n, true
}

// parseAtom parses a literal, an escape, '.' or a parenthesized group.
func (p *parser) parseAtom() (*Node, error) {
	switch c := p.peek(); c {
	case '(':
		return p.parseGroup()
	case '*', '+', '?', '{':
		return nil, p.errorAt(ErrMissingRepeatArgument, p.pos, string(c))
	case '.':
		p.pos++
		return &Node{Op: OpAnyChar}, nil
	case '\\':
		if p.pos+1 >= len(p.src) {
			return nil, p.errorAt(ErrTrailingBackslash, p.pos, "")
		}
		p.pos++
		return p.parseLiteral(), nil
	}
	return p.parseLiteral(), nil
}

func (p *parser) parseLiteral() *Node {
	r, w := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += w
	return &Node{Op: OpLiteral, Rune: r}
}

func (p *parser) parseGroup() (*Node, error) {
	open := p.pos
	p.depth++
	if p.depth > p.maxDepth {
		return nil, p.errorAt(ErrNestingDepth, open, "")
	}
	p.ncap++
	index := p.ncap
	p.pos++

	body, err := p.parseAlternate()
	if err != nil {
		return nil, err
	}
	if !p.more() {
		return nil, p.errorAt(ErrMissingParen, open, "")
	}
	p.pos++ // ')'
	p.depth--
	return &Node{Op: OpGroup, Index: index, Sub: []*Node{body}}, nil
}
