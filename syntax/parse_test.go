package syntax

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"", ""},
		{"abc", "abc"},
		{"a.c", "a.c"},
		{"a|b|c", "a|b|c"},
		{"(abc|def)", "(abc|def)"},
		{"ab(c.*de)fg", "ab(c.*de)fg"},
		{"a*b+c?", "a*b+c?"},
		{"a{2,3}", "a{2,3}"},
		{"a{2,}", "a{2,}"},
		{"a{3}", "a{3}"},
		{"a{,4}", "a{0,4}"},
		{"a{0,1}", "a?"},
		{"a{1,}", "a+"},
		{`\.\*\(`, `\.\*\(`},
		{`\a\b`, "ab"},
		{"()", "()"},
		{"(x?)*", "(x?)*"},
		{"日本.語", "日本.語"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re, err := Parse(tt.pattern, 0)
			require.NoError(t, err)
			require.Equal(t, tt.want, re.Root.String())

			// Rendering is stable under reparsing.
			again, err := Parse(tt.want, 0)
			require.NoError(t, err)
			require.Equal(t, tt.want, again.Root.String())
		})
	}
}

func TestParseTree(t *testing.T) {
	re, err := Parse("ab(c.*){2,3}", 0)
	require.NoError(t, err)
	require.Equal(t, 1, re.NumCaps)

	root := re.Root
	require.Equal(t, OpConcat, root.Op)
	require.Len(t, root.Sub, 3)
	require.Equal(t, OpLiteral, root.Sub[0].Op)
	require.Equal(t, 'a', root.Sub[0].Rune)

	rep := root.Sub[2]
	require.Equal(t, OpRepeat, rep.Op)
	require.Equal(t, 2, rep.Min)
	require.Equal(t, 3, rep.Max)

	group := rep.Sub[0]
	require.Equal(t, OpGroup, group.Op)
	require.Equal(t, 1, group.Index)

	star := group.Sub[0].Sub[1]
	require.Equal(t, OpRepeat, star.Op)
	require.Equal(t, 0, star.Min)
	require.Equal(t, Unbounded, star.Max)
	require.Equal(t, OpAnyChar, star.Sub[0].Op)
}

func TestParseCaptureNumbering(t *testing.T) {
	re, err := Parse("((a)(b(c)))(d)", 0)
	require.NoError(t, err)
	require.Equal(t, 5, re.NumCaps)

	var order []int
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Op == OpGroup {
			order = append(order, n.Index)
		}
		for _, sub := range n.Sub {
			walk(sub)
		}
	}
	walk(re.Root)
	require.Equal(t, []int{1, 2, 3, 4, 5}, order)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		pattern string
		code    ErrorCode
		offset  int
	}{
		{"(abc", ErrMissingParen, 0},
		{"a(b(c)", ErrMissingParen, 1},
		{"abc)", ErrUnexpectedParen, 3},
		{")", ErrUnexpectedParen, 0},
		{"*", ErrMissingRepeatArgument, 0},
		{"+a", ErrMissingRepeatArgument, 0},
		{"?", ErrMissingRepeatArgument, 0},
		{"a(*b)", ErrMissingRepeatArgument, 2},
		{"a|*", ErrMissingRepeatArgument, 2},
		{"{2}", ErrMissingRepeatArgument, 0},
		{"a{2", ErrMissingBrace, 1},
		{"a{x}", ErrInvalidRepeatSize, 1},
		{"a{}", ErrInvalidRepeatSize, 1},
		{"a{,}", ErrInvalidRepeatSize, 1},
		{"a{3,2}", ErrInvalidRepeatSize, 1},
		{"a{1,2,3}", ErrInvalidRepeatSize, 1},
		{"a{-1}", ErrInvalidRepeatSize, 1},
		{"a{1001}", ErrInvalidRepeatSize, 1},
		{"a**", ErrRepeatedQuantifier, 2},
		{"a+?", ErrRepeatedQuantifier, 2},
		{"a{2}{3}", ErrRepeatedQuantifier, 4},
		{"|a", ErrEmptyAlternative, 0},
		{"a|", ErrEmptyAlternative, 1},
		{"a||b", ErrEmptyAlternative, 1},
		{"(|a)", ErrEmptyAlternative, 1},
		{`ab\`, ErrTrailingBackslash, 2},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re, err := Parse(tt.pattern, 0)
			require.Nil(t, re)
			require.Error(t, err)

			var perr *Error
			require.True(t, errors.As(err, &perr), "want *Error, got %T", err)
			require.Equal(t, tt.code, perr.Code)
			require.Equal(t, tt.offset, perr.Offset)
			require.Equal(t, tt.pattern, perr.Pattern)
			require.True(t, errors.Is(err, tt.code))
		})
	}
}

func TestParseNestingDepth(t *testing.T) {
	deep := strings.Repeat("(", 20) + "a" + strings.Repeat(")", 20)

	_, err := ParseWithLimit(deep, 0, 20)
	require.NoError(t, err)

	_, err = ParseWithLimit(deep, 0, 19)
	require.ErrorIs(t, err, ErrNestingDepth)
}

func TestErrorMessage(t *testing.T) {
	_, err := Parse("a{3,2}", 0)
	require.EqualError(t, err, "error parsing regexp at offset 1: invalid repeat count: `{3,2}`")

	_, err = Parse("(abc", 0)
	require.EqualError(t, err, "error parsing regexp at offset 0: missing closing ) in `(abc`")
}

func TestMinLen(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{"", 0},
		{"abc", 3},
		{"a*", 0},
		{"a+b", 2},
		{"(ab|c)d", 2},
		{"(ab){2,5}", 4},
		{"a?.", 1},
	}
	for _, tt := range tests {
		re, err := Parse(tt.pattern, 0)
		require.NoError(t, err)
		require.Equal(t, tt.want, re.Root.MinLen(), tt.pattern)
	}
}

func TestDump(t *testing.T) {
	re, err := Parse("a(b|.){1,}", 0)
	require.NoError(t, err)
	want := `Concat
  Literal 'a'
  Repeat {1,inf}
    Group #1
      Alternate
        Literal 'b'
        AnyChar
`
	require.Equal(t, want, re.Root.Dump())
}
