package literal

import (
	"strings"
	"testing"

	"github.com/coregx/regexpr/syntax"
)

func extract(t *testing.T, config ExtractorConfig, pattern string) *Seq {
	t.Helper()
	re, err := syntax.Parse(pattern, 0)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return New(config).ExtractPrefixes(re.Root)
}

func TestExtractPrefixes(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"hello", `["hello"]`},
		{"(foo|bar)", `["foo" "bar"]`},
		{"(abc|def)", `["abc" "def"]`},
		{"hello.*world", `["hello"*]`},
		{"ab(c.*de)fg", `["abc"*]`},
		{"ab(c.*){2,3}", `["abc"*]`},
		{"a+b", `["a"*]`},
		{"a{1}b", `["ab"]`},
		{"(a|b)(c|d)", `["ac" "ad" "bc" "bd"]`},
		{"()abc", `["abc"]`},
		{"ab|a.c", `["a"*]`},
		{"abc|ab", `["ab"]`},
		{`a\.b`, `["a.b"]`},
		{"日本", `["日本"]`},
		{".*foo", `[]`},
		{"a?b", `[]`},
		{"a*", `[]`},
		{"", `[]`},
		{"foo|.", `[]`},
		{"(x?)*", `[]`},
		{"\xff", `[]`},
		{"\uFFFD", `[]`},
		{"ab\xffcd", `["ab"*]`},
		{"x\uFFFDyz", `["x"*]`},
		{"(ab|\uFFFD)", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := extract(t, DefaultConfig(), tt.pattern)
			if got.String() != tt.want {
				t.Errorf("ExtractPrefixes(%q) = %s, want %s", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestExtractPrefixesCompleteness(t *testing.T) {
	if !extract(t, DefaultConfig(), "(foo|bar|baz)").AllComplete() {
		t.Error("pure alternation of literals should be complete")
	}
	if extract(t, DefaultConfig(), "foo|bar+").AllComplete() {
		t.Error("a repeated suffix must not be complete")
	}
}

func TestExtractPrefixesMaxLiterals(t *testing.T) {
	config := ExtractorConfig{MaxLiterals: 3, MaxLiteralLen: 64}

	// The cross product would hold 4 literals; extraction stops before it.
	got := extract(t, config, "(a|b)(c|d)")
	if got.String() != `["a"* "b"*]` {
		t.Errorf("got %s", got)
	}

	// A union past the limit constrains nothing.
	got = extract(t, config, "a|b|c|d")
	if !got.IsEmpty() {
		t.Errorf("got %s, want empty", got)
	}
}

func TestExtractPrefixesMaxLiteralLen(t *testing.T) {
	config := ExtractorConfig{MaxLiterals: 64, MaxLiteralLen: 4}

	got := extract(t, config, strings.Repeat("x", 10))
	if got.String() != `["xxxx"*]` {
		t.Errorf("got %s", got)
	}

	// Cutting never splits a character.
	got = extract(t, config, "ab日本")
	if got.String() != `["ab"*]` {
		t.Errorf("got %s", got)
	}
}
