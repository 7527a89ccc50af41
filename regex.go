// Package regexpr provides a small backtracking regular expression engine.
//
// Patterns are built from literal characters, backslash escapes, '.', '|',
// parenthesized groups and the quantifiers '*', '+', '?' and {m,n}. There are
// no character classes or anchors. Quantifiers are greedy, and the first
// alternative that lets the rest of the pattern match wins.
//
// Matching is performed by a continuation-passing backtracker, so a group
// or repetition gives back input whenever the remainder of the pattern needs
// it: `ab(c.*de)fg` matches "abccccdefg", and `ab(c.*){2,3}` matches "abcc".
// The worst case is exponential in the length of the input.
//
// Basic usage:
//
//	re, err := regexpr.Compile(`(abc|def)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	re.Test("xxdefxx") // true
//
//	it := re.Scan("abcdefabc")
//	for span, ok := it.Next(); ok; span, ok = it.Next() {
//	    fmt.Println(span.Offset, span.Length) // (0,3) (3,3) (6,3)
//	}
//
// Offsets are byte offsets into the searched string. The engine steps over
// the input one UTF-8 encoded character at a time.
package regexpr

import (
	"strings"

	"github.com/coregx/regexpr/meta"
)

// Regex represents a compiled regular expression.
//
// A Regex is safe to use concurrently from multiple goroutines, except for
// methods that modify internal state (like ResetStats).
//
// Example:
//
//	re := regexpr.MustCompile(`hello`)
//	if re.Test("hello world") {
//	    println("matched!")
//	}
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Compile compiles a regular expression pattern.
//
// Returns a *syntax.Error (wrapped in *meta.CompileError) if the pattern is
// invalid; no partially compiled pattern is ever returned.
//
// Example:
//
//	re, err := regexpr.Compile(`a{2,3}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, meta.DefaultConfig())
}

// MustCompile compiles a regular expression pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var greeting = regexpr.MustCompile(`(hello|hi) .*`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("regexpr: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := regexpr.DefaultConfig()
//	config.CaseInsensitive = true
//	re, err := regexpr.CompileWithConfig("hello", config)
func CompileWithConfig(pattern string, config meta.Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}

	return &Regex{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// DefaultConfig returns the default configuration for compilation.
//
// Users can customize this and pass to CompileWithConfig.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// QuoteMeta returns a string that escapes all regular expression metacharacters
// inside the argument text; the returned string is a regular expression matching
// the literal text.
//
// Example:
//
//	escaped := regexpr.QuoteMeta("1+1=2?")
//	// escaped = `1\+1=2\?`
func QuoteMeta(s string) string {
	const special = `\.+*?()|{}`

	n := 0
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(special, s[i]) >= 0 {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+n)
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(special, s[i]) >= 0 {
			buf = append(buf, '\\')
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}

// Test reports whether the pattern matches anywhere in text. Start offsets
// are tried from left to right and the search stops at the first success.
func (r *Regex) Test(text string) bool {
	return r.engine.IsMatch(text)
}

// MatchString is Test under the name used by the standard library.
func (r *Regex) MatchString(s string) bool {
	return r.engine.IsMatch(s)
}

// Match reports whether the byte slice b contains any match of the pattern.
func (r *Regex) Match(b []byte) bool {
	return r.engine.IsMatch(string(b))
}

// MatchFull reports whether the whole of text, from its first to its last
// byte, matches the pattern.
//
// Example:
//
//	re := regexpr.MustCompile(`a|ab`)
//	re.MatchFull("ab")  // true
//	re.MatchFull("abc") // false
func (r *Regex) MatchFull(text string) bool {
	return r.engine.MatchFull(text)
}

// FindString returns the text of the leftmost match in s.
// Returns "" if there is no match, which is indistinguishable from an
// empty match; use FindStringIndex to tell them apart.
//
// Example:
//
//	re := regexpr.MustCompile(`c.*de`)
//	println(re.FindString("abccccdefg")) // "ccccde"
func (r *Regex) FindString(s string) string {
	match := r.engine.Find(s)
	if match == nil {
		return ""
	}
	return match.String()
}

// FindStringIndex returns a two-element slice of integers defining the
// location of the leftmost match in s. The match is at s[loc[0]:loc[1]].
// A return value of nil indicates no match.
func (r *Regex) FindStringIndex(s string) []int {
	match := r.engine.Find(s)
	if match == nil {
		return nil
	}
	return []int{match.Start(), match.End()}
}

// FindIndex is FindStringIndex for a byte slice.
func (r *Regex) FindIndex(b []byte) []int {
	return r.FindStringIndex(string(b))
}

// FindStringSubmatch returns the text of the leftmost match and of each of
// its groups. Groups that did not take part in the match are "".
// A return value of nil indicates no match.
//
// Example:
//
//	re := regexpr.MustCompile(`(a|b)+(c)`)
//	re.FindStringSubmatch("xabac") // ["abac" "a" "c"]
func (r *Regex) FindStringSubmatch(s string) []string {
	match := r.engine.FindSubmatch(s)
	if match == nil {
		return nil
	}
	result := make([]string, match.NumGroups())
	for i := range result {
		result[i], _ = match.Group(i)
	}
	return result
}

// FindStringSubmatchIndex returns index pairs for the leftmost match and each
// of its groups: 2*(NumSubexp()+1) integers, -1 for groups that did not take
// part. A return value of nil indicates no match.
func (r *Regex) FindStringSubmatchIndex(s string) []int {
	match := r.engine.FindSubmatch(s)
	if match == nil {
		return nil
	}
	return match.Slots()
}

// FindAllStringIndex returns the locations of successive non-overlapping
// matches, in the order Scan yields them.
// If n >= 0, returns at most n matches. If n < 0, returns all matches.
// A return value of nil indicates no match.
func (r *Regex) FindAllStringIndex(s string, n int) [][]int {
	spans := r.engine.FindAll(s, n)
	if len(spans) == 0 {
		return nil
	}
	result := make([][]int, len(spans))
	for i, sp := range spans {
		result[i] = []int{sp[0], sp[1]}
	}
	return result
}

// FindAllString returns the text of successive non-overlapping matches.
// If n >= 0, returns at most n matches. If n < 0, returns all matches.
// A return value of nil indicates no match.
//
// Example:
//
//	re := regexpr.MustCompile(`(abc|def)`)
//	re.FindAllString("abcdefabc", -1) // ["abc" "def" "abc"]
func (r *Regex) FindAllString(s string, n int) []string {
	spans := r.engine.FindAll(s, n)
	if len(spans) == 0 {
		return nil
	}
	result := make([]string, len(spans))
	for i, sp := range spans {
		result[i] = s[sp[0]:sp[1]]
	}
	return result
}

// FindAllStringSubmatchIndex is the 'All' version of FindStringSubmatchIndex.
// If n >= 0, returns at most n matches. If n < 0, returns all matches.
func (r *Regex) FindAllStringSubmatchIndex(s string, n int) [][]int {
	if n == 0 {
		return nil
	}
	var result [][]int
	it := r.Scan(s)
	for _, ok := it.Next(); ok; _, ok = it.Next() {
		result = append(result, it.Submatches())
		if n > 0 && len(result) == n {
			break
		}
	}
	return result
}

// CountString returns the number of non-overlapping matches in s.
func (r *Regex) CountString(s string) int {
	count := 0
	it := r.engine.Iter(s)
	for {
		if _, _, ok := it.Next(); !ok {
			return count
		}
		count++
	}
}

// ReplaceAllLiteralString returns a copy of src, replacing matches of the pattern
// with the replacement string repl.
// The replacement is substituted directly.
//
// Example:
//
//	re := regexpr.MustCompile(`a+`)
//	result := re.ReplaceAllLiteralString("baaac", "X")
//	// result = "bXc"
func (r *Regex) ReplaceAllLiteralString(src, repl string) string {
	return r.ReplaceAllStringFunc(src, func(string) string { return repl })
}

// ReplaceAllStringFunc returns a copy of src in which all matches of the pattern
// have been replaced by the return value of function repl applied to the matched
// string.
func (r *Regex) ReplaceAllStringFunc(src string, repl func(string) string) string {
	spans := r.engine.FindAll(src, -1)
	if len(spans) == 0 {
		return src
	}

	var b strings.Builder
	b.Grow(len(src))
	lastEnd := 0
	for _, sp := range spans {
		b.WriteString(src[lastEnd:sp[0]])
		b.WriteString(repl(src[sp[0]:sp[1]]))
		lastEnd = sp[1]
	}
	b.WriteString(src[lastEnd:])
	return b.String()
}

// Split slices s into substrings separated by the expression and returns a slice
// of the substrings between those expression matches.
//
// The count determines the number of substrings to return:
//
//	n > 0: at most n substrings; the last substring will be the unsplit remainder.
//	n == 0: the result is nil (zero substrings)
//	n < 0: all substrings
//
// Example:
//
//	re := regexpr.MustCompile(`,`)
//	parts := re.Split("a,b,c", -1)
//	// parts = ["a", "b", "c"]
//
//	parts = re.Split("a,b,c", 2)
//	// parts = ["a", "b,c"]
func (r *Regex) Split(s string, n int) []string {
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []string{s}
	}

	spans := r.engine.FindAll(s, -1)
	if len(spans) == 0 {
		return []string{s}
	}

	result := make([]string, 0, len(spans)+1)
	lastEnd := 0
	for _, sp := range spans {
		// An empty match at the very start or end splits nothing off.
		if sp[1] == 0 || sp[0] == len(s) {
			continue
		}
		result = append(result, s[lastEnd:sp[0]])
		lastEnd = sp[1]

		if n > 0 && len(result) == n-1 {
			break
		}
	}
	return append(result, s[lastEnd:])
}

// String returns the source text used to compile the regular expression.
func (r *Regex) String() string {
	return r.pattern
}

// NumSubexp returns the number of parenthesized groups in this regular expression.
func (r *Regex) NumSubexp() int {
	return r.engine.NumCaptures()
}

// Dump describes the compiled pattern: its source, the prefilter in use and
// the parsed tree, one node per line.
func (r *Regex) Dump() string {
	return r.engine.Dump()
}

// Stats returns search statistics accumulated by this Regex.
func (r *Regex) Stats() meta.Stats {
	return r.engine.Stats()
}

// ResetStats resets search statistics to zero.
func (r *Regex) ResetStats() {
	r.engine.ResetStats()
}
