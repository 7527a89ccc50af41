package regexpr_test

import (
	"fmt"

	"github.com/coregx/regexpr"
)

// ExampleCompile demonstrates basic pattern compilation and matching.
func ExampleCompile() {
	re, err := regexpr.Compile(`ab(c.*de)fg`)
	if err != nil {
		panic(err)
	}

	fmt.Println(re.Test("abccccdefg"))
	fmt.Println(re.Test("abcfg"))
	// Output:
	// true
	// false
}

// ExampleCompile_error shows where a malformed pattern went wrong.
func ExampleCompile_error() {
	_, err := regexpr.Compile(`a{2,1}`)
	fmt.Println(err)
	// Output: error parsing regexp at offset 1: invalid repeat count: `{2,1}`
}

// ExampleRegex_Scan demonstrates iterating over non-overlapping matches.
func ExampleRegex_Scan() {
	re := regexpr.MustCompile(`(abc|def)`)
	for span := range re.Scan("abcdefabc").All() {
		fmt.Println(span)
	}
	// Output:
	// (0,3)
	// (3,3)
	// (6,3)
}

// ExampleRegex_FindStringSubmatch shows that a repeated group reports its
// last iteration.
func ExampleRegex_FindStringSubmatch() {
	re := regexpr.MustCompile(`(a|b)+(c)`)
	fmt.Printf("%q\n", re.FindStringSubmatch("xabac"))
	// Output: ["abac" "a" "c"]
}

// ExampleRegex_Split demonstrates splitting around matches.
func ExampleRegex_Split() {
	re := regexpr.MustCompile(` +`)
	fmt.Printf("%q\n", re.Split("a  b   c", -1))
	fmt.Printf("%q\n", re.Split("a  b   c", 2))
	// Output:
	// ["a" "b" "c"]
	// ["a" "b   c"]
}

// ExampleMatchString demonstrates the one-shot helper.
func ExampleMatchString() {
	ok, err := regexpr.MatchString(`ab(c.*){2,3}`, "abcc")
	fmt.Println(ok, err)
	// Output: true <nil>
}

// ExampleQuoteMeta demonstrates escaping metacharacters.
func ExampleQuoteMeta() {
	fmt.Println(regexpr.QuoteMeta("1+1=2?"))
	// Output: 1\+1=2\?
}

// ExampleCompileWithConfig demonstrates case-insensitive matching.
func ExampleCompileWithConfig() {
	config := regexpr.DefaultConfig()
	config.CaseInsensitive = true
	re, err := regexpr.CompileWithConfig(`hello`, config)
	if err != nil {
		panic(err)
	}
	fmt.Println(re.FindString("say HeLLo"))
	// Output: HeLLo
}
