package literal_test

import (
	"fmt"

	"github.com/coregx/regexpr/literal"
	"github.com/coregx/regexpr/syntax"
)

// Example demonstrates basic usage of literal sequences
func Example() {
	seq := literal.NewSeq(
		literal.NewLiteral([]byte("foo"), true),
		literal.NewLiteral([]byte("bar"), true),
		literal.NewLiteral([]byte("baz"), true),
	)

	fmt.Printf("Sequence has %d literals\n", seq.Len())
	fmt.Printf("First literal: %s\n", seq.Get(0).Bytes)

	// Output:
	// Sequence has 3 literals
	// First literal: foo
}

// ExampleSeq_Minimize demonstrates removing redundant literals
func ExampleSeq_Minimize() {
	// For prefix matching, "foo" covers "foobar"
	seq := literal.NewSeq(
		literal.NewLiteral([]byte("foo"), true),
		literal.NewLiteral([]byte("foobar"), true),
	)

	fmt.Printf("Before minimize: %d literals\n", seq.Len())
	seq.Minimize()
	fmt.Printf("After minimize: %d literals\n", seq.Len())
	fmt.Printf("Remaining: %s\n", seq.Get(0).Bytes)

	// Output:
	// Before minimize: 2 literals
	// After minimize: 1 literals
	// Remaining: foo
}

func ExampleExtractor_ExtractPrefixes() {
	re, _ := syntax.Parse("(hello|help)(.*)", 0)
	seq := literal.New(literal.DefaultConfig()).ExtractPrefixes(re.Root)

	fmt.Println(seq)
	fmt.Printf("LCP: %s\n", seq.LongestCommonPrefix())

	// Output:
	// ["help"* "hello"*]
	// LCP: hel
}
