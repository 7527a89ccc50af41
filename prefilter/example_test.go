package prefilter_test

import (
	"fmt"

	"github.com/coregx/regexpr/literal"
	"github.com/coregx/regexpr/prefilter"
	"github.com/coregx/regexpr/syntax"
)

func ExampleBuilder() {
	re, _ := syntax.Parse("(hello|world)", 0)
	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(re.Root)

	pf := prefilter.NewBuilder(prefixes).Build()
	fmt.Println(pf)
	fmt.Println(pf.Find([]byte("foo hello bar world baz"), 0))

	// Output:
	// aho-corasick(2 literals)
	// 4
}

func ExampleBuilder_noPrefilter() {
	re, _ := syntax.Parse(".*foo", 0)
	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(re.Root)

	pf := prefilter.NewBuilder(prefixes).Build()
	fmt.Println(pf == nil)

	// Output:
	// true
}
