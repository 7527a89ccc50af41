package handle_test

import (
	"fmt"

	"github.com/coregx/regexpr/handle"
)

// Example walks the full handle lifecycle: compile a pattern, test some
// inputs, scan the ones that match and release everything.
func Example() {
	id, err := handle.Compile("(abc|def)")
	if err != nil {
		panic(err)
	}
	defer handle.ReleasePattern(id)

	fmt.Println("Regular expression: (abc|def)")
	for _, text := range []string{"abc", "abcc", "abcabc", "abcdefabc", "abcdds"} {
		if !handle.Test(id, text) {
			continue
		}
		fmt.Println("Matches of", text)
		m := handle.OpenMatcher(id, text)
		for span, ok := handle.Next(m); ok; span, ok = handle.Next(m) {
			fmt.Printf("[%d:%d] %s\n", span.Offset, span.End(), text[span.Offset:span.End()])
		}
		handle.ReleaseMatcher(m)
	}
	// Output:
	// Regular expression: (abc|def)
	// Matches of abc
	// [0:3] abc
	// Matches of abcc
	// [0:3] abc
	// Matches of abcabc
	// [0:3] abc
	// [3:6] abc
	// Matches of abcdefabc
	// [0:3] abc
	// [3:6] def
	// [6:9] abc
	// Matches of abcdds
	// [0:3] abc
}
