// Command regexpr tests and searches text with backtracking regular
// expressions.
package main

import "github.com/coregx/regexpr/cmd/regexpr/cmd"

func main() {
	cmd.Execute()
}
