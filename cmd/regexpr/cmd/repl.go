package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/coregx/regexpr"
)

const (
	patternPrompt = "Enter a regular expression: "
	textPrompt    = "> "

	// newPatternCommand, typed at the text prompt, asks for a new pattern.
	newPatternCommand = ":pattern"
)

func newReplCmd() *SubCommand {
	sc := &SubCommand{EnvPrefix: envPrefix}
	sc.Cmd = &cobra.Command{
		Use:   "repl",
		Short: "Interactively match lines against a pattern",
		Long: `Repl asks for a pattern and then matches every line typed against it,
listing the matches and the groups of the last one. Type ` + newPatternCommand + ` to
enter a different pattern. End input to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return sc.runRepl(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	return sc
}

func (sc *SubCommand) runRepl(in io.Reader, out io.Writer) error {
	lines := bufio.NewScanner(in)
	lines.Buffer(make([]byte, 0, 4096), maxLine)
	w := bufio.NewWriter(out)
	defer w.Flush()

	var re *regexpr.Regex
	prompt := func() {
		if re == nil {
			fmt.Fprint(w, patternPrompt)
		} else {
			fmt.Fprint(w, textPrompt)
		}
		w.Flush()
	}

	for prompt(); lines.Scan(); prompt() {
		line := strings.TrimRight(lines.Text(), "\r")
		switch {
		case re == nil:
			pattern := strings.TrimSpace(line)
			if pattern == "" {
				continue
			}
			compiled, err := sc.compile(pattern)
			if err != nil {
				glog.V(1).Infof("regexpr: repl: %v", err)
				fmt.Fprintf(w, "Invalid regex: %v\n", err)
				continue
			}
			re = compiled
		case line == newPatternCommand:
			re = nil
		default:
			reportLine(w, re, line)
		}
	}
	fmt.Fprintln(w)
	return lines.Err()
}

// reportLine lists the matches of re in line and the groups of the last
// match.
func reportLine(w io.Writer, re *regexpr.Regex, line string) {
	it := re.Scan(line)
	span, ok := it.Next()
	if !ok {
		fmt.Fprintln(w, "No matches")
		return
	}

	fmt.Fprintln(w, "=== Matches ===")
	var subs []int
	for i := 1; ok; i++ {
		fmt.Fprintf(w, "%d) %s\n", i, line[span.Offset:span.End()])
		subs = it.Submatches()
		span, ok = it.Next()
	}

	if len(subs) > 2 {
		fmt.Fprintln(w, "===== Groups ======")
		for g := 1; g < len(subs)/2; g++ {
			text := ""
			if subs[2*g] >= 0 {
				text = line[subs[2*g]:subs[2*g+1]]
			}
			fmt.Fprintf(w, "%d) %q\n", g, text)
		}
	}
	fmt.Fprintln(w, "===================")
}
