package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/coregx/regexpr"
)

func newFindCmd() *SubCommand {
	sc := &SubCommand{EnvPrefix: envPrefix}
	sc.Cmd = &cobra.Command{
		Use:   "find PATTERN [TEXT...]",
		Short: "Print the non-overlapping matches in each text",
		Long: `Find prints every non-overlapping match in every TEXT, or in every line
of standard input when no TEXT is given, as [start:end] byte offsets followed
by the matched text.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sc.runFind(cmd, args[0], args[1:])
		},
	}
	sc.Cmd.Flags().BoolP("groups", "g", false,
		"Also print the text of each group.")
	sc.Cmd.Flags().BoolP("count", "c", false,
		"Print only the number of matches in each text.")
	sc.Cmd.Flags().IntP("limit", "n", -1,
		"Stop after this many matches per text; negative means no limit.")
	return sc
}

func (sc *SubCommand) runFind(cmd *cobra.Command, pattern string, texts []string) error {
	re, err := sc.compile(pattern)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	groups := sc.Conf.GetBool("groups")
	count := sc.Conf.GetBool("count")
	limit := sc.Conf.GetInt("limit")

	return eachText(cmd.InOrStdin(), texts, func(text string) error {
		if count {
			_, err := fmt.Fprintf(out, "%d\t%s\n", re.CountString(text), text)
			return err
		}
		return printMatches(out, re, text, limit, groups)
	})
}

func printMatches(w io.Writer, re *regexpr.Regex, text string, limit int, groups bool) error {
	it := re.Scan(text)
	n := 0
	for span, ok := it.Next(); ok && (limit < 0 || n < limit); span, ok = it.Next() {
		if n == 0 {
			if _, err := fmt.Fprintf(w, "Matches of %s\n", text); err != nil {
				return err
			}
		}
		n++
		if _, err := fmt.Fprintf(w, "[%d:%d] %s\n", span.Offset, span.End(), text[span.Offset:span.End()]); err != nil {
			return err
		}
		if !groups {
			continue
		}
		subs := it.Submatches()
		for g := 1; g < len(subs)/2; g++ {
			start, end := subs[2*g], subs[2*g+1]
			if start < 0 {
				_, err := fmt.Fprintf(w, "  %d) <unset>\n", g)
				if err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "  %d) %q\n", g, text[start:end]); err != nil {
				return err
			}
		}
	}
	return nil
}
