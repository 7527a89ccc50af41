package cmd

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newTestCmd() *SubCommand {
	sc := &SubCommand{EnvPrefix: envPrefix}
	sc.Cmd = &cobra.Command{
		Use:   "test PATTERN [TEXT...]",
		Short: "Report whether each text contains a match",
		Long: `Test prints true or false for every TEXT, or for every line of standard
input when no TEXT is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sc.runTest(cmd, args[0], args[1:])
		},
	}
	sc.Cmd.Flags().BoolP("quiet", "q", false,
		"Print nothing; fail unless some text matches.")
	return sc
}

var errNoMatch = errors.New("no text matched")

func (sc *SubCommand) runTest(cmd *cobra.Command, pattern string, texts []string) error {
	re, err := sc.compile(pattern)
	if err != nil {
		return err
	}
	quiet := sc.Conf.GetBool("quiet")
	out := cmd.OutOrStdout()

	matched := 0
	err = eachText(cmd.InOrStdin(), texts, func(text string) error {
		ok := re.Test(text)
		if ok {
			matched++
		}
		if quiet {
			return nil
		}
		_, err := fmt.Fprintln(out, ok)
		return err
	})
	if err != nil {
		return err
	}

	stats := re.Stats()
	glog.V(1).Infof("regexpr: searches=%d candidates=%d attempts=%d",
		stats.Searches, stats.PrefilterCandidates, stats.MatcherAttempts)
	if quiet && matched == 0 {
		return errNoMatch
	}
	return nil
}
