package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDumpCmd() *SubCommand {
	sc := &SubCommand{EnvPrefix: envPrefix}
	sc.Cmd = &cobra.Command{
		Use:   "dump PATTERN",
		Short: "Print the parsed form of a pattern",
		Long:  "Dump prints the prefilter chosen for PATTERN and its parse tree.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := sc.compile(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), re.Dump())
			return err
		},
	}
	return sc
}
