package cmd

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "REGEXPR"

// NewRootCmd builds the regexpr command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "regexpr",
		Short: "Backtracking regular expressions",
		Long: `
regexpr compiles patterns made of literals, '.', '|', groups and the
quantifiers *, +, ? and {m,n}, and matches them with a backtracking engine
that gives input back to the rest of the pattern when it needs it.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "",
		"Configuration file. Takes precedence over default values, but is "+
			"overridden to values set with environment variables and flags.")
	root.PersistentFlags().BoolP("ignore_case", "i", false,
		"Match letters case-insensitively.")
	root.PersistentFlags().Bool("prefilter", true,
		"Skip ahead to candidate offsets using the pattern's prefix literals.")
	root.PersistentFlags().Int("max_nesting", 1000,
		"Maximum group nesting depth accepted in a pattern.")
	rootConf := viper.New()
	if err := rootConf.BindPFlags(root.PersistentFlags()); err != nil {
		glog.Fatalf("binding root flags: %v", err)
	}

	subcommands := []*SubCommand{
		newTestCmd(), newFindCmd(), newReplCmd(), newDumpCmd(), newVersionCmd(),
	}
	for _, sc := range subcommands {
		root.AddCommand(sc.Cmd)
		sc.Conf = viper.New()
		if err := sc.Conf.BindPFlags(sc.Cmd.Flags()); err != nil {
			glog.Fatalf("binding %s flags: %v", sc.Cmd.Name(), err)
		}
		if err := sc.Conf.BindPFlags(root.PersistentFlags()); err != nil {
			glog.Fatalf("binding %s flags: %v", sc.Cmd.Name(), err)
		}
		sc.Conf.AutomaticEnv()
		sc.Conf.SetEnvPrefix(sc.EnvPrefix)
	}

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg := rootConf.GetString("config")
		if cfg == "" {
			return nil
		}
		for _, sc := range subcommands {
			sc.Conf.SetConfigFile(cfg)
			if err := sc.Conf.ReadInConfig(); err != nil {
				return errors.Wrapf(err, "reading config %s", cfg)
			}
		}
		glog.V(1).Infof("regexpr: using config %s", cfg)
		return nil
	}
	return root
}

// Execute runs the command named by os.Args and exits non-zero on error.
// This is called by main.main().
func Execute() {
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	if err := flag.Set("logtostderr", "true"); err != nil {
		glog.Warningf("regexpr: %v", err)
	}
	// glog complains unless the standard flag set has been parsed.
	_ = goflag.CommandLine.Parse(nil)

	err := NewRootCmd().Execute()
	glog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, "regexpr:", err)
		os.Exit(1)
	}
}
