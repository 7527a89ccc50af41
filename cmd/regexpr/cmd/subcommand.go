package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coregx/regexpr"
)

// SubCommand pairs a command with the configuration it reads. Values come
// from flags, then REGEXPR_* environment variables, then the --config file.
type SubCommand struct {
	Cmd  *cobra.Command
	Conf *viper.Viper

	EnvPrefix string
}

// compile builds a Regex for pattern using the engine options in conf.
func (s *SubCommand) compile(pattern string) (*regexpr.Regex, error) {
	config := regexpr.DefaultConfig()
	config.CaseInsensitive = s.Conf.GetBool("ignore_case")
	config.EnablePrefilter = s.Conf.GetBool("prefilter")
	config.MaxNesting = s.Conf.GetInt("max_nesting")

	re, err := regexpr.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, errors.Wrapf(err, "compiling %q", pattern)
	}
	return re, nil
}
