package meta

import (
	"errors"

	"github.com/golang/glog"

	"github.com/coregx/regexpr/backtrack"
	"github.com/coregx/regexpr/literal"
	"github.com/coregx/regexpr/prefilter"
	"github.com/coregx/regexpr/syntax"
)

// Compile compiles a pattern with the default configuration.
//
// Returns an error if the pattern syntax is invalid or the groups nest too
// deeply.
//
// Example:
//
//	engine, err := meta.Compile("hello.*world")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.CaseInsensitive = true
//	engine, err := meta.CompileWithConfig("hello", config)
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var flags syntax.Flags
	if config.CaseInsensitive {
		flags |= syntax.FoldCase
	}
	re, err := syntax.ParseWithLimit(pattern, flags, config.MaxNesting)
	if err != nil {
		return nil, &CompileError{
			Pattern: pattern,
			Err:     err,
		}
	}

	return CompileRegexp(re, config)
}

// CompileRegexp builds an engine for an already parsed pattern.
// The parsed tree must not be modified afterwards.
func CompileRegexp(re *syntax.Regexp, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	matcher := backtrack.New(re)
	pf := buildPrefilter(re, config)

	if glog.V(2) {
		desc := "none"
		if pf != nil {
			desc = pf.String()
		}
		glog.Infof("regexpr: compiled %q: groups=%d prefilter=%s", re.Pattern, re.NumCaps, desc)
	}

	return &Engine{
		re:        re,
		matcher:   matcher,
		prefilter: pf,
		statePool: newSearchStatePool(matcher.NumSlots()),
		config:    config,
	}, nil
}

// buildPrefilter returns nil unless every match starts with one of a known
// set of literals.
func buildPrefilter(re *syntax.Regexp, config Config) prefilter.Prefilter {
	if !config.EnablePrefilter || re.Flags&syntax.FoldCase != 0 {
		return nil
	}
	// A pattern that matches the empty string matches at every offset.
	if re.Root.MinLen() == 0 {
		return nil
	}

	extractor := literal.New(literal.ExtractorConfig{
		MaxLiterals:   config.MaxLiterals,
		MaxLiteralLen: literal.DefaultConfig().MaxLiteralLen,
	})
	prefixes := extractor.ExtractPrefixes(re.Root)
	return prefilter.NewBuilder(prefixes).WithMinLen(config.MinLiteralLen).Build()
}

// CompileError represents a pattern compilation error.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
// Syntax errors are returned as is; they already name the pattern.
func (e *CompileError) Error() string {
	var syntaxErr *syntax.Error
	if errors.As(e.Err, &syntaxErr) {
		return e.Err.Error()
	}
	return "regexp: " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
