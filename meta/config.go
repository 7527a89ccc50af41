// Package meta implements the compiled-pattern engine that sits between the
// public API and the backtracking matcher.
//
// The engine coordinates two pieces:
//   - Prefilter: fast literal-based candidate finding (optional)
//   - Matcher: the continuation-passing backtracker that confirms candidates
//
// A prefilter is only built when every match of the pattern starts with one
// of a small set of literals. Otherwise the matcher is tried at every
// character offset in turn.
package meta

// Config controls engine behavior.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnablePrefilter = false // Try the matcher at every offset
//	engine, err := meta.CompileWithConfig("hello.*world", config)
type Config struct {
	// EnablePrefilter enables literal-based prefiltering.
	// When false, no prefilter is used even if literals are available.
	// Default: true
	EnablePrefilter bool

	// MaxLiterals limits the number of literals to extract for prefiltering.
	// Default: 64
	MaxLiterals int

	// MinLiteralLen is the minimum length for prefilter literals.
	// Shorter literals may have too many false positives.
	// Default: 1
	MinLiteralLen int

	// MaxNesting limits how deeply groups may nest in a pattern. The matcher
	// recurses at least once per nesting level, so this bounds the stack
	// depth that comes from the pattern's shape.
	// Default: 1000
	MaxNesting int

	// CaseInsensitive makes literals match regardless of letter case.
	// Prefiltering is disabled for case-insensitive patterns.
	// Default: false
	CaseInsensitive bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnablePrefilter: true,
		MaxLiterals:     64,
		MinLiteralLen:   1, // Allow single-byte prefilters (memchr)
		MaxNesting:      1000,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges:
//   - MinLiteralLen: 1 to 64
//   - MaxLiterals: 1 to 1,000
//   - MaxNesting: 10 to 100,000
//
// Example:
//
//	config := meta.Config{MaxNesting: 0} // Invalid!
//	if err := config.Validate(); err != nil {
//	    log.Fatal(err)
//	}
func (c Config) Validate() error {
	if c.EnablePrefilter {
		if c.MinLiteralLen < 1 || c.MinLiteralLen > 64 {
			return &ConfigError{
				Field:   "MinLiteralLen",
				Message: "must be between 1 and 64",
			}
		}
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
	}

	if c.MaxNesting < 10 || c.MaxNesting > 100_000 {
		return &ConfigError{
			Field:   "MaxNesting",
			Message: "must be between 10 and 100,000",
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "regexp: invalid config: " + e.Field + ": " + e.Message
}
