package handle

import "github.com/coregx/regexpr/meta"

// Default is the registry behind the package-level functions.
var Default = NewRegistry()

// Compile calls Default.Compile.
func Compile(pattern string) (PatternID, error) { return Default.Compile(pattern) }

// CompileWithConfig calls Default.CompileWithConfig.
func CompileWithConfig(pattern string, config meta.Config) (PatternID, error) {
	return Default.CompileWithConfig(pattern, config)
}

// Test calls Default.Test.
func Test(id PatternID, text string) bool { return Default.Test(id, text) }

// OpenMatcher calls Default.OpenMatcher.
func OpenMatcher(id PatternID, text string) MatcherID { return Default.OpenMatcher(id, text) }

// Next calls Default.Next.
func Next(id MatcherID) (Span, bool) { return Default.Next(id) }

// ReleasePattern calls Default.ReleasePattern.
func ReleasePattern(id PatternID) { Default.ReleasePattern(id) }

// ReleaseMatcher calls Default.ReleaseMatcher.
func ReleaseMatcher(id MatcherID) { Default.ReleaseMatcher(id) }
