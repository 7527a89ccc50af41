package syntax

import (
	"strconv"
)

// ErrorCode describes the rule a malformed pattern violates.
// ErrorCode implements error so that errors.Is can match an *Error by code.
type ErrorCode string

const (
	ErrMissingParen          ErrorCode = "missing closing )"
	ErrUnexpectedParen       ErrorCode = "unexpected )"
	ErrInvalidRepeatSize     ErrorCode = "invalid repeat count"
	ErrMissingRepeatArgument ErrorCode = "missing argument to repetition operator"
	ErrMissingBrace          ErrorCode = "missing closing }"
	ErrRepeatedQuantifier    ErrorCode = "invalid nested repetition operator"
	ErrEmptyAlternative      ErrorCode = "empty alternative"
	ErrTrailingBackslash     ErrorCode = "trailing backslash at end of expression"
	ErrNestingDepth          ErrorCode = "expression nests too deeply"
)

func (e ErrorCode) String() string {
	return string(e)
}

// Error implements the error interface.
func (e ErrorCode) Error() string {
	return string(e)
}

// Error is returned by Parse for a malformed pattern. No partial tree is
// ever returned alongside it.
type Error struct {
	Code    ErrorCode
	Offset  int    // byte offset of the offending construct in Pattern
	Expr    string // the offending text, when narrower than the whole pattern
	Pattern string
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := "error parsing regexp at offset " + strconv.Itoa(e.Offset) + ": " + e.Code.String()
	if e.Expr != "" {
		return msg + ": " + quote(e.Expr)
	}
	return msg + " in " + quote(e.Pattern)
}

// Unwrap returns the error code, so errors.Is(err, ErrMissingParen) holds
// for a parse error with that code.
func (e *Error) Unwrap() error {
	return e.Code
}

func quote(s string) string {
	if strconv.CanBackquote(s) {
		return "`" + s + "`"
	}
	return strconv.Quote(s)
}
