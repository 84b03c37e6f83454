package rules

import "fmt"

// Kind discriminates rule-loading failures.
type Kind int

const (
	// KindParse indicates the rule document could not be decoded.
	KindParse Kind = iota
	// KindValidation indicates the document decoded but failed validation.
	KindValidation
	// KindPatternCompile indicates a declared pattern has invalid syntax.
	KindPatternCompile
)

// String returns a human-readable name for the error kind.
func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindValidation:
		return "validation"
	case KindPatternCompile:
		return "pattern-compile"
	default:
		return "unknown"
	}
}

// Error describes why rule loading failed. Loading failures are fatal to the
// load attempt and never retried automatically; the caller decides whether
// to fall back to a last-known-good document or abort.
type Error struct {
	Err     error
	Reason  string
	Pattern string
	Kind    Kind
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindParse:
		return fmt.Sprintf("rule document parse failed: %v", e.Err)
	case KindValidation:
		return fmt.Sprintf("rule document validation failed: %s", e.Reason)
	case KindPatternCompile:
		return fmt.Sprintf("rule pattern %q does not compile: %v", e.Pattern, e.Err)
	default:
		return "rule document error"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newParseError(err error) *Error {
	return &Error{Kind: KindParse, Err: err}
}

func newValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Reason: fmt.Sprintf(format, args...)}
}

func newPatternError(pattern string, err error) *Error {
	return &Error{Kind: KindPatternCompile, Pattern: pattern, Err: err}
}
