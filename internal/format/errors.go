package format

import (
	"errors"
	"fmt"
)

// ErrUnmatchedDelimiter is returned for a stray '}', a '{' inside a
// placeholder, or a placeholder that is never closed.
var ErrUnmatchedDelimiter = errors.New("unmatched '{' or '}'")

// ErrUnsupportedTime is returned at render time when a duration cannot be
// shown with a time pattern.
var ErrUnsupportedTime = errors.New("unsupported time specifier")

// UnknownPlaceholderError reports a placeholder name that does not exist.
type UnknownPlaceholderError struct {
	Name string
}

func (e *UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("unknown placeholder '%s'", e.Name)
}

// RedundantFormatError reports an argument given to a placeholder that takes none.
type RedundantFormatError struct {
	Name string
}

func (e *RedundantFormatError) Error() string {
	return fmt.Sprintf("'%s' does not have additional formatting", e.Name)
}

// PatternError reports a malformed time pattern argument.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid duration format %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// PadParseError reports a malformed pad count argument.
type PadParseError struct {
	Value string
	Err   error
}

func (e *PadParseError) Error() string {
	return fmt.Sprintf("padding parse error %q: %v", e.Value, e.Err)
}

func (e *PadParseError) Unwrap() error { return e.Err }
