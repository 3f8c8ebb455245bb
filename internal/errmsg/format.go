// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Startup
	OpConfigLoad   Op = "load configuration"
	OpFormatParse  Op = "parse format"
	OpTooltipParse Op = "parse tooltip format"
	OpIconsParse   Op = "parse icons"

	// Player connection
	OpSourceOpen  Op = "connect to player"
	OpSourceFetch Op = "fetch player status"

	// Output
	OpRender Op = "render status"
	OpWrite  Op = "write status"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Wrap returns err with the same message prefix as Format, keeping err
// reachable through errors.Is and errors.As.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("Failed to %s: %w", op, err) //nolint:staticcheck // user-facing message
}

// WrapWith is Wrap with additional context, formatted like FormatWith.
func WrapWith(op Op, context string, err error) error {
	if err == nil {
		return nil
	}
	if context == "" {
		return Wrap(op, err)
	}
	return fmt.Errorf("Failed to %s '%s': %w", op, context, err) //nolint:staticcheck // user-facing message
}
