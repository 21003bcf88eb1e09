package parser

import (
	"fmt"
	"strings"
)

// DateParseError represents a date parsing error with helpful examples.
type DateParseError struct {
	Input    string
	Field    string
	Message  string
	Examples []string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

// DateExamples provides example date formats for error messages.
var DateExamples = []string{
	"2026-03-02",
	"today",
	"next monday",
	"in 2 weeks",
}

// NewDateParseError creates a new date parse error with the standard
// examples attached.
func NewDateParseError(field, input, message string) *DateParseError {
	return &DateParseError{
		Input:    input,
		Field:    field,
		Message:  message,
		Examples: DateExamples,
	}
}

// FormatWithExamples returns the error message with example suggestions.
func (e *DateParseError) FormatWithExamples() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Examples) > 0 {
		sb.WriteString("\n\nValid examples:\n")
		for _, ex := range e.Examples {
			sb.WriteString("  - ")
			sb.WriteString(ex)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
