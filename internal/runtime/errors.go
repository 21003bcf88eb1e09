package runtime

import (
	"github.com/manav03panchal/workplan/internal/errors"
	"github.com/manav03panchal/workplan/internal/parser"
)

// Suggestions provides helpful suggestions for common errors.
var Suggestions = map[error]string{
	errors.ErrProjectNotFound: "Use 'workplan project list' to see available projects.",
	errors.ErrTaskNotFound:    "Use 'workplan task list <project>' to see available tasks.",
	errors.ErrMissingDate:     "Provide a date like '2026-03-02' or 'next monday'.",
	errors.ErrInvalidDate:     "Provide a date like '2026-03-02' or 'next monday'.",
	errors.ErrInvalidRange:    "Check the dates - the start must not be after the end.",
	errors.ErrNegativeDays:    "Day counts must be zero or positive.",
	errors.ErrAdjustBlocked:   "Run 'workplan adjust --dry-run' first to see which tasks fail.",
	errors.ErrAINotConfigured: "Set WORKPLAN_AI_URL and WORKPLAN_AI_KEY to enable plan generation.",
}

// GetSuggestion returns a suggestion for an error, if available.
func GetSuggestion(err error) string {
	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}
	if ue, ok := errors.AsUserError(err); ok {
		return ue.Suggestion
	}
	return ""
}

// FormatError renders an error for terminal display, attaching
// suggestions and examples where available.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var dpe *parser.DateParseError
	if errors.As(err, &dpe) {
		return dpe.FormatWithExamples()
	}

	msg := err.Error()
	if suggestion := GetSuggestion(err); suggestion != "" {
		msg += "\n" + suggestion
	}
	return msg
}
