package runtime

import (
	"strings"

	"github.com/manav03panchal/workreport/internal/errors"
)

// GetSuggestion returns a suggestion for an error, if available.
func GetSuggestion(err error) string {
	return errors.GetSuggestion(err)
}

// ErrorField returns the input field a user error refers to, if any.
func ErrorField(err error) string {
	if ue, ok := errors.AsUserError(err); ok {
		return ue.Field
	}
	return ""
}

// FormatError formats an error for the terminal: the message, its
// suggestion, and example commands when the error has any.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	msg := errors.FormatByCategory(err)
	if examples := errors.GetExamples(err); len(examples) > 0 {
		msg += "\n\nExamples:\n  " + strings.Join(examples, "\n  ")
	}
	return msg
}
