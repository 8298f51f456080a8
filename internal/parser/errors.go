package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/workreport/internal/errors"
)

// InputError is a parse failure carrying example inputs for the user.
type InputError struct {
	Input      string
	Field      string
	Message    string
	Examples   []string
	Suggestion string
	// Kind is the sentinel the error matches with errors.Is.
	Kind error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Kind
}

// FormatWithExamples returns the error message with example inputs.
func (e *InputError) FormatWithExamples() string {
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

	if e.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

// ToUserError converts the parse failure to a UserError for the CLI.
func (e *InputError) ToUserError() *errors.UserError {
	suggestion := e.Suggestion
	if suggestion == "" && len(e.Examples) > 0 {
		suggestion = strings.Join(e.Examples[:min(3, len(e.Examples))], ", ")
	}
	ue := errors.NewUserErrorWithField(e.Field, e.Input, e.Message, suggestion)
	ue.Cause = e.Kind
	return ue
}

var (
	DateExamples   = []string{"2024-03-15", "today", "yesterday", "last friday", "3 days ago"}
	ClockExamples  = []string{"09:00", "17:30", "9am", "5:30pm"}
	BreakExamples  = []string{"30", "30m", "1h", "1h15m"}
	PeriodExamples = []string{"today", "week", "month", "last week", "last month", "all"}
)

// NewDateError reports an unreadable date.
func NewDateError(input string) *InputError {
	return &InputError{
		Input:      input,
		Field:      "date",
		Message:    "could not parse date",
		Examples:   DateExamples,
		Suggestion: "Use YYYY-MM-DD or words like 'yesterday'.",
		Kind:       errors.ErrInvalidDate,
	}
}

// NewClockError reports an unreadable time of day.
func NewClockError(input string) *InputError {
	return &InputError{
		Input:      input,
		Field:      "time",
		Message:    "could not parse time of day",
		Examples:   ClockExamples,
		Suggestion: "Use 24-hour HH:MM like '17:30'.",
		Kind:       errors.ErrInvalidTime,
	}
}

// NewBreakError reports an unreadable break length.
func NewBreakError(input string) *InputError {
	return &InputError{
		Input:      input,
		Field:      "break",
		Message:    "could not parse break",
		Examples:   BreakExamples,
		Suggestion: "A plain number is read as minutes.",
		Kind:       errors.ErrInvalidDuration,
	}
}

// NewPeriodError reports an unknown period name.
func NewPeriodError(input string) *InputError {
	return &InputError{
		Input:    input,
		Field:    "period",
		Message:  "unknown period",
		Examples: PeriodExamples,
		Kind:     errors.ErrInvalidDate,
	}
}
