// Package errors holds the two error kinds the CLI tells apart: UserError,
// which the user fixes by changing input, and SystemError, which comes from
// storage or the machine. Sentinels let callers test for a condition with
// errors.Is whatever wraps it.
package errors

import (
	"errors"
	"fmt"
)

// Lookup failures.
var (
	ErrReportNotFound    = errors.New("report not found")
	ErrColleagueNotFound = errors.New("colleague not found")
	ErrWorksiteNotFound  = errors.New("worksite not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrThemeNotFound     = errors.New("theme not found")
	ErrFieldNotFound     = errors.New("layout item not found")
)

// Input failures.
var (
	ErrThemeExists     = errors.New("theme already exists")
	ErrNameRequired    = errors.New("name is required")
	ErrInvalidTime     = errors.New("invalid time of day")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidColor    = errors.New("invalid color format")
)

// Storage failures.
var (
	ErrDiskFull          = errors.New("disk full")
	ErrDatabaseCorrupted = errors.New("database corrupted")
	ErrLockHeld          = errors.New("database locked by another process")
	ErrPermissionDenied  = errors.New("permission denied")
)

// UserError is a rejected input. Field and Value name the offending flag or
// record field; Cause is the sentinel it stands for.
type UserError struct {
	Message    string
	Suggestion string
	Field      string
	Value      string
	Cause      error
}

func (e *UserError) Error() string {
	if e.Field == "" || e.Value == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: '%s'", e.Message, e.Value)
}

func (e *UserError) Unwrap() error { return e.Cause }

func NewUserError(message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion}
}

// NewUserErrorWithField is NewUserError for a specific field and value.
func NewUserErrorWithField(field, value, message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion, Field: field, Value: value}
}

// NotFound reports an unknown id. The result matches sentinel under
// errors.Is.
func NotFound(sentinel error, id string) *UserError {
	return &UserError{Message: sentinel.Error(), Field: "id", Value: id, Cause: sentinel}
}

// SystemError is a failure of storage or the environment.
type SystemError struct {
	Op      string // e.g. "save workReports"
	Message string
	Cause   error
}

func (e *SystemError) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return e.Message + " during " + e.Op
}

func (e *SystemError) Unwrap() error { return e.Cause }

func NewSystemError(message string, cause error) *SystemError {
	return &SystemError{Message: message, Cause: cause}
}

func NewSystemErrorWithOp(op, message string, cause error) *SystemError {
	return &SystemError{Op: op, Message: message, Cause: cause}
}

// AsUserError returns the first UserError in err's chain.
func AsUserError(err error) (*UserError, bool) {
	var ue *UserError
	return ue, errors.As(err, &ue)
}

// AsSystemError returns the first SystemError in err's chain.
func AsSystemError(err error) (*SystemError, bool) {
	var se *SystemError
	return se, errors.As(err, &se)
}

func IsUserError(err error) bool {
	_, ok := AsUserError(err)
	return ok
}

func IsSystemError(err error) bool {
	_, ok := AsSystemError(err)
	return ok
}

// Is, As and New mirror the standard library so callers need one import.
func Is(err, target error) bool { return errors.Is(err, target) }
func As(err error, target any) bool { return errors.As(err, target) }
func New(text string) error { return errors.New(text) }

// Wrap prefixes err with message. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
