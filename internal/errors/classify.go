package errors

import (
	"errors"
	"io/fs"
	"syscall"
)

// Category groups errors by who can act on them.
type Category int

const (
	CategoryUnknown Category = iota
	// CategoryUser covers input the user can correct: bad values, unknown ids.
	CategoryUser
	// CategorySystem covers storage and environment failures.
	CategorySystem
)

func (c Category) String() string {
	switch c {
	case CategoryUser:
		return "user"
	case CategorySystem:
		return "system"
	}
	return "unknown"
}

// ExitCode is the process status for an error of this category.
func (c Category) ExitCode() int {
	if c == CategorySystem {
		return 2
	}
	return 1
}

// environmentErrors mark failures of the machine rather than of the input.
var environmentErrors = []error{
	ErrDiskFull,
	ErrDatabaseCorrupted,
	ErrLockHeld,
	ErrPermissionDenied,
	fs.ErrPermission,
	fs.ErrNotExist,
	syscall.ENOSPC,
	syscall.EIO,
	syscall.EROFS,
}

// Classify returns the category of err. A UserError wins over anything it
// wraps.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryUnknown
	case IsUserError(err):
		return CategoryUser
	case IsSystemError(err):
		return CategorySystem
	}
	for _, target := range environmentErrors {
		if errors.Is(err, target) {
			return CategorySystem
		}
	}
	return CategoryUnknown
}

// FormatByCategory renders err for the terminal. User errors get a "Try:"
// hint, system errors a "System error:" prefix.
func FormatByCategory(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	hint := GetSuggestion(err)
	switch Classify(err) {
	case CategoryUser:
		if hint != "" {
			msg += "\n\nTry: " + hint
		}
	case CategorySystem:
		msg = "System error: " + msg
		if hint != "" {
			msg += "\n\n" + hint
		}
	}
	return msg
}
