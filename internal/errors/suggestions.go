package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	ErrReportNotFound:    "Use 'workreport report list' to see report ids.",
	ErrColleagueNotFound: "Use 'workreport colleague list' to see colleague ids.",
	ErrWorksiteNotFound:  "Use 'workreport worksite list' to see worksite ids.",
	ErrProjectNotFound:   "Use 'workreport project list' to see project ids.",
	ErrThemeNotFound:     "Use 'workreport theme list' to see available themes.",
	ErrFieldNotFound:     "Use 'workreport layout show' to see field and card ids.",
	ErrThemeExists:       "Pick another theme id or remove the existing theme first.",
	ErrNameRequired:      "Provide a non-blank name.",
	ErrInvalidTime:       "Use 24-hour times like '09:00' or '17:30'.",
	ErrInvalidDate:       "Try '2024-03-15', 'today', 'yesterday' or 'last monday'.",
	ErrInvalidDuration:   "Try formats like '30', '45m', '1h' or '1h15m'.",
	ErrInvalidColor:      "Use hex color format like '#FF5733'.",

	ErrDiskFull:          "Free up disk space and try again. Nothing was written.",
	ErrDatabaseCorrupted: "Restore from a backup with 'workreport import FILE'.",
	ErrLockHeld:          "Another workreport process has the database open. Close it and retry.",
	ErrPermissionDenied:  "Check file permissions in your data directory (~/.local/share/workreport/).",
}

// GetSuggestion returns a suggestion for an error, if available.
// An explicit UserError suggestion wins over the sentinel table.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}
	return ""
}

// CommandExamples provides example commands for common errors.
var CommandExamples = map[error][]string{
	ErrInvalidTime: {
		"workreport report add --start 09:00 --end 17:00 --project Acme --description \"site visit\"",
	},
	ErrInvalidDate: {
		"workreport report add --date yesterday ...",
		"workreport report add --date 2024-03-15 ...",
	},
	ErrInvalidDuration: {
		"workreport report add --break 30 ...",
		"workreport report add --break 1h ...",
	},
}

// GetExamples returns example commands for an error.
func GetExamples(err error) []string {
	for knownErr, examples := range CommandExamples {
		if errors.Is(err, knownErr) {
			return examples
		}
	}
	return nil
}
