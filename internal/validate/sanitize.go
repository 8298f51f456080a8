package validate

import (
	"strings"
	"unicode"
)

// maxFilename keeps generated names below common filesystem limits.
const maxFilename = 200

// SanitizeLabel trims a single-line label such as a project or colleague
// name and drops control characters.
func SanitizeLabel(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

// SanitizeNote trims a report description, normalizes line endings to \n and
// drops NUL bytes. Other whitespace inside the text is kept.
func SanitizeNote(note string) string {
	note = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\x00", "").Replace(note)
	return strings.TrimSpace(note)
}

// SafeFilename makes s usable as a file name on every platform: path
// separators and reserved characters become underscores.
func SafeFilename(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r == 0:
			return -1
		case strings.ContainsRune(`/\:*?"<>|`, r), unicode.IsControl(r):
			return '_'
		}
		return r
	}, s)
	s = strings.Trim(s, " .")
	if len(s) > maxFilename {
		s = s[:maxFilename]
	}
	return s
}
