package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// breakPattern matches break expressions like "30", "30m", "1h", "1h15m",
// "1.5h" and "45 minutes".
var breakPattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*(h|hr|hrs|hour|hours|m|min|mins|minute|minutes)?\s*(?:(\d+(?:\.\d+)?)\s*(m|min|mins|minute|minutes)?)?$`)

// ParseBreak parses a break length into minutes. A bare number is minutes.
func ParseBreak(input string) (float64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, NewBreakError(input)
	}

	m := breakPattern.FindStringSubmatch(input)
	if m == nil {
		// Go duration syntax, e.g. "1h15m0s".
		d, err := time.ParseDuration(input)
		if err != nil || d < 0 {
			return 0, NewBreakError(input)
		}
		return d.Minutes(), nil
	}

	value, _ := strconv.ParseFloat(m[1], 64)
	minutes := value * unitMinutes(m[2])

	if m[3] != "" {
		// A trailing number only makes sense after hours: "1h 15".
		if !isHourUnit(m[2]) {
			return 0, NewBreakError(input)
		}
		extra, _ := strconv.ParseFloat(m[3], 64)
		minutes += extra
	}
	return minutes, nil
}

func isHourUnit(unit string) bool {
	switch strings.ToLower(unit) {
	case "h", "hr", "hrs", "hour", "hours":
		return true
	}
	return false
}

// unitMinutes returns the minutes in one unit. No unit means minutes.
func unitMinutes(unit string) float64 {
	if isHourUnit(unit) {
		return 60
	}
	return 1
}

// FormatBreak renders minutes the way ParseBreak reads them back.
func FormatBreak(minutes float64) string {
	if minutes <= 0 {
		return "0m"
	}
	total := int(minutes + 0.5)
	h, m := total/60, total%60
	switch {
	case h == 0:
		return strconv.Itoa(m) + "m"
	case m == 0:
		return strconv.Itoa(h) + "h"
	default:
		return strconv.Itoa(h) + "h" + strconv.Itoa(m) + "m"
	}
}
