package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/manav03panchal/workreport/internal/worktime"
)

var (
	meridiemRegex = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*(am|pm|a\.m\.|p\.m\.)$`)
	compactRegex  = regexp.MustCompile(`^(\d{2})(\d{2})$`)
)

// ParseClock parses a time of day: "09:00", "9:30", "0930", "5pm",
// "5:30 pm", "noon" or "midnight".
func ParseClock(input string) (worktime.Clock, error) {
	input = strings.TrimSpace(input)

	switch strings.ToLower(input) {
	case "noon":
		return worktime.NewClock(12, 0), nil
	case "midnight":
		return worktime.NewClock(0, 0), nil
	}

	if c, err := worktime.ParseClock(input); err == nil {
		return c, nil
	}

	if m := compactRegex.FindStringSubmatch(input); m != nil {
		return clockFrom(input, m[1], m[2])
	}

	m := meridiemRegex.FindStringSubmatch(input)
	if m == nil {
		return worktime.Clock{}, NewClockError(input)
	}
	hour, _ := strconv.Atoi(m[1])
	if hour < 1 || hour > 12 {
		return worktime.Clock{}, NewClockError(input)
	}
	pm := strings.HasPrefix(strings.ToLower(m[3]), "p")
	switch {
	case pm && hour != 12:
		hour += 12
	case !pm && hour == 12:
		hour = 0
	}
	minute := "0"
	if m[2] != "" {
		minute = m[2]
	}
	return clockFrom(input, strconv.Itoa(hour), minute)
}

func clockFrom(input, hour, minute string) (worktime.Clock, error) {
	h, _ := strconv.Atoi(hour)
	m, _ := strconv.Atoi(minute)
	if h > 23 || m > 59 {
		return worktime.Clock{}, NewClockError(input)
	}
	return worktime.NewClock(h, m), nil
}
