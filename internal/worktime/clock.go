// Package worktime provides the time-of-day and calendar-date value types used
// by work reports, and the worked-hours computation over them.
package worktime

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock is a time of day with minute precision. It carries no date and no
// timezone; a report's start and end clocks are both local to the report date.
type Clock struct {
	Hour   int
	Minute int
}

// NewClock returns the clock for the given hour and minute.
func NewClock(hour, minute int) Clock {
	return Clock{Hour: hour, Minute: minute}
}

// ParseClock parses "HH:MM" (also "H:MM" and "HH:MM:SS", seconds ignored).
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Clock{}, fmt.Errorf("invalid time of day %q: expected HH:MM", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return Clock{}, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("invalid minute in %q", s)
	}

	return Clock{Hour: hour, Minute: minute}, nil
}

// MustParseClock is like ParseClock but panics on error. Intended for
// constants and tests.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ClockOf returns the time of day of t.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// Minutes returns the number of minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// Before reports whether c is earlier in the day than other.
func (c Clock) Before(other Clock) bool {
	return c.Minutes() < other.Minutes()
}

// IsZero reports whether c is midnight, which is also the unset value.
func (c Clock) IsZero() bool {
	return c.Hour == 0 && c.Minute == 0
}

// String returns the clock as "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MarshalJSON encodes the clock as "HH:MM".
func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a clock from "HH:MM".
func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
