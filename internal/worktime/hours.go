package worktime

import (
	"fmt"
	"math"
	"strconv"
)

// ComputeWorkedHours returns the worked hours between start and end minus the
// break. Both clocks are on the same nominal day: an end before the start
// yields a zero span rather than rolling over midnight. A break longer than
// the span yields zero. A negative break counts as no break.
//
// The result is never negative.
func ComputeWorkedHours(start, end Clock, breakMinutes float64) float64 {
	span := end.Minutes() - start.Minutes()
	if span < 0 {
		span = 0
	}
	if breakMinutes < 0 || math.IsNaN(breakMinutes) {
		breakMinutes = 0
	}

	worked := float64(span) - breakMinutes
	if worked <= 0 {
		return 0
	}
	return worked / 60
}

// SpanMinutes returns the raw span between start and end in minutes, zero
// when end is before start.
func SpanMinutes(start, end Clock) int {
	span := end.Minutes() - start.Minutes()
	if span < 0 {
		return 0
	}
	return span
}

// FormatHours renders hours as "7h 30m". Minutes are rounded to the nearest
// whole minute and carried into the hour, so 7.999h renders "8h 0m".
func FormatHours(hours float64) string {
	if hours < 0 || math.IsNaN(hours) {
		hours = 0
	}
	total := int(math.Round(hours * 60))
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}

// FormatDecimal renders hours with the given number of decimal places.
func FormatDecimal(hours float64, places int) string {
	return strconv.FormatFloat(hours, 'f', places, 64)
}
