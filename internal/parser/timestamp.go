package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/manav03panchal/workreport/internal/worktime"
)

// extraDateLayouts are tried after ISO dates and before natural language.
var extraDateLayouts = []string{"02.01.2006", "2006/01/02", "Jan 2 2006", "2 Jan 2006"}

// ParseDate parses the day a report belongs to, relative to now. It accepts
// ISO dates ("2024-03-15"), a few common layouts and natural language such
// as "yesterday", "last friday" or "3 days ago".
func ParseDate(input string, now time.Time) (worktime.Date, error) {
	input = strings.TrimSpace(input)
	today := worktime.Today(now)

	switch strings.ToLower(input) {
	case "", "today", "now":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	case "tomorrow":
		return today.AddDays(1), nil
	}

	if d, err := worktime.ParseDate(input); err == nil {
		return d, nil
	}
	for _, layout := range extraDateLayouts {
		if t, err := time.ParseInLocation(layout, input, now.Location()); err == nil {
			return worktime.DateOf(t), nil
		}
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil || result.Time.IsZero() {
		return worktime.Date{}, NewDateError(input)
	}
	return worktime.DateOf(result.Time.In(now.Location())), nil
}

// periodRegex matches period expressions like "this week", "last month".
var periodRegex = regexp.MustCompile(`(?i)^(this|current|last|previous)\s+(week|month|year)$`)

// Period is an inclusive span of days. A zero From or To leaves that side open.
type Period struct {
	From worktime.Date
	To   worktime.Date
}

// IsOpen reports whether the period is unbounded on both sides.
func (p Period) IsOpen() bool {
	return p.From.IsZero() && p.To.IsZero()
}

// ParsePeriod parses a period name relative to ref: "all", "today",
// "yesterday", "week", "month", "this week", "last month", "last year", or
// a single date.
func ParsePeriod(input string, ref worktime.Date) (Period, error) {
	input = strings.TrimSpace(input)
	lower := strings.ToLower(input)

	if r, ok := worktime.ParseRange(lower); ok {
		from, to, bounded := r.Bounds(ref)
		if !bounded {
			return Period{}, nil
		}
		return Period{From: from, To: to}, nil
	}
	if lower == "yesterday" {
		d := ref.AddDays(-1)
		return Period{From: d, To: d}, nil
	}

	if match := periodRegex.FindStringSubmatch(lower); match != nil {
		last := match[1] == "last" || match[1] == "previous"
		switch match[2] {
		case "week":
			if last {
				ref = ref.AddDays(-7)
			}
			from, to := worktime.WeekRange(ref)
			return Period{From: from, To: to}, nil
		case "month":
			if last {
				first, _ := worktime.MonthRange(ref)
				ref = first.AddDays(-1)
			}
			from, to := worktime.MonthRange(ref)
			return Period{From: from, To: to}, nil
		case "year":
			year := ref.Year
			if last {
				year--
			}
			return Period{
				From: worktime.NewDate(year, time.January, 1),
				To:   worktime.NewDate(year, time.December, 31),
			}, nil
		}
	}

	if d, err := worktime.ParseDate(input); err == nil {
		return Period{From: d, To: d}, nil
	}
	return Period{}, NewPeriodError(input)
}
