package worktime

// Range is a named calendar window relative to a reference date.
type Range string

const (
	RangeAll   Range = "all"
	RangeToday Range = "today"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
)

// ParseRange returns the range named by s. The empty string means RangeAll.
func ParseRange(s string) (Range, bool) {
	switch Range(s) {
	case "", RangeAll:
		return RangeAll, true
	case RangeToday, RangeWeek, RangeMonth:
		return Range(s), true
	}
	return "", false
}

// Bounds returns the inclusive first and last day of r around ref. The second
// return value is false for RangeAll, which has no bounds.
func (r Range) Bounds(ref Date) (Date, Date, bool) {
	switch r {
	case RangeToday:
		return ref, ref, true
	case RangeWeek:
		start, end := WeekRange(ref)
		return start, end, true
	case RangeMonth:
		start, end := MonthRange(ref)
		return start, end, true
	}
	return Date{}, Date{}, false
}

// Contains reports whether d falls inside r around ref.
func (r Range) Contains(d, ref Date) bool {
	start, end, bounded := r.Bounds(ref)
	if !bounded {
		return true
	}
	return d.Within(start, end)
}

// WeekRange returns the Monday and Sunday of the week containing d.
func WeekRange(d Date) (Date, Date) {
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7 // Sunday closes the week
	}
	monday := d.AddDays(-(wd - 1))
	return monday, monday.AddDays(6)
}

// MonthRange returns the first and last day of the month containing d.
func MonthRange(d Date) (Date, Date) {
	first := Date{Year: d.Year, Month: d.Month, Day: 1}
	last := NewDate(d.Year, d.Month+1, 0)
	return first, last
}

// SameWeek reports whether a and b fall in the same Monday-based week.
func SameWeek(a, b Date) bool {
	start, end := WeekRange(b)
	return a.Within(start, end)
}
