// Package dateutil provides calendar-date helpers used by the roadmap engine.
//
// All comparisons are made on civil dates (year, month, day). The clock and
// location of a time.Time never influence which day it represents, so a value
// parsed as "2025-03-13" in any zone compares equal to every other
// representation of that day.
package dateutil

import (
	"fmt"
	"time"
)

// Layout is the ISO calendar date layout accepted by Parse
const Layout = time.DateOnly

// Date builds a civil date at UTC midnight
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Civil truncates t to the UTC midnight of its own calendar day
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// Parse parses an ISO calendar date (YYYY-MM-DD)
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// Format renders t as YYYY-MM-DD
func Format(t time.Time) string {
	return Civil(t).Format(Layout)
}

// DaysIn returns the number of days in the given month
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths adds n calendar months to t. When the day of month does not exist
// in the target month it is clamped to that month's last day, so Jan 31 plus
// one month is Feb 28 (or 29), never Mar 3.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	ty := y + floorDiv(total, 12)
	tm := time.Month(total - floorDiv(total, 12)*12 + 1)
	if maxDay := DaysIn(ty, tm); d > maxDay {
		d = maxDay
	}
	h, mi, s := t.Clock()
	return time.Date(ty, tm, d, h, mi, s, t.Nanosecond(), t.Location())
}

// AddDays adds n calendar days to t
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DaysBetween returns the number of calendar days from a to b, negative when b is earlier
func DaysBetween(a, b time.Time) int {
	return int(Civil(b).Sub(Civil(a)).Hours() / 24)
}

// MonthsBetween returns the number of whole calendar months from a to b: the
// largest n for which AddMonths(a, n) does not pass b. The result is negative
// when b precedes a and truncates toward zero.
func MonthsBetween(a, b time.Time) int {
	a, b = Civil(a), Civil(b)
	n := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	switch {
	case n > 0 && AddMonths(a, n).After(b):
		n--
	case n < 0 && AddMonths(a, n).Before(b):
		n++
	}
	return n
}

// Compare orders two civil dates: -1 when a is before b, 0 on the same day, +1 after
func Compare(a, b time.Time) int {
	return Civil(a).Compare(Civil(b))
}

// Before reports whether a falls on an earlier day than b
func Before(a, b time.Time) bool { return Compare(a, b) < 0 }

// After reports whether a falls on a later day than b
func After(a, b time.Time) bool { return Compare(a, b) > 0 }

// Within reports whether d lies in the closed interval [start, end]
func Within(d, start, end time.Time) bool {
	return Compare(d, start) >= 0 && Compare(d, end) <= 0
}

// Max returns the later of two dates
func Max(a, b time.Time) time.Time {
	if After(a, b) {
		return a
	}
	return b
}

// Min returns the earlier of two dates
func Min(a, b time.Time) time.Time {
	if Before(a, b) {
		return a
	}
	return b
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
