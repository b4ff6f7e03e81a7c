package calculator

import "time"

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// SkipWeekend advances t one day at a time until it is a weekday.
func SkipWeekend(t time.Time) time.Time {
	for IsWeekend(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// NextTradingDays returns the first n weekdays strictly after from.
func NextTradingDays(from time.Time, n int) []time.Time {
	out := make([]time.Time, 0, n)
	d := from
	for len(out) < n {
		d = d.AddDate(0, 0, 1)
		if IsWeekend(d) {
			continue
		}
		out = append(out, d)
	}
	return out
}
