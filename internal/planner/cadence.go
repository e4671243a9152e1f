package planner

import "time"

// cyclePeriod returns the number of days one repetition of the template
// occupies: the span from the first to the last base session, inclusive,
// rounded up to whole weeks. A cycle therefore always starts after the
// previous one ends, and weekly templates keep their weekdays.
func cyclePeriod(dates []time.Time) int {
	if len(dates) == 0 {
		return 7
	}
	first, last := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}
	span := daysBetween(first, last) + 1
	return ((span + 6) / 7) * 7
}

// daysBetween counts calendar days from a to b, ignoring time of day and DST.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// cycleDate places a base session's date into cycle (1-based).
func cycleDate(base time.Time, cycle, period int) time.Time {
	return base.AddDate(0, 0, cycle*period)
}
