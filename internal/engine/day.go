package engine

import "time"

const dayLayout = "2006-01-02"

// DayStamp renders t as a local calendar day. Day granularity is all the
// rollover machine ever compares; no timezone or sub-day precision.
func DayStamp(t time.Time) string {
	return t.Format(dayLayout)
}

// daysBetween returns the calendar-day gap from one stamp to another. The
// second return is false when either stamp does not parse; callers treat
// that the same as a non-consecutive gap.
func daysBetween(from, to string) (int, bool) {
	a, err := time.Parse(dayLayout, from)
	if err != nil {
		return 0, false
	}
	b, err := time.Parse(dayLayout, to)
	if err != nil {
		return 0, false
	}
	return int(b.Sub(a).Hours() / 24), true
}
