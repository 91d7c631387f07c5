package domain

import "time"

// DateLayout is the calendar-day key format used across both stores.
const DateLayout = "2006-01-02"

// DateOf formats t as a UTC calendar-day string.
func DateOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// DayBefore returns the calendar day preceding t, as a UTC date string.
func DayBefore(t time.Time) string {
	return t.UTC().AddDate(0, 0, -1).Format(DateLayout)
}
