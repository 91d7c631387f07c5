package domain

import "time"

// HistoryFilter narrows history queries to a minimum-date bound.
type HistoryFilter string

const (
	FilterToday HistoryFilter = "today"
	FilterWeek  HistoryFilter = "week"
	FilterMonth HistoryFilter = "month"
	FilterAll   HistoryFilter = "all"
)

// ParseHistoryFilter maps a query-string value onto a filter.
// Empty and unknown values default to FilterAll.
func ParseHistoryFilter(s string) HistoryFilter {
	switch HistoryFilter(s) {
	case FilterToday, FilterWeek, FilterMonth:
		return HistoryFilter(s)
	default:
		return FilterAll
	}
}

// StartDate returns the inclusive lower date bound for the filter, relative
// to now. FilterAll returns "" meaning unbounded.
func (f HistoryFilter) StartDate(now time.Time) string {
	switch f {
	case FilterToday:
		return DateOf(now)
	case FilterWeek:
		return DateOf(now.AddDate(0, 0, -7))
	case FilterMonth:
		return DateOf(now.AddDate(0, -1, 0))
	default:
		return ""
	}
}
