// Package site computes the daily status and renders the static page.
package site

import (
	"time"

	"ouinon/internal/model"
)

// Status is the answer the page presents, derived from the event log.
type Status struct {
	HasEventToday bool
	DaysSince     int          // full days from the latest event to today, never negative
	Latest        *model.Event // nil when the log is empty
}

// Compute derives today's status from events in log order. The latest
// event is the one with the greatest date; among events sharing that date
// the last appended wins, so the page shows the most recently recorded.
func Compute(events []model.Event, today time.Time) Status {
	day := model.Day(today)

	var st Status
	latest := -1
	for i, ev := range events {
		if ev.Date.Equal(day) {
			st.HasEventToday = true
		}
		if latest < 0 || !ev.Date.Before(events[latest].Date) {
			latest = i
		}
	}
	if latest < 0 {
		return st
	}

	ev := events[latest]
	st.Latest = &ev
	if days := int(day.Sub(ev.Date).Hours() / 24); days > 0 {
		st.DaysSince = days
	}
	return st
}
