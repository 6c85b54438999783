package storage

import (
	"time"

	"github.com/teambition/rrule-go"
)

// OccursInRange reports whether ev has an occurrence intersecting the
// half-open window [start, end).
//
// Non-recurring events intersect when their own span does. Recurring
// events are handled by a presence/UNTIL check only: a rule without UNTIL
// recurs forever from the first occurrence, a rule with UNTIL stops there.
// Full recurrence expansion (COUNT, BYDAY, exceptions) is deliberately not
// attempted at this layer.
func OccursInRange(ev *CalendarEvent, start, end time.Time) bool {
	if ev.Start.Before(end) && ev.End.After(start) {
		return true
	}
	if ev.RRule == "" {
		return false
	}
	if !ev.Start.Before(end) {
		// First occurrence is after the window; recurrence only moves
		// forward in time.
		return false
	}
	opt, err := rrule.StrToROption(ev.RRule)
	if err != nil {
		return false
	}
	if opt.Until.IsZero() {
		return true
	}
	return start.Before(opt.Until)
}
