package multistatus

import (
	"strings"

	"github.com/inakimalerba/OxiCloud/server/storage"
)

const icalTimeLayout = "20060102T150405Z"

// escapeICalText applies iCalendar TEXT escaping.
func escapeICalText(s string) string {
	return strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\r\n", `\n`,
		"\n", `\n`,
	).Replace(s)
}

// CalendarData synthesizes an iCalendar document for one event. Lines end
// with CRLF as RFC 5545 requires.
func (e *Encoder) CalendarData(ev *storage.CalendarEvent) string {
	product := e.Product
	if product == "" {
		product = "OxiCloud"
	}

	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteString("\r\n")
	}

	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:-//" + product + "//NONSGML Calendar//EN")
	line("BEGIN:VEVENT")
	uid := ev.ICalUID
	if uid == "" {
		uid = ev.ID
	}
	line("UID:" + uid)
	line("SUMMARY:" + escapeICalText(ev.Summary))
	line("DTSTART:" + ev.Start.UTC().Format(icalTimeLayout))
	line("DTEND:" + ev.End.UTC().Format(icalTimeLayout))
	if ev.Description != "" {
		line("DESCRIPTION:" + escapeICalText(ev.Description))
	}
	if ev.Location != "" {
		line("LOCATION:" + escapeICalText(ev.Location))
	}
	if ev.RRule != "" {
		line("RRULE:" + ev.RRule)
	}
	line("DTSTAMP:" + ev.Modified.UTC().Format(icalTimeLayout))
	line("END:VEVENT")
	line("END:VCALENDAR")
	return b.String()
}
