package multistatus

import (
	"github.com/beevik/etree"

	davxml "github.com/inakimalerba/OxiCloud/internal/xml"
	"github.com/inakimalerba/OxiCloud/internal/xml/propfind"
	"github.com/inakimalerba/OxiCloud/server/storage"
)

var eventAllProp = []davxml.QualifiedName{
	davxml.DAVName(davxml.TagResourcetype),
	davxml.DAVName("getcontenttype"),
	davxml.DAVName("getetag"),
	davxml.DAVName("getlastmodified"),
	davxml.CalDAVName("calendar-data"),
}

// WriteEvent appends a response for a calendar object resource.
func (e *Encoder) WriteEvent(ms *etree.Element, href string, ev *storage.CalendarEvent, req propfind.Request) {
	e.eventProps(ev).write(ms, href, req)
}

// WriteEventProps appends an event response for a REPORT with an explicit
// property list. An empty list falls back to the standard event set.
func (e *Encoder) WriteEventProps(ms *etree.Element, href string, ev *storage.CalendarEvent, props []davxml.QualifiedName) {
	if len(props) == 0 {
		e.WriteEvent(ms, href, ev, propfind.AllProp{})
		return
	}
	e.WriteEvent(ms, href, ev, propfind.Prop{Names: props})
}

func (e *Encoder) eventProps(ev *storage.CalendarEvent) kindProps {
	return kindProps{
		all: eventAllProp,
		render: func(name davxml.QualifiedName) *etree.Element {
			switch name.Namespace {
			case davxml.DAV:
				switch name.Local {
				case davxml.TagResourcetype:
					return propElement(name)
				case "getcontenttype":
					return textProp(name, "text/calendar; component=VEVENT")
				case "getetag":
					return textProp(name, quoteETag(ev.ID))
				case "getlastmodified":
					return textProp(name, lastModified(ev.Modified))
				case "creationdate":
					return textProp(name, creationDate(ev.Created))
				case "displayname":
					return textProp(name, ev.Summary)
				}
			case davxml.CalDAV:
				if name.Local == "calendar-data" {
					return textProp(name, e.CalendarData(ev))
				}
			}
			return nil
		},
	}
}
