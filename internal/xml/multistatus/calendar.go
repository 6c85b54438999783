package multistatus

import (
	"github.com/beevik/etree"

	davxml "github.com/inakimalerba/OxiCloud/internal/xml"
	"github.com/inakimalerba/OxiCloud/internal/xml/propfind"
	"github.com/inakimalerba/OxiCloud/server/storage"
)

var calendarAllProp = []davxml.QualifiedName{
	davxml.DAVName(davxml.TagResourcetype),
	davxml.DAVName("displayname"),
	davxml.DAVName("getcontenttype"),
	davxml.DAVName("getetag"),
	davxml.DAVName("getlastmodified"),
	davxml.CalDAVName("supported-calendar-component-set"),
	davxml.CalDAVName("calendar-description"),
	{Namespace: davxml.CalendarServer, Local: "calendar-color"},
	davxml.DAVName("current-user-privilege-set"),
}

// WriteCalendar appends a response for a calendar collection. owned controls
// whether the privilege set advertises write access.
func (e *Encoder) WriteCalendar(ms *etree.Element, href string, cal *storage.Calendar, owned bool, req propfind.Request) {
	calendarProps(cal, owned).write(ms, href, req)
}

func calendarResourceType() *etree.Element {
	elem := collectionType()
	caltype := elem.CreateElement(davxml.TagCalendar)
	caltype.Space = davxml.PrefixCalDAV
	return elem
}

func supportedComponentSet() *etree.Element {
	elem := propElement(davxml.CalDAVName("supported-calendar-component-set"))
	comp := elem.CreateElement("comp")
	comp.Space = davxml.PrefixCalDAV
	comp.CreateAttr("name", "VEVENT")
	return elem
}

// privilegeSet renders read access always and write access when the
// principal owns the calendar.
func privilegeSet(owned bool) *etree.Element {
	elem := propElement(davxml.DAVName("current-user-privilege-set"))
	grant := func(local string) {
		priv := elem.CreateElement("privilege")
		priv.Space = davxml.PrefixDAV
		p := priv.CreateElement(local)
		p.Space = davxml.PrefixDAV
	}
	grant("read")
	if owned {
		grant(davxml.TagWrite)
	}
	return elem
}

func calendarProps(cal *storage.Calendar, owned bool) kindProps {
	return kindProps{
		all: calendarAllProp,
		custom: func(local string) (string, bool) {
			value, ok := cal.Properties[local]
			return value, ok
		},
		render: func(name davxml.QualifiedName) *etree.Element {
			switch name.Namespace {
			case davxml.DAV:
				switch name.Local {
				case davxml.TagResourcetype:
					return calendarResourceType()
				case "displayname":
					return textProp(name, cal.Name)
				case "getcontenttype":
					return textProp(name, "text/calendar; component=VCALENDAR")
				case "getetag":
					return textProp(name, quoteETag(cal.ID))
				case "getlastmodified":
					return textProp(name, lastModified(cal.Modified))
				case "creationdate":
					return textProp(name, creationDate(cal.Created))
				case "current-user-privilege-set":
					return privilegeSet(owned)
				}
			case davxml.CalDAV:
				switch name.Local {
				case "supported-calendar-component-set":
					return supportedComponentSet()
				case "calendar-description":
					return textProp(name, cal.Description)
				}
			case davxml.CalendarServer:
				if name.Local == "calendar-color" {
					return textProp(name, cal.Color)
				}
			}
			return nil
		},
	}
}
