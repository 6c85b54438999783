package xml

import "github.com/beevik/etree"

// Namespace definitions for WebDAV and CalDAV
const (
	// DAV is the WebDAV namespace
	DAV = "DAV:"
	// CalDAV is the CalDAV namespace
	CalDAV = "urn:ietf:params:xml:ns:caldav"
	// CalendarServer is the Calendar Server namespace (used by some implementations)
	CalendarServer = "http://calendarserver.org/ns/"
)

// Prefixes used when generating response documents.
const (
	PrefixDAV            = "D"
	PrefixCalDAV         = "C"
	PrefixCalendarServer = "CS"
)

// AddNamespaces declares the standard WebDAV/CalDAV namespaces on the
// document root.
func AddNamespaces(doc *etree.Document) {
	root := doc.Root()
	if root == nil {
		return
	}
	root.CreateAttr("xmlns:"+PrefixDAV, DAV)
	root.CreateAttr("xmlns:"+PrefixCalDAV, CalDAV)
	root.CreateAttr("xmlns:"+PrefixCalendarServer, CalendarServer)
}

// PrefixFor maps a namespace URI to the prefix declared by AddNamespaces.
// Unknown namespaces map to the empty prefix; callers are expected to
// declare those inline.
func PrefixFor(namespace string) string {
	switch namespace {
	case DAV:
		return PrefixDAV
	case CalDAV:
		return PrefixCalDAV
	case CalendarServer:
		return PrefixCalendarServer
	default:
		return ""
	}
}
