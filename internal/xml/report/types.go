// Package report parses CalDAV REPORT request bodies (RFC 4791 §7,
// RFC 6578 §3.2).
package report

import (
	"time"

	"github.com/samber/mo"

	davxml "github.com/inakimalerba/OxiCloud/internal/xml"
)

// TimeRange is a [Start, End) window in UTC. Both bounds are present
// whenever the range itself is.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Request is the parsed form of a REPORT body, one of CalendarQuery,
// CalendarMultiget or SyncCollection.
type Request interface {
	isRequest()
	// Properties returns the requested property names, in document order.
	Properties() []davxml.QualifiedName
}

// CalendarQuery filters the events of a calendar collection, optionally by
// time range.
type CalendarQuery struct {
	Range mo.Option[TimeRange]
	Props []davxml.QualifiedName
}

// CalendarMultiget fetches specific events by href.
type CalendarMultiget struct {
	Hrefs []string
	Props []davxml.QualifiedName
}

// SyncCollection reports changes relative to a sync token.
type SyncCollection struct {
	Token string
	Props []davxml.QualifiedName
}

func (CalendarQuery) isRequest()    {}
func (CalendarMultiget) isRequest() {}
func (SyncCollection) isRequest()   {}

func (r CalendarQuery) Properties() []davxml.QualifiedName    { return r.Props }
func (r CalendarMultiget) Properties() []davxml.QualifiedName { return r.Props }
func (r SyncCollection) Properties() []davxml.QualifiedName   { return r.Props }
