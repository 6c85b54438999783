package multistatus

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inakimalerba/OxiCloud/internal/lock"
	davxml "github.com/inakimalerba/OxiCloud/internal/xml"
	"github.com/inakimalerba/OxiCloud/internal/xml/propfind"
	"github.com/inakimalerba/OxiCloud/server/storage"
)

var testTime = time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

func testFile() *storage.File {
	return &storage.File{
		ID:       "f1",
		Name:     "report.pdf",
		Path:     "/docs/report.pdf",
		Size:     2048,
		Created:  testTime,
		Modified: testTime,
		Properties: map[string]string{
			"author": "Jane",
		},
	}
}

func TestWriteFileAllProp(t *testing.T) {
	enc := &Encoder{}
	doc, ms := NewDocument()
	enc.WriteFile(ms, "/dav/docs/report.pdf", testFile(), propfind.AllProp{})

	require.NotNil(t, doc.FindElement("//D:response/D:href"))
	assert.Equal(t, "/dav/docs/report.pdf", doc.FindElement("//D:response/D:href").Text())

	prop := doc.FindElement("//D:propstat/D:prop")
	require.NotNil(t, prop)
	assert.Equal(t, "2048", prop.FindElement("D:getcontentlength").Text())
	assert.Equal(t, "application/pdf", prop.FindElement("D:getcontenttype").Text())
	assert.Equal(t, `"f1"`, prop.FindElement("D:getetag").Text())

	rt := prop.FindElement("D:resourcetype")
	require.NotNil(t, rt)
	assert.Empty(t, rt.ChildElements(), "files are not collections")

	status := doc.FindElement("//D:propstat/D:status")
	require.NotNil(t, status)
	assert.Equal(t, davxml.StatusOK, status.Text())
}

func TestWriteFilePropName(t *testing.T) {
	enc := &Encoder{}
	doc, ms := NewDocument()
	enc.WriteFile(ms, "/docs/report.pdf", testFile(), propfind.PropNameOnly{})

	length := doc.FindElement("//D:prop/D:getcontentlength")
	require.NotNil(t, length)
	assert.Empty(t, length.Text(), "propname renders names without values")
}

func TestWriteFileExplicitProps(t *testing.T) {
	enc := &Encoder{}
	doc, ms := NewDocument()
	enc.WriteFile(ms, "/docs/report.pdf", testFile(), propfind.Prop{Names: []davxml.QualifiedName{
		davxml.DAVName("getetag"),
		davxml.QName("urn:example:custom", "author"),
		davxml.QName("urn:example:custom", "missing"),
	}})

	prop := doc.FindElement("//D:propstat/D:prop")
	require.NotNil(t, prop)
	require.Len(t, prop.ChildElements(), 3, "every requested name appears")

	author := prop.FindElement("author")
	require.NotNil(t, author)
	assert.Equal(t, "Jane", author.Text())
	assert.Equal(t, "urn:example:custom", author.SelectAttrValue("xmlns", ""))

	missing := prop.FindElement("missing")
	require.NotNil(t, missing)
	assert.Empty(t, missing.Text(), "unknown names render as empty elements")
}

func TestWriteFolderResourceType(t *testing.T) {
	enc := &Encoder{}
	doc, ms := NewDocument()
	folder := &storage.Folder{ID: "d1", Name: "docs", Path: "/docs", Created: testTime, Modified: testTime}
	enc.WriteFolder(ms, "/docs/", folder, propfind.AllProp{})

	require.NotNil(t, doc.FindElement("//D:resourcetype/D:collection"))
	assert.Equal(t, "httpd/unix-directory", doc.FindElement("//D:getcontenttype").Text())
	assert.Equal(t, "0", doc.FindElement("//D:getcontentlength").Text())
}

func TestWriteCalendar(t *testing.T) {
	enc := &Encoder{}
	doc, ms := NewDocument()
	cal := &storage.Calendar{
		ID:          "c1",
		OwnerID:     "alice",
		Name:        "Work",
		Description: "Work schedule",
		Color:       "#FF0000",
		Path:        "/calendars/work",
		Modified:    testTime,
	}
	enc.WriteCalendar(ms, "/calendars/work/", cal, true, propfind.AllProp{})

	require.NotNil(t, doc.FindElement("//D:resourcetype/D:collection"))
	require.NotNil(t, doc.FindElement("//D:resourcetype/C:calendar"))
	assert.Equal(t, "Work", doc.FindElement("//D:displayname").Text())
	assert.Equal(t, "#FF0000", doc.FindElement("//CS:calendar-color").Text())

	comp := doc.FindElement("//C:supported-calendar-component-set/C:comp")
	require.NotNil(t, comp)
	assert.Equal(t, "VEVENT", comp.SelectAttrValue("name", ""))

	privs := doc.FindElement("//D:current-user-privilege-set")
	require.NotNil(t, privs)
	require.NotNil(t, privs.FindElement("D:privilege/D:read"))
	require.NotNil(t, privs.FindElement("D:privilege/D:write"))
}

func TestWriteCalendarNotOwned(t *testing.T) {
	enc := &Encoder{}
	doc, ms := NewDocument()
	cal := &storage.Calendar{ID: "c1", OwnerID: "alice", Name: "Work", Path: "/calendars/work"}
	enc.WriteCalendar(ms, "/calendars/work/", cal, false, propfind.AllProp{})

	privs := doc.FindElement("//D:current-user-privilege-set")
	require.NotNil(t, privs)
	require.NotNil(t, privs.FindElement("D:privilege/D:read"))
	assert.Nil(t, privs.FindElement("D:privilege/D:write"))
}

func TestWriteEventCalendarData(t *testing.T) {
	enc := &Encoder{Product: "TestSuite"}
	doc, ms := NewDocument()
	ev := &storage.CalendarEvent{
		ID:       "e1",
		ICalUID:  "uid-1",
		Summary:  "Standup\nnotes",
		Path:     "/calendars/work/e1.ics",
		Start:    testTime,
		End:      testTime.Add(time.Hour),
		Modified: testTime,
	}
	enc.WriteEvent(ms, "/calendars/work/e1.ics", ev, propfind.AllProp{})

	data := doc.FindElement("//C:calendar-data")
	require.NotNil(t, data)
	body := data.Text()

	assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR\r\n"))
	assert.Contains(t, body, "PRODID:-//TestSuite//NONSGML Calendar//EN\r\n")
	assert.Contains(t, body, "UID:uid-1\r\n")
	assert.Contains(t, body, `SUMMARY:Standup\nnotes`)
	assert.Contains(t, body, "DTSTART:20260315T093000Z\r\n")
	assert.Contains(t, body, "DTEND:20260315T103000Z\r\n")
	assert.True(t, strings.HasSuffix(body, "END:VCALENDAR\r\n"))

	assert.Equal(t, "text/calendar; component=VEVENT", doc.FindElement("//D:getcontenttype").Text())
}

func TestCalendarDataRRule(t *testing.T) {
	enc := &Encoder{}
	ev := &storage.CalendarEvent{
		ID:      "e1",
		Summary: "Weekly",
		Start:   testTime,
		End:     testTime.Add(time.Hour),
		RRule:   "FREQ=WEEKLY;BYDAY=TU",
	}
	body := enc.CalendarData(ev)
	assert.Contains(t, body, "RRULE:FREQ=WEEKLY;BYDAY=TU\r\n")
	assert.Contains(t, body, "UID:e1\r\n", "UID falls back to the event id")
}

func TestWriteProppatchGroups(t *testing.T) {
	enc := &Encoder{}
	doc, ms := NewDocument()
	accepted := []davxml.QualifiedName{davxml.QName("urn:example:custom", "author")}
	rejected := []davxml.QualifiedName{davxml.DAVName("getetag")}
	enc.WriteProppatch(ms, "/docs/report.pdf", accepted, rejected)

	stats := doc.FindElements("//D:propstat")
	require.Len(t, stats, 2)
	assert.Equal(t, davxml.StatusOK, stats[0].FindElement("D:status").Text())
	require.NotNil(t, stats[0].FindElement("D:prop/author"))
	assert.Equal(t, davxml.StatusForbidden, stats[1].FindElement("D:status").Text())
	require.NotNil(t, stats[1].FindElement("D:prop/D:getetag"))
}

func TestWriteProppatchAlwaysTwoGroups(t *testing.T) {
	enc := &Encoder{}
	doc, ms := NewDocument()
	accepted := []davxml.QualifiedName{davxml.QName("urn:example:custom", "author")}
	enc.WriteProppatch(ms, "/docs/report.pdf", accepted, nil)

	stats := doc.FindElements("//D:propstat")
	require.Len(t, stats, 2, "both groups present even when one is empty")
	assert.Equal(t, davxml.StatusForbidden, stats[1].FindElement("D:status").Text())
	forbidden := stats[1].FindElement("D:prop")
	require.NotNil(t, forbidden)
	assert.Empty(t, forbidden.ChildElements())
}

func TestLockDiscovery(t *testing.T) {
	info := lock.Info{
		Token: "opaquelocktoken:abc",
		Path:  "/docs/report.pdf",
		Owner: "alice",
		Depth: "0",
		Scope: lock.ScopeExclusive,
	}
	doc := LockDiscovery(info)

	active := doc.FindElement("//D:lockdiscovery/D:activelock")
	require.NotNil(t, active)
	require.NotNil(t, active.FindElement("D:lockscope/D:exclusive"))
	require.NotNil(t, active.FindElement("D:locktype/D:write"))
	assert.Equal(t, "0", active.FindElement("D:depth").Text())
	assert.Equal(t, "alice", active.FindElement("D:owner").Text())
	assert.Equal(t, "opaquelocktoken:abc", active.FindElement("D:locktoken/D:href").Text())
}

func TestWriteStatusOnly(t *testing.T) {
	doc, ms := NewDocument()
	WriteStatus(ms, "/calendars/work/gone.ics", davxml.StatusNotFound)

	resp := doc.FindElement("//D:response")
	require.NotNil(t, resp)
	assert.Equal(t, davxml.StatusNotFound, resp.FindElement("D:status").Text())
	assert.Nil(t, resp.FindElement("D:propstat"))
}
