package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	davxml "github.com/inakimalerba/OxiCloud/internal/xml"
)

func TestParseCalendarQueryWithRange(t *testing.T) {
	body := `<?xml version="1.0" encoding="utf-8"?>
<C:calendar-query xmlns:C="urn:ietf:params:xml:ns:caldav" xmlns:D="DAV:">
  <D:prop>
    <D:getetag/>
    <C:calendar-data/>
  </D:prop>
  <C:filter>
    <C:comp-filter name="VCALENDAR">
      <C:comp-filter name="VEVENT">
        <C:time-range start="2026-01-01T00:00:00Z" end="2026-02-01T00:00:00Z"/>
      </C:comp-filter>
    </C:comp-filter>
  </C:filter>
</C:calendar-query>`

	req, err := Parse(strings.NewReader(body))
	require.NoError(t, err)

	query, ok := req.(CalendarQuery)
	require.True(t, ok)
	assert.Equal(t, []davxml.QualifiedName{
		davxml.DAVName("getetag"),
		davxml.CalDAVName("calendar-data"),
	}, query.Properties())

	rng, ok := query.Range.Get()
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), rng.Start)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), rng.End)
}

func TestParseCalendarQueryBadBoundDropsRange(t *testing.T) {
	body := `<C:calendar-query xmlns:C="urn:ietf:params:xml:ns:caldav">
  <C:filter><C:time-range start="not-a-time" end="2026-02-01T00:00:00Z"/></C:filter>
</C:calendar-query>`

	req, err := Parse(strings.NewReader(body))
	require.NoError(t, err)

	query, ok := req.(CalendarQuery)
	require.True(t, ok)
	assert.True(t, query.Range.IsAbsent(), "range needs both bounds")
}

func TestParseCalendarMultiget(t *testing.T) {
	body := `<C:calendar-multiget xmlns:C="urn:ietf:params:xml:ns:caldav" xmlns:D="DAV:">
  <D:prop><D:getetag/></D:prop>
  <D:href>/calendars/work/one.ics</D:href>
  <D:href>/calendars/work/two.ics</D:href>
</C:calendar-multiget>`

	req, err := Parse(strings.NewReader(body))
	require.NoError(t, err)

	mg, ok := req.(CalendarMultiget)
	require.True(t, ok)
	assert.Equal(t, []string{"/calendars/work/one.ics", "/calendars/work/two.ics"}, mg.Hrefs)
	assert.Equal(t, []davxml.QualifiedName{davxml.DAVName("getetag")}, mg.Properties())
}

func TestParseSyncCollection(t *testing.T) {
	body := `<D:sync-collection xmlns:D="DAV:">
  <D:sync-token>sync-4</D:sync-token>
  <D:prop><D:getetag/></D:prop>
</D:sync-collection>`

	req, err := Parse(strings.NewReader(body))
	require.NoError(t, err)

	sync, ok := req.(SyncCollection)
	require.True(t, ok)
	assert.Equal(t, "sync-4", sync.Token)
}

func TestParseUnknownRootFallsBackToQuery(t *testing.T) {
	body := `<X:unknown-report xmlns:X="urn:example:odd"><X:whatever/></X:unknown-report>`

	req, err := Parse(strings.NewReader(body))
	require.NoError(t, err)

	query, ok := req.(CalendarQuery)
	require.True(t, ok)
	assert.True(t, query.Range.IsAbsent())
	assert.Empty(t, query.Props)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse(strings.NewReader(`<C:calendar-query`))
	require.Error(t, err)
	assert.ErrorIs(t, err, davxml.ErrMalformedXML)
}
