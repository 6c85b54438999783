package report

import (
	"io"
	"strings"
	"time"

	"github.com/samber/mo"

	davxml "github.com/inakimalerba/OxiCloud/internal/xml"
)

type rootKind int

const (
	rootUnknown rootKind = iota
	rootCalendarQuery
	rootCalendarMultiget
	rootSyncCollection
)

// Parse consumes a REPORT body and dispatches on the outer report element.
// An unrecognized outer element yields an empty CalendarQuery, keeping odd
// clients on a harmless path instead of failing the request.
//
// Time-range bounds are RFC3339 attributes; a bound that does not parse is
// treated as absent rather than as an error. The range is only kept when
// both bounds survive.
func Parse(r io.Reader) (Request, error) {
	sc := davxml.NewScanner(r)

	root := rootUnknown
	seenRoot := false
	inProp := false
	inHref := false
	inSyncToken := false

	var props []davxml.QualifiedName
	var hrefs []string
	var syncToken string
	var start, end mo.Option[time.Time]

	for {
		tok, err := sc.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == davxml.TokenEOF {
			break
		}

		switch tok.Kind {
		case davxml.TokenStart:
			if !seenRoot {
				seenRoot = true
				switch tok.Name.Local {
				case "calendar-query":
					root = rootCalendarQuery
				case "calendar-multiget":
					root = rootCalendarMultiget
				case "sync-collection":
					root = rootSyncCollection
				}
				continue
			}
			switch {
			case tok.Name.Local == davxml.TagProp:
				inProp = true
			case tok.Name.Local == "time-range":
				start = parseBound(tok.AttrValue("start"))
				end = parseBound(tok.AttrValue("end"))
			case tok.Name.Local == davxml.TagHref:
				inHref = true
			case tok.Name.Local == davxml.TagSyncToken:
				inSyncToken = true
			case inProp:
				props = append(props, tok.Name)
			}
		case davxml.TokenText:
			switch {
			case inHref:
				hrefs = append(hrefs, strings.TrimSpace(tok.Text))
			case inSyncToken:
				syncToken = strings.TrimSpace(tok.Text)
			}
		case davxml.TokenEnd:
			switch tok.Name.Local {
			case davxml.TagProp:
				inProp = false
			case davxml.TagHref:
				inHref = false
			case davxml.TagSyncToken:
				inSyncToken = false
			}
		}
	}
	switch root {
	case rootCalendarMultiget:
		return CalendarMultiget{Hrefs: hrefs, Props: props}, nil
	case rootSyncCollection:
		return SyncCollection{Token: syncToken, Props: props}, nil
	case rootCalendarQuery:
		return CalendarQuery{Range: makeRange(start, end), Props: props}, nil
	default:
		return CalendarQuery{Props: props}, nil
	}
}

func parseBound(value string) mo.Option[time.Time] {
	if value == "" {
		return mo.None[time.Time]()
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		// Lenient by policy: an unparseable bound means no bound.
		return mo.None[time.Time]()
	}
	return mo.Some(t.UTC())
}

func makeRange(start, end mo.Option[time.Time]) mo.Option[TimeRange] {
	s, sok := start.Get()
	e, eok := end.Get()
	if !sok || !eok {
		return mo.None[TimeRange]()
	}
	return mo.Some(TimeRange{Start: s, End: e})
}
