package server

import (
	"net/http"
	"strings"

	davxml "github.com/inakimalerba/OxiCloud/internal/xml"
	"github.com/inakimalerba/OxiCloud/internal/xml/multistatus"
	"github.com/inakimalerba/OxiCloud/internal/xml/report"
	"github.com/inakimalerba/OxiCloud/server/storage"
)

// handleReport serves the CalDAV REPORT set against a calendar
// collection: calendar-query, calendar-multiget and sync-collection.
func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request, p, principal string) error {
	req, err := report.Parse(r.Body)
	if err != nil {
		return httpError(http.StatusBadRequest, "malformed REPORT body")
	}

	ctx := r.Context()
	res, err := h.resolve(ctx, p)
	if err != nil {
		return err
	}
	if res.Kind != KindCalendar {
		return httpError(http.StatusBadRequest, "REPORT targets a calendar collection")
	}
	cal := res.Calendar

	enc := h.encoder()
	doc, ms := multistatus.NewDocument()

	switch rep := req.(type) {
	case report.CalendarQuery:
		var events []*storage.CalendarEvent
		if rng, ok := rep.Range.Get(); ok {
			events, err = h.cfg.Calendars.EventsInRange(ctx, cal.ID, rng.Start, rng.End)
		} else {
			events, err = h.cfg.Calendars.EventsInCalendar(ctx, cal.ID)
		}
		if err != nil {
			return err
		}
		for _, ev := range events {
			enc.WriteEventProps(ms, h.href(ev.Path, false), ev, rep.Props)
		}

	case report.CalendarMultiget:
		for _, href := range rep.Hrefs {
			evPath, ok := h.reportPath(href)
			if !ok {
				multistatus.WriteStatus(ms, href, davxml.StatusNotFound)
				continue
			}
			ev, err := h.cfg.Calendars.EventByPath(ctx, evPath)
			if err != nil {
				if storage.IsNotFound(err) {
					multistatus.WriteStatus(ms, href, davxml.StatusNotFound)
					continue
				}
				return err
			}
			enc.WriteEventProps(ms, h.href(ev.Path, false), ev, rep.Props)
		}

	case report.SyncCollection:
		token, err := h.cfg.Calendars.SyncToken(ctx, cal.ID)
		if err != nil {
			return err
		}
		// The client's token is not diffed against; a stale or empty
		// token reports the full event set.
		events, err := h.cfg.Calendars.EventsInCalendar(ctx, cal.ID)
		if err != nil {
			return err
		}
		for _, ev := range events {
			enc.WriteEventProps(ms, h.href(ev.Path, false), ev, rep.Props)
		}
		multistatus.AddSyncToken(ms, token)

	default:
		return httpError(http.StatusBadRequest, "unsupported report")
	}

	return writeMultistatus(w, doc)
}

// reportPath maps a multiget href back to a resource path under the mount
// prefix.
func (h *Handler) reportPath(href string) (string, bool) {
	p := href
	if idx := strings.Index(p, "://"); idx >= 0 {
		rest := p[idx+3:]
		slash := strings.Index(rest, "/")
		if slash < 0 {
			return "", false
		}
		p = rest[slash:]
	}
	if h.cfg.URLPrefix != "" {
		var ok bool
		p, ok = strings.CutPrefix(p, h.cfg.URLPrefix)
		if !ok {
			return "", false
		}
	}
	if p == "" {
		return "", false
	}
	return "/" + strings.Trim(p, "/"), true
}
