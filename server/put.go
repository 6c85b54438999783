package server

import (
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/inakimalerba/OxiCloud/server/storage"
)

func (h *Handler) handlePut(w http.ResponseWriter, r *http.Request, p, principal string) error {
	if h.locks.Conflict(p, principal, submittedToken(r)) {
		return httpError(http.StatusLocked, "resource is locked")
	}

	if inCalendarSpace(p) {
		return h.putEvent(w, r, p, principal)
	}

	ctx := r.Context()
	if f, err := h.cfg.Files.FileByPath(ctx, p); err == nil {
		if err := h.cfg.Files.UpdateContent(ctx, f.ID, r.Body); err != nil {
			return err
		}
		w.WriteHeader(http.StatusNoContent)
		return nil
	} else if !storage.IsNotFound(err) {
		return err
	}

	parent, err := h.parentOrRoot(ctx, p)
	if err != nil {
		return err
	}

	name := path.Base(p)
	f := &storage.File{
		FolderID: parent.ID,
		Name:     name,
		Path:     p,
		MimeType: strings.TrimSpace(strings.Split(r.Header.Get("Content-Type"), ";")[0]),
	}
	if err := h.cfg.Files.CreateFile(ctx, f, r.Body); err != nil {
		return err
	}
	w.WriteHeader(http.StatusCreated)
	return nil
}

// putEvent stores a calendar object: the body is parsed as iCalendar and
// the first VEVENT becomes the stored event.
func (h *Handler) putEvent(w http.ResponseWriter, r *http.Request, p, principal string) error {
	ctx := r.Context()
	calPath := parentPath(p)
	if calPath == calendarSpace {
		return httpError(http.StatusConflict, "events live inside a calendar collection")
	}
	cal, err := h.cfg.Calendars.CalendarByPath(ctx, calPath)
	if err != nil {
		if storage.IsNotFound(err) {
			return httpError(http.StatusConflict, "calendar does not exist")
		}
		return err
	}
	if !ownsCalendar(cal, principal) {
		return httpError(http.StatusForbidden, "calendar belongs to another principal")
	}

	calData, err := ical.NewDecoder(r.Body).Decode()
	if err != nil {
		return httpError(http.StatusBadRequest, "invalid iCalendar body")
	}
	ev, err := eventFromICal(calData, cal.ID, p)
	if err != nil {
		return err
	}

	_, existedErr := h.cfg.Calendars.EventByPath(ctx, p)
	if err := h.cfg.Calendars.PutEvent(ctx, ev); err != nil {
		return err
	}
	if existedErr == nil {
		w.WriteHeader(http.StatusNoContent)
	} else {
		w.WriteHeader(http.StatusCreated)
	}
	return nil
}

func eventFromICal(calData *ical.Calendar, calendarID, p string) (*storage.CalendarEvent, error) {
	for _, child := range calData.Children {
		if child.Name != ical.CompEvent {
			continue
		}
		ev := &storage.CalendarEvent{
			CalendarID: calendarID,
			Path:       p,
		}
		if prop := child.Props.Get(ical.PropUID); prop != nil {
			ev.ICalUID = prop.Value
		} else {
			ev.ICalUID = uuid.NewString()
		}
		if prop := child.Props.Get(ical.PropSummary); prop != nil {
			ev.Summary = prop.Value
		}
		if prop := child.Props.Get(ical.PropDescription); prop != nil {
			ev.Description = prop.Value
		}
		if prop := child.Props.Get(ical.PropLocation); prop != nil {
			ev.Location = prop.Value
		}
		if prop := child.Props.Get(ical.PropRecurrenceRule); prop != nil {
			ev.RRule = prop.Value
		}
		if start, err := child.Props.DateTime(ical.PropDateTimeStart, time.UTC); err == nil {
			ev.Start = start
		}
		if end, err := child.Props.DateTime(ical.PropDateTimeEnd, time.UTC); err == nil {
			ev.End = end
		}
		if ev.End.IsZero() {
			ev.End = ev.Start
		}
		if ev.End.Before(ev.Start) {
			return nil, httpError(http.StatusBadRequest, "event ends before it starts")
		}
		return ev, nil
	}
	return nil, httpError(http.StatusBadRequest, "calendar object has no VEVENT")
}
