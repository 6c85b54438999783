package server

import (
	"net/http"

	"github.com/beevik/etree"

	"github.com/inakimalerba/OxiCloud/internal/xml/multistatus"
	"github.com/inakimalerba/OxiCloud/internal/xml/propfind"
	"github.com/inakimalerba/OxiCloud/server/storage"
)

func (h *Handler) handlePropfind(w http.ResponseWriter, r *http.Request, p, principal string) error {
	req, err := propfind.Parse(r.Body)
	if err != nil {
		return httpError(http.StatusBadRequest, "malformed PROPFIND body")
	}
	d, err := depth(r)
	if err != nil {
		return err
	}

	res, err := h.resolve(r.Context(), p)
	if err != nil {
		return err
	}

	enc := h.encoder()
	doc, ms := multistatus.NewDocument()

	h.writeResource(ms, enc, res, principal, req)
	// Depth infinity listings are served as depth 1; unbounded subtree
	// walks are not offered.
	if d != "0" {
		if err := h.writeChildren(r, ms, enc, res, principal, req); err != nil {
			return err
		}
	}

	return writeMultistatus(w, doc)
}

func (h *Handler) writeResource(ms *etree.Element, enc *multistatus.Encoder, res *Resource, principal string, req propfind.Request) {
	switch res.Kind {
	case KindFile:
		enc.WriteFile(ms, h.href(res.Path, false), res.File, req)
	case KindFolder:
		enc.WriteFolder(ms, h.href(res.Path, true), res.Folder, req)
	case KindCalendarHome:
		// The calendar home is synthetic; it renders as a plain
		// collection.
		home := &storage.Folder{ID: "calendar-home", Name: "calendars", Path: res.Path}
		enc.WriteFolder(ms, h.href(res.Path, true), home, req)
	case KindCalendar:
		enc.WriteCalendar(ms, h.href(res.Path, true), res.Calendar, ownsCalendar(res.Calendar, principal), req)
	case KindEvent:
		enc.WriteEvent(ms, h.href(res.Path, false), res.Event, req)
	}
}

func (h *Handler) writeChildren(r *http.Request, ms *etree.Element, enc *multistatus.Encoder, res *Resource, principal string, req propfind.Request) error {
	ctx := r.Context()
	switch res.Kind {
	case KindFolder:
		subs, err := h.cfg.Folders.Subfolders(ctx, res.Folder.ID)
		if err != nil {
			return err
		}
		for _, sub := range subs {
			enc.WriteFolder(ms, h.href(sub.Path, true), sub, req)
		}
		files, err := h.cfg.Files.FilesInFolder(ctx, res.Folder.ID)
		if err != nil {
			return err
		}
		for _, f := range files {
			enc.WriteFile(ms, h.href(f.Path, false), f, req)
		}
	case KindCalendarHome:
		cals, err := h.cfg.Calendars.CalendarsByOwner(ctx, principal)
		if err != nil {
			return err
		}
		for _, cal := range cals {
			enc.WriteCalendar(ms, h.href(cal.Path, true), cal, ownsCalendar(cal, principal), req)
		}
	case KindCalendar:
		events, err := h.cfg.Calendars.EventsInCalendar(ctx, res.Calendar.ID)
		if err != nil {
			return err
		}
		for _, ev := range events {
			enc.WriteEvent(ms, h.href(ev.Path, false), ev, req)
		}
	}
	return nil
}

func writeMultistatus(w http.ResponseWriter, doc *etree.Document) error {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusMultiStatus)
	_, err := doc.WriteTo(w)
	return err
}
