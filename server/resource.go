package server

import (
	"context"
	"net/http"
	"path"
	"strings"

	"github.com/inakimalerba/OxiCloud/server/storage"
)

// ResourceKind classifies what a request path points at.
type ResourceKind int

const (
	KindUnknown ResourceKind = iota
	KindFolder
	KindFile
	KindCalendarHome
	KindCalendar
	KindEvent
)

// Resource is a resolved request target. Exactly one of the pointers is
// set, matching Kind; the calendar home has none.
type Resource struct {
	Kind     ResourceKind
	Path     string
	File     *storage.File
	Folder   *storage.Folder
	Calendar *storage.Calendar
	Event    *storage.CalendarEvent
}

// calendarSpace is the top-level segment under which calendar collections
// and their events live.
const calendarSpace = "/calendars"

func inCalendarSpace(p string) bool {
	return p == calendarSpace || strings.HasPrefix(p, calendarSpace+"/")
}

// resolve maps a path to its resource. Calendar-space paths resolve to the
// home, a calendar or an event; everything else tries folders first and
// files second.
func (h *Handler) resolve(ctx context.Context, p string) (*Resource, error) {
	if inCalendarSpace(p) {
		return h.resolveCalendarSpace(ctx, p)
	}

	if folder, err := h.cfg.Folders.FolderByPath(ctx, p); err == nil {
		return &Resource{Kind: KindFolder, Path: p, Folder: folder}, nil
	} else if !storage.IsNotFound(err) {
		return nil, err
	}
	if f, err := h.cfg.Files.FileByPath(ctx, p); err == nil {
		return &Resource{Kind: KindFile, Path: p, File: f}, nil
	} else if !storage.IsNotFound(err) {
		return nil, err
	}
	return nil, storage.NotFound("no resource at " + p)
}

func (h *Handler) resolveCalendarSpace(ctx context.Context, p string) (*Resource, error) {
	if p == calendarSpace {
		return &Resource{Kind: KindCalendarHome, Path: p}, nil
	}

	rest := strings.TrimPrefix(p, calendarSpace+"/")
	if !strings.Contains(rest, "/") {
		cal, err := h.cfg.Calendars.CalendarByPath(ctx, p)
		if err != nil {
			return nil, err
		}
		return &Resource{Kind: KindCalendar, Path: p, Calendar: cal}, nil
	}

	ev, err := h.cfg.Calendars.EventByPath(ctx, p)
	if err != nil {
		return nil, err
	}
	return &Resource{Kind: KindEvent, Path: p, Event: ev}, nil
}

// parentPath returns the collection path containing p; "/" for top-level
// names.
func parentPath(p string) string {
	dir := path.Dir(p)
	if dir == "." || dir == "" {
		return "/"
	}
	return dir
}

// parentOrRoot resolves the parent folder of p for PUT and MKCOL. An
// unresolvable parent path falls back to the root folder; the new resource
// still keeps its full requested path.
func (h *Handler) parentOrRoot(ctx context.Context, p string) (*storage.Folder, error) {
	parent, err := h.cfg.Folders.FolderByPath(ctx, parentPath(p))
	if err == nil {
		return parent, nil
	}
	if !storage.IsNotFound(err) {
		return nil, err
	}
	return h.cfg.Folders.FolderByPath(ctx, "/")
}

// ownsCalendar reports whether principal may write cal. An empty owner on
// the calendar means it is open.
func ownsCalendar(cal *storage.Calendar, principal string) bool {
	return cal.OwnerID == "" || cal.OwnerID == principal
}

// depth reads the Depth header. Missing means infinity per RFC 4918 §10.2.
func depth(r *http.Request) (string, error) {
	switch d := r.Header.Get("Depth"); d {
	case "":
		return "infinity", nil
	case "0", "1", "infinity":
		return d, nil
	default:
		return "", httpError(http.StatusBadRequest, "invalid Depth header")
	}
}

// destinationPath extracts the resource path from a Destination header,
// which may be absolute or path-only, and must fall under the mount
// prefix.
func (h *Handler) destinationPath(r *http.Request) (string, error) {
	dest := r.Header.Get("Destination")
	if dest == "" {
		return "", httpError(http.StatusBadRequest, "missing Destination header")
	}
	if idx := strings.Index(dest, "://"); idx >= 0 {
		rest := dest[idx+3:]
		slash := strings.Index(rest, "/")
		if slash < 0 {
			return "", httpError(http.StatusBadRequest, "invalid Destination header")
		}
		dest = rest[slash:]
	}
	if h.cfg.URLPrefix != "" {
		var ok bool
		dest, ok = strings.CutPrefix(dest, h.cfg.URLPrefix)
		if !ok {
			return "", httpError(http.StatusBadRequest, "destination outside this server")
		}
	}
	if dest == "" || dest == "/" {
		return "", httpError(http.StatusForbidden, "destination is the collection root")
	}
	return "/" + strings.Trim(dest, "/"), nil
}

// submittedToken extracts a lock token from the If header, e.g.
// "(<opaquelocktoken:...>)". Tagged lists and etags are not supported;
// only the first token matters.
func submittedToken(r *http.Request) string {
	value := r.Header.Get("If")
	open := strings.Index(value, "<")
	end := strings.Index(value, ">")
	if open < 0 || end <= open {
		return ""
	}
	return value[open+1 : end]
}

// lockTokenHeader reads the Lock-Token header, stripping the angle
// brackets.
func lockTokenHeader(r *http.Request) string {
	value := strings.TrimSpace(r.Header.Get("Lock-Token"))
	value = strings.TrimPrefix(value, "<")
	return strings.TrimSuffix(value, ">")
}
