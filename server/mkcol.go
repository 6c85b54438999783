package server

import (
	"io"
	"net/http"
	"path"

	"github.com/inakimalerba/OxiCloud/server/storage"
)

// handleMkcol creates a collection. In the calendar space this doubles as
// MKCALENDAR and creates a calendar owned by the acting principal.
func (h *Handler) handleMkcol(w http.ResponseWriter, r *http.Request, p, principal string) error {
	if p == "/" {
		return httpError(http.StatusConflict, "collection root already exists")
	}
	if h.locks.Conflict(p, principal, submittedToken(r)) {
		return httpError(http.StatusLocked, "resource is locked")
	}
	// Request bodies for MKCOL are not supported (RFC 4918 §9.3.1).
	if n, _ := io.Copy(io.Discard, io.LimitReader(r.Body, 1)); n > 0 && r.Method == "MKCOL" {
		return httpError(http.StatusUnsupportedMediaType, "MKCOL request bodies are not supported")
	}

	ctx := r.Context()
	if _, err := h.resolve(ctx, p); err == nil {
		return httpError(http.StatusConflict, "resource already exists")
	} else if !storage.IsNotFound(err) {
		return err
	}

	if inCalendarSpace(p) {
		if parentPath(p) != calendarSpace {
			return httpError(http.StatusConflict, "calendars are created directly under the calendar home")
		}
		cal := &storage.Calendar{
			OwnerID: principal,
			Name:    path.Base(p),
			Path:    p,
		}
		if err := h.cfg.Calendars.CreateCalendar(ctx, cal); err != nil {
			return err
		}
		w.WriteHeader(http.StatusCreated)
		return nil
	}

	parent, err := h.parentOrRoot(ctx, p)
	if err != nil {
		return err
	}
	folder := &storage.Folder{
		ParentID: parent.ID,
		Name:     path.Base(p),
		Path:     p,
	}
	if err := h.cfg.Folders.CreateFolder(ctx, folder); err != nil {
		return err
	}
	w.WriteHeader(http.StatusCreated)
	return nil
}
