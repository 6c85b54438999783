package server

import (
	"net/http"
)

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request, p, principal string) error {
	if h.locks.Conflict(p, principal, submittedToken(r)) {
		return httpError(http.StatusLocked, "resource is locked")
	}
	if p == "/" {
		return httpError(http.StatusForbidden, "cannot delete the collection root")
	}

	res, err := h.resolve(r.Context(), p)
	if err != nil {
		return err
	}

	ctx := r.Context()
	switch res.Kind {
	case KindFile:
		err = h.cfg.Files.DeleteFile(ctx, res.File.ID)
	case KindFolder:
		err = h.cfg.Folders.DeleteFolder(ctx, res.Folder.ID)
	case KindCalendar:
		if !ownsCalendar(res.Calendar, principal) {
			return httpError(http.StatusForbidden, "calendar belongs to another principal")
		}
		err = h.cfg.Calendars.DeleteCalendar(ctx, res.Calendar.ID)
	case KindEvent:
		err = h.cfg.Calendars.DeleteEvent(ctx, res.Event.ID)
	default:
		return httpError(http.StatusForbidden, "cannot delete this resource")
	}
	if err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
