package server

import (
	"net/http"

	"github.com/inakimalerba/OxiCloud/internal/lock"
	"github.com/inakimalerba/OxiCloud/internal/xml/multistatus"
	"github.com/inakimalerba/OxiCloud/server/storage"
)

// handleLock issues or refreshes a write lock. A request without a body
// refreshes the lock named in the If header; otherwise the lockinfo body
// is parsed and a fresh token is issued.
func (h *Handler) handleLock(w http.ResponseWriter, r *http.Request, p, principal string) error {
	d, err := depth(r)
	if err != nil {
		return err
	}
	timeout := r.Header.Get("Timeout")

	if r.ContentLength == 0 {
		token := submittedToken(r)
		if token == "" {
			return httpError(http.StatusBadRequest, "refresh requires an If header with the lock token")
		}
		info, err := h.locks.Refresh(p, token, timeout)
		if err != nil {
			return err
		}
		return h.writeLockResponse(w, info, http.StatusOK)
	}

	req, err := lock.ParseLockInfo(r.Body)
	if err != nil {
		return httpError(http.StatusBadRequest, "malformed LOCK body")
	}

	// Locking an unmapped path is allowed; the lock then guards the name
	// until something is created there.
	status := http.StatusOK
	if _, err := h.resolve(r.Context(), p); err != nil {
		if !storage.IsNotFound(err) {
			return err
		}
		status = http.StatusCreated
	}

	info, err := h.locks.Lock(p, principal, req, d, timeout)
	if err != nil {
		return err
	}
	w.Header().Set("Lock-Token", "<"+info.Token+">")
	return h.writeLockResponse(w, info, status)
}

func (h *Handler) writeLockResponse(w http.ResponseWriter, info lock.Info, status int) error {
	doc := multistatus.LockDiscovery(info)
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(status)
	_, err := doc.WriteTo(w)
	return err
}

func (h *Handler) handleUnlock(w http.ResponseWriter, r *http.Request, p, principal string) error {
	token := lockTokenHeader(r)
	if token == "" {
		return httpError(http.StatusBadRequest, "missing Lock-Token header")
	}
	if err := h.locks.Unlock(p, token, principal); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
