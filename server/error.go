package server

import (
	"fmt"
	"net/http"

	"github.com/beevik/etree"

	"github.com/inakimalerba/OxiCloud/internal/lock"
	davxml "github.com/inakimalerba/OxiCloud/internal/xml"
	"github.com/inakimalerba/OxiCloud/server/storage"
)

// HTTPError carries the status a handler wants the client to see, plus the
// underlying cause for logging.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error { return e.Err }

func httpError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

// toHTTPError maps any handler error to an HTTPError. Storage and lock
// errors have fixed status mappings; everything else is a 500.
func toHTTPError(err error) *HTTPError {
	if he, ok := err.(*HTTPError); ok {
		return he
	}
	switch {
	case storage.IsNotFound(err):
		return &HTTPError{Status: http.StatusNotFound, Message: "resource not found", Err: err}
	case storage.IsAlreadyExists(err):
		return &HTTPError{Status: http.StatusConflict, Message: "resource already exists", Err: err}
	case err == lock.ErrConflict:
		return &HTTPError{Status: http.StatusLocked, Message: "resource is locked", Err: err}
	case err == lock.ErrTokenUnknown:
		return &HTTPError{Status: http.StatusPreconditionFailed, Message: "lock token does not match", Err: err}
	}
	return &HTTPError{Status: http.StatusInternalServerError, Message: "internal error", Err: err}
}

// sendError writes the error response with a small D:error body.
func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, err error) {
	he := toHTTPError(err)
	if he.Status >= http.StatusInternalServerError {
		h.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", he.Err)
	} else {
		h.log.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", he.Status, "msg", he.Message)
	}

	doc := etree.NewDocument()
	root := doc.CreateElement(davxml.TagError)
	root.Space = davxml.PrefixDAV
	davxml.AddNamespaces(doc)
	root.SetText(he.Message)

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(he.Status)
	_, _ = doc.WriteTo(w)
}
