// Package server dispatches WebDAV and CalDAV requests over the storage
// ports: it interprets request XML, enforces write locks and renders
// multistatus responses. It is stateless apart from the lock table.
package server

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/inakimalerba/OxiCloud/internal/lock"
	"github.com/inakimalerba/OxiCloud/server/storage"
)

// Config configures a Handler. Files, Folders and Calendars are required;
// everything else has a usable default.
type Config struct {
	// URLPrefix is the path the handler is mounted on, e.g. "/dav".
	URLPrefix string
	// Realm is the basic-auth realm advertised on 401 responses.
	Realm string
	// Logger receives request logs. Defaults to a discard logger.
	Logger *slog.Logger
	// Product is the vendor token in synthesized iCalendar PRODID lines.
	Product string
	// Principal extracts the acting principal from a request. Defaults
	// to the basic-auth username, which may be empty.
	Principal func(r *http.Request) string

	Files     storage.FileStore
	Folders   storage.FolderStore
	Calendars storage.CalendarStore
}

// Handler serves the DAV method set. Create one with NewHandler.
type Handler struct {
	cfg   Config
	log   *slog.Logger
	locks *lock.Manager
}

// NewHandler builds a Handler from cfg, normalizing the URL prefix and
// filling defaults.
func NewHandler(cfg Config) *Handler {
	cfg.URLPrefix = "/" + strings.Trim(cfg.URLPrefix, "/")
	if cfg.URLPrefix == "/" {
		cfg.URLPrefix = ""
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Principal == nil {
		cfg.Principal = func(r *http.Request) string {
			user, _, _ := r.BasicAuth()
			return user
		}
	}
	return &Handler{
		cfg:   cfg,
		log:   cfg.Logger,
		locks: lock.NewManager(),
	}
}

// Locks exposes the lock table, mainly for tests and shutdown inspection.
func (h *Handler) Locks() *lock.Manager { return h.locks }

// davPath strips the mount prefix and normalizes the resource path.
func (h *Handler) davPath(r *http.Request) (string, bool) {
	p := r.URL.Path
	if h.cfg.URLPrefix != "" {
		var ok bool
		p, ok = strings.CutPrefix(p, h.cfg.URLPrefix)
		if !ok {
			return "", false
		}
	}
	if p == "" {
		p = "/"
	}
	if p != "/" {
		p = "/" + strings.Trim(p, "/")
	}
	return p, true
}

// href renders the client-visible URL of a resource path. Collections get
// a trailing slash.
func (h *Handler) href(path string, collection bool) string {
	href := h.cfg.URLPrefix + path
	if collection && !strings.HasSuffix(href, "/") {
		href += "/"
	}
	return href
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path, ok := h.davPath(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	principal := h.cfg.Principal(r)
	if h.cfg.Realm != "" && principal == "" {
		w.Header().Set("WWW-Authenticate", `Basic realm="`+h.cfg.Realm+`"`)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	h.log.Debug("dav request", "method", r.Method, "path", path, "principal", principal)

	var err error
	switch r.Method {
	case http.MethodOptions:
		h.handleOptions(w, r)
	case http.MethodGet:
		err = h.handleGet(w, r, path, false)
	case http.MethodHead:
		err = h.handleGet(w, r, path, true)
	case http.MethodPut:
		err = h.handlePut(w, r, path, principal)
	case http.MethodDelete:
		err = h.handleDelete(w, r, path, principal)
	case "MKCOL", "MKCALENDAR":
		err = h.handleMkcol(w, r, path, principal)
	case "COPY":
		err = h.handleCopy(w, r, path, principal)
	case "MOVE":
		err = h.handleMove(w, r, path, principal)
	case "PROPFIND":
		err = h.handlePropfind(w, r, path, principal)
	case "PROPPATCH":
		err = h.handleProppatch(w, r, path, principal)
	case "LOCK":
		err = h.handleLock(w, r, path, principal)
	case "UNLOCK":
		err = h.handleUnlock(w, r, path, principal)
	case "REPORT":
		err = h.handleReport(w, r, path, principal)
	default:
		err = httpError(http.StatusMethodNotAllowed, "method not allowed")
	}
	if err != nil {
		h.sendError(w, r, err)
	}
}

const allowedMethods = "OPTIONS, GET, HEAD, PUT, DELETE, MKCOL, MKCALENDAR, COPY, MOVE, PROPFIND, PROPPATCH, LOCK, UNLOCK, REPORT"

func (h *Handler) handleOptions(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("DAV", "1, 2, calendar-access")
	w.Header().Set("Allow", allowedMethods)
	w.WriteHeader(http.StatusOK)
}
