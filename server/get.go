package server

import (
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/inakimalerba/OxiCloud/internal/xml/multistatus"
	"github.com/inakimalerba/OxiCloud/server/storage"
)

// fileContentType prefers the stored MIME type, falling back to the file
// name's extension.
func fileContentType(f *storage.File) string {
	if f.MimeType != "" {
		return f.MimeType
	}
	if mt := mime.TypeByExtension(path.Ext(f.Name)); mt != "" {
		return mt
	}
	return "application/octet-stream"
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, path string, headOnly bool) error {
	res, err := h.resolve(r.Context(), path)
	if err != nil {
		return err
	}

	switch res.Kind {
	case KindFile:
		return h.serveFile(w, r, res, headOnly)
	case KindEvent:
		body := h.encoder().CalendarData(res.Event)
		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Header().Set("ETag", `"`+res.Event.ID+`"`)
		if headOnly {
			w.WriteHeader(http.StatusOK)
			return nil
		}
		_, err := io.WriteString(w, body)
		return err
	default:
		return httpError(http.StatusBadRequest, "cannot GET a collection")
	}
}

func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request, res *Resource, headOnly bool) error {
	f := res.File
	w.Header().Set("Content-Type", fileContentType(f))
	w.Header().Set("Content-Length", strconv.FormatInt(f.Size, 10))
	w.Header().Set("ETag", `"`+f.ID+`"`)
	w.Header().Set("Last-Modified", f.Modified.UTC().Format(http.TimeFormat))
	if headOnly {
		w.WriteHeader(http.StatusOK)
		return nil
	}

	content, err := h.cfg.Files.FileContent(r.Context(), f.ID)
	if err != nil {
		return err
	}
	defer content.Close()
	if _, err := io.Copy(w, content); err != nil {
		h.log.Debug("content stream aborted", "path", res.Path, "err", err)
	}
	return nil
}

func (h *Handler) encoder() *multistatus.Encoder {
	return &multistatus.Encoder{Product: h.cfg.Product}
}
