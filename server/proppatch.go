package server

import (
	"context"
	"net/http"

	davxml "github.com/inakimalerba/OxiCloud/internal/xml"
	"github.com/inakimalerba/OxiCloud/internal/xml/multistatus"
	"github.com/inakimalerba/OxiCloud/internal/xml/proppatch"
)

// handleProppatch applies dead-property updates. Names in the DAV:
// namespace are protected and rejected with 403; everything else is
// stored or removed by local name. Removing an absent property still
// reports 200.
func (h *Handler) handleProppatch(w http.ResponseWriter, r *http.Request, p, principal string) error {
	update, err := proppatch.Parse(r.Body)
	if err != nil {
		return httpError(http.StatusBadRequest, "malformed PROPPATCH body")
	}
	if h.locks.Conflict(p, principal, submittedToken(r)) {
		return httpError(http.StatusLocked, "resource is locked")
	}

	ctx := r.Context()
	res, err := h.resolve(ctx, p)
	if err != nil {
		return err
	}
	set, remove := h.propertyOps(res, principal)

	var accepted, rejected []davxml.QualifiedName
	for _, pv := range update.Set {
		if pv.Name.Namespace == davxml.DAV || set == nil {
			rejected = append(rejected, pv.Name)
			continue
		}
		if err := set(ctx, pv.Name.Local, pv.Value.OrElse("")); err != nil {
			rejected = append(rejected, pv.Name)
			continue
		}
		accepted = append(accepted, pv.Name)
	}
	for _, name := range update.Remove {
		if name.Namespace == davxml.DAV || remove == nil {
			rejected = append(rejected, name)
			continue
		}
		if err := remove(ctx, name.Local); err != nil {
			rejected = append(rejected, name)
			continue
		}
		accepted = append(accepted, name)
	}

	doc, ms := multistatus.NewDocument()
	collection := res.Kind != KindFile && res.Kind != KindEvent
	h.encoder().WriteProppatch(ms, h.href(p, collection), accepted, rejected)
	return writeMultistatus(w, doc)
}

// propertyOps returns the set/remove operations for the resolved resource,
// or nils when it carries no dead properties.
func (h *Handler) propertyOps(res *Resource, principal string) (set func(context.Context, string, string) error, remove func(context.Context, string) error) {
	switch res.Kind {
	case KindFile:
		id := res.File.ID
		return func(ctx context.Context, name, value string) error {
				return h.cfg.Files.SetFileProperty(ctx, id, name, value)
			}, func(ctx context.Context, name string) error {
				return h.cfg.Files.RemoveFileProperty(ctx, id, name)
			}
	case KindFolder:
		id := res.Folder.ID
		return func(ctx context.Context, name, value string) error {
				return h.cfg.Folders.SetFolderProperty(ctx, id, name, value)
			}, func(ctx context.Context, name string) error {
				return h.cfg.Folders.RemoveFolderProperty(ctx, id, name)
			}
	case KindCalendar:
		if !ownsCalendar(res.Calendar, principal) {
			return nil, nil
		}
		id := res.Calendar.ID
		return func(ctx context.Context, name, value string) error {
				return h.cfg.Calendars.SetCalendarProperty(ctx, id, name, value)
			}, func(ctx context.Context, name string) error {
				return h.cfg.Calendars.RemoveCalendarProperty(ctx, id, name)
			}
	}
	return nil, nil
}
