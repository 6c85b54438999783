package server

import (
	"net/http"
	"path"
	"strings"

	"github.com/inakimalerba/OxiCloud/server/storage"
)

// insideSource reports whether dest is the source itself or falls below it.
// Moving or copying a collection into its own subtree would make it its own
// ancestor and leave the tree inconsistent (RFC 4918 §9.9.4).
func insideSource(src, dest string) bool {
	return dest == src || strings.HasPrefix(dest, src+"/")
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request, p, principal string) error {
	dest, err := h.destinationPath(r)
	if err != nil {
		return err
	}
	if insideSource(p, dest) {
		return httpError(http.StatusForbidden, "destination lies inside the source")
	}
	token := submittedToken(r)
	if h.locks.Conflict(p, principal, token) || h.locks.Conflict(dest, principal, token) {
		return httpError(http.StatusLocked, "resource is locked")
	}

	ctx := r.Context()
	res, err := h.resolve(ctx, p)
	if err != nil {
		return err
	}
	if res.Kind != KindFile && res.Kind != KindFolder {
		return httpError(http.StatusForbidden, "calendar resources cannot be moved")
	}

	replaced, err := h.clearDestination(r, dest)
	if err != nil {
		return err
	}

	destParent, err := h.cfg.Folders.FolderByPath(ctx, parentPath(dest))
	if err != nil {
		if storage.IsNotFound(err) {
			return httpError(http.StatusConflict, "destination parent does not exist")
		}
		return err
	}
	newName := path.Base(dest)

	// Reparent first, then rename; each step is skipped when it is
	// already in place.
	switch res.Kind {
	case KindFile:
		if res.File.FolderID != destParent.ID {
			if err := h.cfg.Files.MoveFile(ctx, res.File.ID, destParent.ID); err != nil {
				return err
			}
		}
		if res.File.Name != newName {
			if err := h.cfg.Files.RenameFile(ctx, res.File.ID, newName); err != nil {
				return err
			}
		}
	case KindFolder:
		if res.Folder.ParentID != destParent.ID {
			if err := h.cfg.Folders.MoveFolder(ctx, res.Folder.ID, destParent.ID); err != nil {
				return err
			}
		}
		if res.Folder.Name != newName {
			if err := h.cfg.Folders.RenameFolder(ctx, res.Folder.ID, newName); err != nil {
				return err
			}
		}
	}

	if replaced {
		w.WriteHeader(http.StatusNoContent)
	} else {
		w.WriteHeader(http.StatusCreated)
	}
	return nil
}

// clearDestination applies the Overwrite header: an existing destination
// fails with 412 under "F" and is deleted first otherwise. Reports whether
// a resource was replaced.
func (h *Handler) clearDestination(r *http.Request, dest string) (bool, error) {
	ctx := r.Context()
	existing, err := h.resolve(ctx, dest)
	if err != nil {
		if storage.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if r.Header.Get("Overwrite") == "F" {
		return false, httpError(http.StatusPreconditionFailed, "destination exists and Overwrite is F")
	}

	switch existing.Kind {
	case KindFile:
		err = h.cfg.Files.DeleteFile(ctx, existing.File.ID)
	case KindFolder:
		err = h.cfg.Folders.DeleteFolder(ctx, existing.Folder.ID)
	default:
		err = httpError(http.StatusForbidden, "destination cannot be replaced")
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
