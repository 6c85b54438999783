package server

import (
	"maps"
	"net/http"
	"path"

	"github.com/inakimalerba/OxiCloud/server/storage"
)

func (h *Handler) handleCopy(w http.ResponseWriter, r *http.Request, p, principal string) error {
	dest, err := h.destinationPath(r)
	if err != nil {
		return err
	}
	if insideSource(p, dest) {
		return httpError(http.StatusForbidden, "destination lies inside the source")
	}
	if h.locks.Conflict(dest, principal, submittedToken(r)) {
		return httpError(http.StatusLocked, "destination is locked")
	}

	ctx := r.Context()
	res, err := h.resolve(ctx, p)
	if err != nil {
		return err
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

	switch res.Kind {
	case KindFile:
		if err := h.copyFile(r, res.File, destParent.ID, dest); err != nil {
			return err
		}
	case KindFolder:
		d, err := depth(r)
		if err != nil {
			return err
		}
		folder := &storage.Folder{ParentID: destParent.ID, Name: path.Base(dest), Path: dest}
		if err := h.cfg.Folders.CreateFolder(ctx, folder); err != nil {
			return err
		}
		// A deep copy duplicates the immediate file children; nested
		// folders are not recursed into.
		if d != "0" {
			files, err := h.cfg.Files.FilesInFolder(ctx, res.Folder.ID)
			if err != nil {
				return err
			}
			for _, f := range files {
				if err := h.copyFile(r, f, folder.ID, dest+"/"+f.Name); err != nil {
					return err
				}
			}
		}
	default:
		return httpError(http.StatusForbidden, "calendar resources cannot be copied")
	}

	if replaced {
		w.WriteHeader(http.StatusNoContent)
	} else {
		w.WriteHeader(http.StatusCreated)
	}
	return nil
}

func (h *Handler) copyFile(r *http.Request, src *storage.File, folderID, destPath string) error {
	ctx := r.Context()
	content, err := h.cfg.Files.FileContent(ctx, src.ID)
	if err != nil {
		return err
	}
	defer content.Close()

	dup := &storage.File{
		FolderID:   folderID,
		Name:       path.Base(destPath),
		Path:       destPath,
		MimeType:   src.MimeType,
		Properties: maps.Clone(src.Properties),
	}
	return h.cfg.Files.CreateFile(ctx, dup, content)
}
