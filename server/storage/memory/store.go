// Package memory is a map-backed implementation of the storage ports,
// used as the reference store in tests and examples.
package memory

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inakimalerba/OxiCloud/server/storage"
)

// Store implements storage.FileStore, storage.FolderStore and
// storage.CalendarStore using in-memory maps guarded by one mutex.
type Store struct {
	mu        sync.RWMutex
	files     map[string]*storage.File   // key: file id
	folders   map[string]*storage.Folder // key: folder id
	contents  map[string][]byte          // key: file id
	calendars map[string]*storage.Calendar
	events    map[string]*storage.CalendarEvent
	syncSeq   map[string]int // calendar id -> change counter

	now func() time.Time
}

// New creates an empty store holding only the root folder.
func New() *Store {
	s := &Store{
		files:     make(map[string]*storage.File),
		folders:   make(map[string]*storage.Folder),
		contents:  make(map[string][]byte),
		calendars: make(map[string]*storage.Calendar),
		events:    make(map[string]*storage.CalendarEvent),
		syncSeq:   make(map[string]int),
		now:       time.Now,
	}
	root := &storage.Folder{
		ID:       "root",
		Name:     "/",
		Path:     "/",
		Created:  s.now(),
		Modified: s.now(),
	}
	s.folders[root.ID] = root
	return s
}

func normalize(p string) string {
	p = "/" + strings.Trim(p, "/")
	return p
}

// File operations

func (s *Store) FileByID(_ context.Context, id string) (*storage.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[id]
	if !ok {
		return nil, storage.NotFound("file not found")
	}
	cp := *f
	return &cp, nil
}

func (s *Store) FileByPath(_ context.Context, p string) (*storage.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p = normalize(p)
	for _, f := range s.files {
		if f.Path == p {
			cp := *f
			return &cp, nil
		}
	}
	return nil, storage.NotFound("file not found")
}

func (s *Store) FilesInFolder(_ context.Context, folderID string) ([]*storage.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*storage.File
	for _, f := range s.files {
		if f.FolderID == folderID {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *Store) FileContent(_ context.Context, id string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.contents[id]
	if !ok {
		return nil, storage.NotFound("file not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *Store) CreateFile(_ context.Context, f *storage.File, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return &storage.Error{Type: storage.ErrInvalidInput, Message: "read content", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	parent, ok := s.folders[f.FolderID]
	if !ok {
		return storage.NotFound("parent folder not found")
	}
	if f.Path == "" {
		f.Path = childPath(parent.Path, f.Name)
	}
	f.Size = int64(len(data))
	if f.Created.IsZero() {
		f.Created = s.now()
	}
	f.Modified = s.now()
	cp := *f
	s.files[f.ID] = &cp
	s.contents[f.ID] = data
	return nil
}

func (s *Store) UpdateContent(_ context.Context, id string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return &storage.Error{Type: storage.ErrInvalidInput, Message: "read content", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[id]
	if !ok {
		return storage.NotFound("file not found")
	}
	s.contents[id] = data
	f.Size = int64(len(data))
	f.Modified = s.now()
	return nil
}

func (s *Store) MoveFile(_ context.Context, id, newFolderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[id]
	if !ok {
		return storage.NotFound("file not found")
	}
	parent, ok := s.folders[newFolderID]
	if !ok {
		return storage.NotFound("destination folder not found")
	}
	f.FolderID = newFolderID
	f.Path = childPath(parent.Path, f.Name)
	f.Modified = s.now()
	return nil
}

func (s *Store) RenameFile(_ context.Context, id, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[id]
	if !ok {
		return storage.NotFound("file not found")
	}
	f.Name = newName
	f.Path = childPath(path.Dir(f.Path), newName)
	f.Modified = s.now()
	return nil
}

func (s *Store) DeleteFile(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[id]; !ok {
		return storage.NotFound("file not found")
	}
	delete(s.files, id)
	delete(s.contents, id)
	return nil
}

func (s *Store) SetFileProperty(_ context.Context, id, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[id]
	if !ok {
		return storage.NotFound("file not found")
	}
	if f.Properties == nil {
		f.Properties = make(map[string]string)
	}
	f.Properties[name] = value
	return nil
}

func (s *Store) RemoveFileProperty(_ context.Context, id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[id]
	if !ok {
		return storage.NotFound("file not found")
	}
	delete(f.Properties, name)
	return nil
}

// Folder operations

func (s *Store) FolderByID(_ context.Context, id string) (*storage.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.folders[id]
	if !ok {
		return nil, storage.NotFound("folder not found")
	}
	cp := *f
	return &cp, nil
}

func (s *Store) FolderByPath(_ context.Context, p string) (*storage.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p = normalize(p)
	for _, f := range s.folders {
		if f.Path == p {
			cp := *f
			return &cp, nil
		}
	}
	return nil, storage.NotFound("folder not found")
}

func (s *Store) Subfolders(_ context.Context, parentID string) ([]*storage.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*storage.Folder
	for _, f := range s.folders {
		if f.ParentID == parentID && f.ID != f.ParentID {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *Store) CreateFolder(_ context.Context, f *storage.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	parent, ok := s.folders[f.ParentID]
	if !ok {
		return storage.NotFound("parent folder not found")
	}
	if f.Path == "" {
		f.Path = childPath(parent.Path, f.Name)
	}
	for _, existing := range s.folders {
		if existing.Path == f.Path {
			return &storage.Error{Type: storage.ErrAlreadyExists, Message: "folder exists"}
		}
	}
	if f.Created.IsZero() {
		f.Created = s.now()
	}
	f.Modified = s.now()
	cp := *f
	s.folders[f.ID] = &cp
	return nil
}

func (s *Store) MoveFolder(_ context.Context, id, newParentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.folders[id]
	if !ok {
		return storage.NotFound("folder not found")
	}
	parent, ok := s.folders[newParentID]
	if !ok {
		return storage.NotFound("destination folder not found")
	}
	oldPath := f.Path
	f.ParentID = newParentID
	f.Path = childPath(parent.Path, f.Name)
	f.Modified = s.now()
	s.rebase(oldPath, f.Path)
	return nil
}

func (s *Store) RenameFolder(_ context.Context, id, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.folders[id]
	if !ok {
		return storage.NotFound("folder not found")
	}
	oldPath := f.Path
	f.Name = newName
	f.Path = childPath(path.Dir(f.Path), newName)
	f.Modified = s.now()
	s.rebase(oldPath, f.Path)
	return nil
}

// DeleteFolder removes the folder and everything below it. The walk is an
// explicit worklist with a visited set; parent links in a corrupted store
// can form cycles and must not hang the delete.
func (s *Store) DeleteFolder(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.folders[id]; !ok {
		return storage.NotFound("folder not found")
	}

	pending := []string{id}
	visited := make(map[string]bool)
	for len(pending) > 0 {
		cur := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if visited[cur] {
			continue
		}
		visited[cur] = true

		for fid, f := range s.files {
			if f.FolderID == cur {
				delete(s.files, fid)
				delete(s.contents, fid)
			}
		}
		for cid, child := range s.folders {
			if child.ParentID == cur && cid != cur {
				pending = append(pending, cid)
			}
		}
		delete(s.folders, cur)
	}
	return nil
}

func (s *Store) SetFolderProperty(_ context.Context, id, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.folders[id]
	if !ok {
		return storage.NotFound("folder not found")
	}
	if f.Properties == nil {
		f.Properties = make(map[string]string)
	}
	f.Properties[name] = value
	return nil
}

func (s *Store) RemoveFolderProperty(_ context.Context, id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.folders[id]
	if !ok {
		return storage.NotFound("folder not found")
	}
	delete(f.Properties, name)
	return nil
}

// rebase rewrites the paths of everything under oldPrefix after a folder
// move or rename. Callers hold mu.
func (s *Store) rebase(oldPrefix, newPrefix string) {
	for _, f := range s.files {
		if strings.HasPrefix(f.Path, oldPrefix+"/") {
			f.Path = newPrefix + strings.TrimPrefix(f.Path, oldPrefix)
		}
	}
	for _, f := range s.folders {
		if strings.HasPrefix(f.Path, oldPrefix+"/") {
			f.Path = newPrefix + strings.TrimPrefix(f.Path, oldPrefix)
		}
	}
}

func childPath(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}
