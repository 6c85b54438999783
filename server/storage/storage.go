// Package storage defines the ports this protocol engine consumes. The
// engine owns no durable state; files, folders, calendars and events live
// behind these interfaces. Implementations must use the error types
// provided so the dispatcher can map failures to HTTP statuses.
package storage

import (
	"context"
	"io"
	"time"
)

// FileStore is the file port. Content flows as streams; metadata as *File.
type FileStore interface {
	FileByID(ctx context.Context, id string) (*File, error)
	FileByPath(ctx context.Context, path string) (*File, error)
	FilesInFolder(ctx context.Context, folderID string) ([]*File, error)
	// FileContent opens the file's content for reading.
	FileContent(ctx context.Context, id string) (io.ReadCloser, error)
	// CreateFile stores a new file and its content. The implementation
	// assigns ID and Path when empty.
	CreateFile(ctx context.Context, f *File, content io.Reader) error
	// UpdateContent replaces the content of an existing file in place,
	// keeping its id.
	UpdateContent(ctx context.Context, id string, content io.Reader) error
	MoveFile(ctx context.Context, id, newFolderID string) error
	RenameFile(ctx context.Context, id, newName string) error
	DeleteFile(ctx context.Context, id string) error
	SetFileProperty(ctx context.Context, id, name, value string) error
	RemoveFileProperty(ctx context.Context, id, name string) error
}

// FolderStore is the folder port. DeleteFolder applies the store's own
// recursion policy; the protocol layer never walks the subtree for delete.
type FolderStore interface {
	FolderByID(ctx context.Context, id string) (*Folder, error)
	FolderByPath(ctx context.Context, path string) (*Folder, error)
	Subfolders(ctx context.Context, parentID string) ([]*Folder, error)
	CreateFolder(ctx context.Context, f *Folder) error
	MoveFolder(ctx context.Context, id, newParentID string) error
	RenameFolder(ctx context.Context, id, newName string) error
	DeleteFolder(ctx context.Context, id string) error
	SetFolderProperty(ctx context.Context, id, name, value string) error
	RemoveFolderProperty(ctx context.Context, id, name string) error
}

// CalendarStore is the calendar port: calendar collections, their events,
// time-range queries and the per-calendar sync token.
type CalendarStore interface {
	CalendarByPath(ctx context.Context, path string) (*Calendar, error)
	CalendarsByOwner(ctx context.Context, ownerID string) ([]*Calendar, error)
	CreateCalendar(ctx context.Context, cal *Calendar) error
	DeleteCalendar(ctx context.Context, id string) error
	EventByPath(ctx context.Context, path string) (*CalendarEvent, error)
	EventsInCalendar(ctx context.Context, calendarID string) ([]*CalendarEvent, error)
	EventsInRange(ctx context.Context, calendarID string, start, end time.Time) ([]*CalendarEvent, error)
	// PutEvent creates the event or replaces the one with the same path.
	PutEvent(ctx context.Context, ev *CalendarEvent) error
	DeleteEvent(ctx context.Context, id string) error
	SetCalendarProperty(ctx context.Context, id, name, value string) error
	RemoveCalendarProperty(ctx context.Context, id, name string) error
	// SyncToken returns the collection's current sync token. It changes
	// whenever the event set changes.
	SyncToken(ctx context.Context, calendarID string) (string, error)
}
