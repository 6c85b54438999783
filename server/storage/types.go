package storage

import (
	"errors"
	"fmt"
	"time"
)

// Error types
type ErrorType string

const (
	ErrNotFound      ErrorType = "not_found"
	ErrAlreadyExists ErrorType = "already_exists"
	ErrInvalidInput  ErrorType = "invalid_input"
)

// Error represents a storage-related error
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound builds a not_found error.
func NotFound(message string) *Error {
	return &Error{Type: ErrNotFound, Message: message}
}

// IsNotFound reports whether err is a not_found storage error.
func IsNotFound(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Type == ErrNotFound
}

// IsAlreadyExists reports whether err is an already_exists storage error.
func IsAlreadyExists(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Type == ErrAlreadyExists
}

// File is a stored file projected for protocol rendering. Properties holds
// custom WebDAV properties keyed by local name.
type File struct {
	ID         string
	FolderID   string // empty for the root folder
	Name       string
	Path       string
	Size       int64
	MimeType   string
	Created    time.Time
	Modified   time.Time
	Properties map[string]string
}

// Folder is a stored folder. The root folder has path "/" and an empty
// ParentID.
type Folder struct {
	ID         string
	ParentID   string
	Name       string
	Path       string
	Created    time.Time
	Modified   time.Time
	Properties map[string]string
}

// Calendar is a calendar collection. Description and Color are empty when
// unset.
type Calendar struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Color       string
	Path        string
	Created     time.Time
	Modified    time.Time
	Properties  map[string]string
}

// CalendarEvent is a single VEVENT. RRule is the raw recurrence rule, empty
// when the event does not recur.
type CalendarEvent struct {
	ID          string
	CalendarID  string
	ICalUID     string
	Summary     string
	Description string
	Location    string
	Path        string
	Start       time.Time
	End         time.Time
	AllDay      bool
	RRule       string
	Created     time.Time
	Modified    time.Time
}
