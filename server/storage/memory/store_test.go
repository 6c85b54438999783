package memory

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inakimalerba/OxiCloud/server/storage"
)

func TestCreateAndReadFile(t *testing.T) {
	s := New()
	ctx := context.Background()

	f := &storage.File{FolderID: "root", Name: "notes.txt"}
	require.NoError(t, s.CreateFile(ctx, f, strings.NewReader("hello")))
	assert.NotEmpty(t, f.ID)
	assert.Equal(t, "/notes.txt", f.Path)
	assert.Equal(t, int64(5), f.Size)

	got, err := s.FileByPath(ctx, "/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, f.ID, got.ID)

	content, err := s.FileContent(ctx, f.ID)
	require.NoError(t, err)
	data, err := io.ReadAll(content)
	require.NoError(t, err)
	require.NoError(t, content.Close())
	assert.Equal(t, "hello", string(data))
}

func TestCreateFileMissingParent(t *testing.T) {
	s := New()
	f := &storage.File{FolderID: "nope", Name: "x.txt"}
	err := s.CreateFile(context.Background(), f, strings.NewReader(""))
	assert.True(t, storage.IsNotFound(err))
}

func TestUpdateContent(t *testing.T) {
	s := New()
	ctx := context.Background()
	f := &storage.File{FolderID: "root", Name: "notes.txt"}
	require.NoError(t, s.CreateFile(ctx, f, strings.NewReader("v1")))

	require.NoError(t, s.UpdateContent(ctx, f.ID, strings.NewReader("version two")))
	got, err := s.FileByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.Size)
}

func TestFolderTreeAndRebase(t *testing.T) {
	s := New()
	ctx := context.Background()

	docs := &storage.Folder{ParentID: "root", Name: "docs"}
	require.NoError(t, s.CreateFolder(ctx, docs))
	sub := &storage.Folder{ParentID: docs.ID, Name: "sub"}
	require.NoError(t, s.CreateFolder(ctx, sub))
	f := &storage.File{FolderID: sub.ID, Name: "deep.txt"}
	require.NoError(t, s.CreateFile(ctx, f, strings.NewReader("x")))

	require.NoError(t, s.RenameFolder(ctx, docs.ID, "papers"))

	got, err := s.FileByPath(ctx, "/papers/sub/deep.txt")
	require.NoError(t, err)
	assert.Equal(t, f.ID, got.ID)

	_, err = s.FileByPath(ctx, "/docs/sub/deep.txt")
	assert.True(t, storage.IsNotFound(err))

	movedSub, err := s.FolderByPath(ctx, "/papers/sub")
	require.NoError(t, err)
	assert.Equal(t, sub.ID, movedSub.ID)
}

func TestMoveFolder(t *testing.T) {
	s := New()
	ctx := context.Background()

	a := &storage.Folder{ParentID: "root", Name: "a"}
	require.NoError(t, s.CreateFolder(ctx, a))
	b := &storage.Folder{ParentID: "root", Name: "b"}
	require.NoError(t, s.CreateFolder(ctx, b))
	f := &storage.File{FolderID: a.ID, Name: "f.txt"}
	require.NoError(t, s.CreateFile(ctx, f, strings.NewReader("x")))

	require.NoError(t, s.MoveFolder(ctx, a.ID, b.ID))

	moved, err := s.FolderByPath(ctx, "/b/a")
	require.NoError(t, err)
	assert.Equal(t, a.ID, moved.ID)

	inner, err := s.FileByPath(ctx, "/b/a/f.txt")
	require.NoError(t, err)
	assert.Equal(t, f.ID, inner.ID)
}

func TestCreateFolderDuplicatePath(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateFolder(ctx, &storage.Folder{ParentID: "root", Name: "docs"}))
	err := s.CreateFolder(ctx, &storage.Folder{ParentID: "root", Name: "docs"})
	assert.True(t, storage.IsAlreadyExists(err))
}

func TestDeleteFolderRecurses(t *testing.T) {
	s := New()
	ctx := context.Background()

	docs := &storage.Folder{ParentID: "root", Name: "docs"}
	require.NoError(t, s.CreateFolder(ctx, docs))
	sub := &storage.Folder{ParentID: docs.ID, Name: "sub"}
	require.NoError(t, s.CreateFolder(ctx, sub))
	f := &storage.File{FolderID: sub.ID, Name: "deep.txt"}
	require.NoError(t, s.CreateFile(ctx, f, strings.NewReader("x")))

	require.NoError(t, s.DeleteFolder(ctx, docs.ID))

	_, err := s.FolderByPath(ctx, "/docs/sub")
	assert.True(t, storage.IsNotFound(err))
	_, err = s.FileByID(ctx, f.ID)
	assert.True(t, storage.IsNotFound(err))
}

func TestSubfoldersOfRoot(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateFolder(ctx, &storage.Folder{ParentID: "root", Name: "a"}))
	require.NoError(t, s.CreateFolder(ctx, &storage.Folder{ParentID: "root", Name: "b"}))

	subs, err := s.Subfolders(ctx, "root")
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}

func TestFileProperties(t *testing.T) {
	s := New()
	ctx := context.Background()
	f := &storage.File{FolderID: "root", Name: "notes.txt"}
	require.NoError(t, s.CreateFile(ctx, f, strings.NewReader("")))

	require.NoError(t, s.SetFileProperty(ctx, f.ID, "author", "Jane"))
	got, err := s.FileByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Properties["author"])

	require.NoError(t, s.RemoveFileProperty(ctx, f.ID, "author"))
	got, err = s.FileByID(ctx, f.ID)
	require.NoError(t, err)
	assert.NotContains(t, got.Properties, "author")
}

func TestCalendarLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	cal := &storage.Calendar{OwnerID: "alice", Name: "Work", Path: "/calendars/work"}
	require.NoError(t, s.CreateCalendar(ctx, cal))

	err := s.CreateCalendar(ctx, &storage.Calendar{OwnerID: "bob", Name: "Dup", Path: "/calendars/work"})
	assert.True(t, storage.IsAlreadyExists(err))

	mine, err := s.CalendarsByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, cal.ID, mine[0].ID)

	ev := &storage.CalendarEvent{
		CalendarID: cal.ID,
		Summary:    "Standup",
		Path:       "/calendars/work/standup.ics",
		Start:      time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, s.PutEvent(ctx, ev))

	require.NoError(t, s.DeleteCalendar(ctx, cal.ID))
	_, err = s.EventByPath(ctx, ev.Path)
	assert.True(t, storage.IsNotFound(err), "events go with their calendar")
}

func TestPutEventReplacesByPath(t *testing.T) {
	s := New()
	ctx := context.Background()
	cal := &storage.Calendar{OwnerID: "alice", Name: "Work", Path: "/calendars/work"}
	require.NoError(t, s.CreateCalendar(ctx, cal))

	first := &storage.CalendarEvent{
		CalendarID: cal.ID,
		Summary:    "v1",
		Path:       "/calendars/work/e.ics",
		Start:      time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.PutEvent(ctx, first))

	second := &storage.CalendarEvent{
		CalendarID: cal.ID,
		Summary:    "v2",
		Path:       "/calendars/work/e.ics",
		Start:      first.Start,
		End:        first.End,
	}
	require.NoError(t, s.PutEvent(ctx, second))

	got, err := s.EventByPath(ctx, "/calendars/work/e.ics")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID, "replacement keeps the original id")
	assert.Equal(t, "v2", got.Summary)

	all, err := s.EventsInCalendar(ctx, cal.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSyncTokenAdvances(t *testing.T) {
	s := New()
	ctx := context.Background()
	cal := &storage.Calendar{OwnerID: "alice", Name: "Work", Path: "/calendars/work"}
	require.NoError(t, s.CreateCalendar(ctx, cal))

	before, err := s.SyncToken(ctx, cal.ID)
	require.NoError(t, err)

	ev := &storage.CalendarEvent{
		CalendarID: cal.ID,
		Path:       "/calendars/work/e.ics",
		Start:      time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.PutEvent(ctx, ev))

	after, err := s.SyncToken(ctx, cal.ID)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)

	require.NoError(t, s.DeleteEvent(ctx, ev.ID))
	final, err := s.SyncToken(ctx, cal.ID)
	require.NoError(t, err)
	assert.NotEqual(t, after, final)
}

func TestEventsInRangeFilters(t *testing.T) {
	s := New()
	ctx := context.Background()
	cal := &storage.Calendar{OwnerID: "alice", Name: "Work", Path: "/calendars/work"}
	require.NoError(t, s.CreateCalendar(ctx, cal))

	in := &storage.CalendarEvent{
		CalendarID: cal.ID,
		Path:       "/calendars/work/in.ics",
		Start:      time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
	}
	out := &storage.CalendarEvent{
		CalendarID: cal.ID,
		Path:       "/calendars/work/out.ics",
		Start:      time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.PutEvent(ctx, in))
	require.NoError(t, s.PutEvent(ctx, out))

	got, err := s.EventsInRange(ctx, cal.ID,
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "/calendars/work/in.ics", got[0].Path)
}
