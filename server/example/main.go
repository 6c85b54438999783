package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/inakimalerba/OxiCloud/server"
	"github.com/inakimalerba/OxiCloud/server/storage"
	"github.com/inakimalerba/OxiCloud/server/storage/memory"
)

const (
	serverAddr = ":8080"
	davPrefix  = "/dav"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store := setupStorage()
	handler := server.NewHandler(server.Config{
		URLPrefix: davPrefix,
		Logger:    logger,
		Product:   "OxiCloud",
		Files:     store,
		Folders:   store,
		Calendars: store,
	})

	http.Handle(davPrefix+"/", handler)

	log.Printf("WebDAV endpoint: http://localhost%s%s/", serverAddr, davPrefix)
	log.Printf("CalDAV calendars: http://localhost%s%s/calendars/", serverAddr, davPrefix)
	if err := http.ListenAndServe(serverAddr, nil); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// setupStorage seeds the in-memory store with a small tree and one
// calendar so clients have something to browse.
func setupStorage() *memory.Store {
	store := memory.New()
	ctx := context.Background()

	docs := &storage.Folder{ParentID: "root", Name: "docs"}
	if err := store.CreateFolder(ctx, docs); err != nil {
		log.Fatalf("seed folder: %v", err)
	}
	readme := &storage.File{
		FolderID: docs.ID,
		Name:     "readme.txt",
		MimeType: "text/plain",
	}
	if err := store.CreateFile(ctx, readme, strings.NewReader("welcome\n")); err != nil {
		log.Fatalf("seed file: %v", err)
	}

	cal := &storage.Calendar{
		Name:        "Personal",
		Description: "Example calendar",
		Color:       "#3174AD",
		Path:        "/calendars/personal",
	}
	if err := store.CreateCalendar(ctx, cal); err != nil {
		log.Fatalf("seed calendar: %v", err)
	}

	start := time.Now().Truncate(time.Hour).Add(24 * time.Hour)
	event := &storage.CalendarEvent{
		CalendarID: cal.ID,
		Summary:    "Team sync",
		Path:       "/calendars/personal/team-sync.ics",
		Start:      start,
		End:        start.Add(time.Hour),
	}
	if err := store.PutEvent(ctx, event); err != nil {
		log.Fatalf("seed event: %v", err)
	}
	return store
}
