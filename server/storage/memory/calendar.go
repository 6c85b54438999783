package memory

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/inakimalerba/OxiCloud/server/storage"
)

// Calendar operations

func (s *Store) CalendarByPath(_ context.Context, p string) (*storage.Calendar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p = normalize(p)
	for _, cal := range s.calendars {
		if cal.Path == p {
			cp := *cal
			return &cp, nil
		}
	}
	return nil, storage.NotFound("calendar not found")
}

func (s *Store) CalendarsByOwner(_ context.Context, ownerID string) ([]*storage.Calendar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*storage.Calendar
	for _, cal := range s.calendars {
		if cal.OwnerID == ownerID {
			cp := *cal
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *Store) CreateCalendar(_ context.Context, cal *storage.Calendar) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cal.ID == "" {
		cal.ID = uuid.NewString()
	}
	cal.Path = normalize(cal.Path)
	for _, existing := range s.calendars {
		if existing.Path == cal.Path {
			return &storage.Error{Type: storage.ErrAlreadyExists, Message: "calendar exists"}
		}
	}
	if cal.Created.IsZero() {
		cal.Created = s.now()
	}
	cal.Modified = s.now()
	cp := *cal
	s.calendars[cal.ID] = &cp
	return nil
}

func (s *Store) DeleteCalendar(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.calendars[id]; !ok {
		return storage.NotFound("calendar not found")
	}
	for eid, ev := range s.events {
		if ev.CalendarID == id {
			delete(s.events, eid)
		}
	}
	delete(s.calendars, id)
	delete(s.syncSeq, id)
	return nil
}

// Event operations

func (s *Store) EventByPath(_ context.Context, p string) (*storage.CalendarEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p = normalize(p)
	for _, ev := range s.events {
		if ev.Path == p {
			cp := *ev
			return &cp, nil
		}
	}
	return nil, storage.NotFound("event not found")
}

func (s *Store) EventsInCalendar(_ context.Context, calendarID string) ([]*storage.CalendarEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*storage.CalendarEvent
	for _, ev := range s.events {
		if ev.CalendarID == calendarID {
			cp := *ev
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *Store) EventsInRange(_ context.Context, calendarID string, start, end time.Time) ([]*storage.CalendarEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*storage.CalendarEvent
	for _, ev := range s.events {
		if ev.CalendarID == calendarID && storage.OccursInRange(ev, start, end) {
			cp := *ev
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *Store) PutEvent(_ context.Context, ev *storage.CalendarEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev.Path = normalize(ev.Path)
	for eid, existing := range s.events {
		if existing.Path == ev.Path {
			if ev.ID == "" {
				ev.ID = existing.ID
			}
			if ev.Created.IsZero() {
				ev.Created = existing.Created
			}
			delete(s.events, eid)
			break
		}
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.ICalUID == "" {
		ev.ICalUID = ev.ID
	}
	if ev.Created.IsZero() {
		ev.Created = s.now()
	}
	ev.Modified = s.now()
	cp := *ev
	s.events[ev.ID] = &cp
	s.syncSeq[ev.CalendarID]++
	return nil
}

func (s *Store) DeleteEvent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok {
		return storage.NotFound("event not found")
	}
	s.syncSeq[ev.CalendarID]++
	delete(s.events, id)
	return nil
}

func (s *Store) SetCalendarProperty(_ context.Context, id, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cal, ok := s.calendars[id]
	if !ok {
		return storage.NotFound("calendar not found")
	}
	if cal.Properties == nil {
		cal.Properties = make(map[string]string)
	}
	cal.Properties[name] = value
	return nil
}

func (s *Store) RemoveCalendarProperty(_ context.Context, id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cal, ok := s.calendars[id]
	if !ok {
		return storage.NotFound("calendar not found")
	}
	delete(cal.Properties, name)
	return nil
}

func (s *Store) SyncToken(_ context.Context, calendarID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.calendars[calendarID]; !ok {
		return "", storage.NotFound("calendar not found")
	}
	return "sync-" + strconv.Itoa(s.syncSeq[calendarID]), nil
}
