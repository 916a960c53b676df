package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/harmonyhs/harmony/core/calendar"
)

type calendarRepository struct {
	db       *calendarTable
	children *childTable
}

var _ calendar.Repository = (*calendarRepository)(nil) // interface compliance check

func NewCalendarRepository(db *DB) *calendarRepository {
	return &calendarRepository{db: db.calendar, children: db.child}
}

// childRefs resolves the linked child names; unknown IDs are skipped.
func (repo *calendarRepository) childRefs(userID string, childIDs []string) []calendar.ChildRef {
	repo.children.RLock()
	defer repo.children.RUnlock()

	refs := make([]calendar.ChildRef, 0, len(childIDs))
	for _, id := range childIDs {
		if c, ok := repo.children.table[id]; ok && c.UserID == userID {
			refs = append(refs, calendar.ChildRef{ID: c.ID, Name: c.Name})
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	if len(refs) == 0 {
		return nil
	}
	return refs
}

func (repo *calendarRepository) CreateEvent(ctx context.Context, ev calendar.Event, childIDs []string) (calendar.Event, error) {
	repo.db.Lock()
	ev.ID = uuid.New().String()
	repo.db.events[ev.ID] = &ev
	repo.db.children[ev.ID] = childIDs
	repo.db.Unlock()

	ev.Children = repo.childRefs(ev.UserID, childIDs)
	return ev, nil
}

func (repo *calendarRepository) GetEventByID(ctx context.Context, userID, id string) (calendar.Event, error) {
	repo.db.RLock()
	ev, ok := repo.db.events[id]
	if !ok || ev.UserID != userID {
		repo.db.RUnlock()
		return calendar.Event{}, calendar.ErrNotFound
	}
	out := *ev
	childIDs := repo.db.children[id]
	repo.db.RUnlock()

	out.Children = repo.childRefs(userID, childIDs)
	return out, nil
}

func (repo *calendarRepository) QueryEvents(ctx context.Context, userID string) ([]calendar.Event, error) {
	return repo.query(userID, func(calendar.Event) bool { return true })
}

func (repo *calendarRepository) QueryEventsOverlapping(ctx context.Context, userID, from, to string) ([]calendar.Event, error) {
	return repo.query(userID, func(ev calendar.Event) bool {
		return ev.StartDate <= to && (ev.EndDate == "" || ev.EndDate >= from)
	})
}

func (repo *calendarRepository) query(userID string, match func(calendar.Event) bool) ([]calendar.Event, error) {
	repo.db.RLock()
	type pending struct {
		ev       calendar.Event
		childIDs []string
	}
	matches := make([]pending, 0, len(repo.db.events))
	for _, ev := range repo.db.events {
		if ev.UserID == userID && match(*ev) {
			matches = append(matches, pending{ev: *ev, childIDs: repo.db.children[ev.ID]})
		}
	}
	repo.db.RUnlock()

	events := make([]calendar.Event, 0, len(matches))
	for _, p := range matches {
		p.ev.Children = repo.childRefs(userID, p.childIDs)
		events = append(events, p.ev)
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].StartDate != events[j].StartDate {
			return events[i].StartDate < events[j].StartDate
		}
		return events[i].Title < events[j].Title
	})
	return events, nil
}

func (repo *calendarRepository) UpdateEvent(ctx context.Context, ev calendar.Event, childIDs []string) (calendar.Event, error) {
	repo.db.Lock()
	orig, ok := repo.db.events[ev.ID]
	if !ok || orig.UserID != ev.UserID {
		repo.db.Unlock()
		return calendar.Event{}, calendar.ErrNotFound
	}
	repo.db.events[ev.ID] = &ev
	repo.db.children[ev.ID] = childIDs
	repo.db.Unlock()

	ev.Children = repo.childRefs(ev.UserID, childIDs)
	return ev, nil
}

func (repo *calendarRepository) DeleteEventsByID(ctx context.Context, userID string, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		if ev, ok := repo.db.events[id]; ok && ev.UserID == userID {
			delete(repo.db.events, id)
			delete(repo.db.children, id)
		}
	}
	return nil
}
