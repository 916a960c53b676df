package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/harmonyhs/harmony/core"
)

var ErrNotFound = errors.New("event not found")

type (
	Repository interface {
		CreateEvent(ctx context.Context, ev Event, childIDs []string) (Event, error)
		GetEventByID(ctx context.Context, userID, id string) (Event, error)
		QueryEvents(ctx context.Context, userID string) ([]Event, error)
		// QueryEventsOverlapping returns event definitions whose lifetime
		// intersects [from, to]: startDate <= to and (no endDate or endDate >= from).
		QueryEventsOverlapping(ctx context.Context, userID, from, to string) ([]Event, error)
		UpdateEvent(ctx context.Context, ev Event, childIDs []string) (Event, error)
		DeleteEventsByID(ctx context.Context, userID string, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID string, ne NewEvent) (Event, error) {
	now := time.Now().UTC()
	ev := Event{
		UserID:         userID,
		Title:          ne.Title,
		Description:    ne.Description,
		Recurrence:     ne.Recurrence,
		DayOfWeek:      ne.DayOfWeek,
		StartDate:      ne.StartDate,
		EndDate:        ne.EndDate,
		StartTime:      ne.StartTime,
		EndTime:        ne.EndTime,
		AllDay:         ne.AllDay,
		Color:          ne.Color,
		Location:       ne.Location,
		TravelMinutes:  ne.TravelMinutes,
		ExceptionDates: core.CleanStrings(ne.ExceptionDates),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	normalizeRecurrenceFields(&ev)
	return svc.repo.CreateEvent(ctx, ev, ne.ChildIDs)
}

func (svc *Service) GetByID(ctx context.Context, userID, id string) (Event, error) {
	return svc.repo.GetEventByID(ctx, userID, id)
}

func (svc *Service) QueryAll(ctx context.Context, userID string) ([]Event, error) {
	return svc.repo.QueryEvents(ctx, userID)
}

func (svc *Service) Update(ctx context.Context, userID, id string, ue UpdateEvent) (Event, error) {
	orig, err := svc.repo.GetEventByID(ctx, userID, id)
	if err != nil {
		return Event{}, err
	}
	ev := Event{
		ID:             orig.ID,
		UserID:         orig.UserID,
		Title:          ue.Title,
		Description:    ue.Description,
		Recurrence:     ue.Recurrence,
		DayOfWeek:      ue.DayOfWeek,
		StartDate:      ue.StartDate,
		EndDate:        ue.EndDate,
		StartTime:      ue.StartTime,
		EndTime:        ue.EndTime,
		AllDay:         ue.AllDay,
		Color:          ue.Color,
		Location:       ue.Location,
		TravelMinutes:  ue.TravelMinutes,
		ExceptionDates: core.CleanStrings(ue.ExceptionDates),
		CreatedAt:      orig.CreatedAt,
		UpdatedAt:      time.Now().UTC(),
	}
	normalizeRecurrenceFields(&ev)
	return svc.repo.UpdateEvent(ctx, ev, ue.ChildIDs)
}

func (svc *Service) Delete(ctx context.Context, userID string, ids ...string) error {
	return svc.repo.DeleteEventsByID(ctx, userID, ids...)
}

// AddException cancels the event on one concrete date.
func (svc *Service) AddException(ctx context.Context, userID, id, date string) (Event, error) {
	ev, err := svc.repo.GetEventByID(ctx, userID, id)
	if err != nil {
		return Event{}, err
	}
	for _, d := range ev.ExceptionDates {
		if d == date {
			return ev, nil
		}
	}
	ev.ExceptionDates = append(ev.ExceptionDates, date)
	ev.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateEvent(ctx, ev, childIDs(ev))
}

// Occurrences loads the account's event definitions intersecting
// [from, to] and expands them into the flat, sorted occurrence list.
func (svc *Service) Occurrences(ctx context.Context, userID, from, to string) ([]Occurrence, error) {
	events, err := svc.repo.QueryEventsOverlapping(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return ExpandAll(events, from, to), nil
}

// normalizeRecurrenceFields blanks the fields each recurrence type
// ignores so stored definitions stay canonical: dayOfWeek only applies
// to weekly/biweekly, times only to timed events.
func normalizeRecurrenceFields(ev *Event) {
	if ev.Recurrence != RecurrenceWeekly && ev.Recurrence != RecurrenceBiweekly {
		ev.DayOfWeek = nil
	}
	if ev.AllDay {
		ev.StartTime = ""
		ev.EndTime = ""
	}
}

func childIDs(ev Event) []string {
	ids := make([]string, 0, len(ev.Children))
	for _, c := range ev.Children {
		ids = append(ids, c.ID)
	}
	return ids
}
