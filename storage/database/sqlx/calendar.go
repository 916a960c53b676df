package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/harmonyhs/harmony/core/calendar"
)

type eventRow struct {
	ID             string         `db:"id"`
	UserID         string         `db:"user_id"`
	Title          string         `db:"title"`
	Description    null.String    `db:"description"`
	Recurrence     string         `db:"recurrence"`
	DayOfWeek      null.Int       `db:"day_of_week"`
	StartDate      string         `db:"start_date"`
	EndDate        null.String    `db:"end_date"`
	StartTime      null.String    `db:"start_time"`
	EndTime        null.String    `db:"end_time"`
	AllDay         bool           `db:"all_day"`
	Color          null.String    `db:"color"`
	Location       null.String    `db:"location"`
	TravelMinutes  int            `db:"travel_minutes"`
	ExceptionDates pq.StringArray `db:"exception_dates"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (r eventRow) unmarshal() calendar.Event {
	ev := calendar.Event{
		ID:             r.ID,
		UserID:         r.UserID,
		Title:          r.Title,
		Description:    r.Description.String,
		Recurrence:     calendar.RecurrenceType(r.Recurrence),
		StartDate:      r.StartDate,
		EndDate:        r.EndDate.String,
		StartTime:      r.StartTime.String,
		EndTime:        r.EndTime.String,
		AllDay:         r.AllDay,
		Color:          r.Color.String,
		Location:       r.Location.String,
		TravelMinutes:  r.TravelMinutes,
		ExceptionDates: r.ExceptionDates,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.DayOfWeek.Valid {
		dow := int(r.DayOfWeek.Int)
		ev.DayOfWeek = &dow
	}
	return ev
}

func marshalEvent(ev calendar.Event) eventRow {
	row := eventRow{
		ID:             ev.ID,
		UserID:         ev.UserID,
		Title:          ev.Title,
		Description:    null.NewString(ev.Description, ev.Description != ""),
		Recurrence:     string(ev.Recurrence),
		StartDate:      ev.StartDate,
		EndDate:        null.NewString(ev.EndDate, ev.EndDate != ""),
		StartTime:      null.NewString(ev.StartTime, ev.StartTime != ""),
		EndTime:        null.NewString(ev.EndTime, ev.EndTime != ""),
		AllDay:         ev.AllDay,
		Color:          null.NewString(ev.Color, ev.Color != ""),
		Location:       null.NewString(ev.Location, ev.Location != ""),
		TravelMinutes:  ev.TravelMinutes,
		ExceptionDates: ev.ExceptionDates,
		CreatedAt:      ev.CreatedAt.UTC(),
		UpdatedAt:      ev.UpdatedAt.UTC(),
	}
	if ev.DayOfWeek != nil {
		row.DayOfWeek = null.IntFrom(*ev.DayOfWeek)
	}
	return row
}

type eventChildRow struct {
	EventID string `db:"event_id"`
	ID      string `db:"id"`
	Name    string `db:"name"`
}

type calendarRepository struct {
	db *sqlx.DB
}

var _ calendar.Repository = (*calendarRepository)(nil) // interface compliance check

func NewCalendarRepository(db *sqlx.DB) *calendarRepository {
	return &calendarRepository{db: db}
}

func (repo calendarRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return calendar.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo calendarRepository) CreateEvent(ctx context.Context, ev calendar.Event, childIDs []string) (calendar.Event, error) {
	ev.ID = uuid.New().String()
	row := marshalEvent(ev)

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return calendar.Event{}, errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	q := `INSERT INTO calendar_event (id, user_id, title, description, recurrence, day_of_week,
		start_date, end_date, start_time, end_time, all_day, color, location, travel_minutes,
		exception_dates, created_at, updated_at)
		VALUES (:id, :user_id, :title, :description, :recurrence, :day_of_week,
		:start_date, :end_date, :start_time, :end_time, :all_day, :color, :location, :travel_minutes,
		:exception_dates, :created_at, :updated_at)`
	if _, err = tx.NamedExecContext(ctx, q, row); err != nil {
		return calendar.Event{}, errors.Wrap(err, "inserting event")
	}
	if err = repo.linkChildren(ctx, tx, ev.UserID, ev.ID, childIDs); err != nil {
		return calendar.Event{}, err
	}
	if err = tx.Commit(); err != nil {
		return calendar.Event{}, errors.Wrap(err, "committing tx")
	}
	return repo.GetEventByID(ctx, ev.UserID, ev.ID)
}

// linkChildren replaces the event's child links. Links only children
// belonging to the same account.
func (repo calendarRepository) linkChildren(ctx context.Context, tx *sqlx.Tx, userID, eventID string, childIDs []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM calendar_event_child WHERE event_id = $1`, eventID); err != nil {
		return errors.Wrap(err, "unlinking event children")
	}
	if len(childIDs) == 0 {
		return nil
	}
	q := `INSERT INTO calendar_event_child (event_id, child_id)
		SELECT $1, id FROM child WHERE user_id = $2 AND id = ANY($3)
		ON CONFLICT DO NOTHING`
	if _, err := tx.ExecContext(ctx, q, eventID, userID, pq.Array(childIDs)); err != nil {
		return errors.Wrap(err, "linking event children")
	}
	return nil
}

func (repo calendarRepository) GetEventByID(ctx context.Context, userID, id string) (calendar.Event, error) {
	var row eventRow
	q := `SELECT * FROM calendar_event WHERE user_id = $1 AND id = $2`
	if err := repo.db.GetContext(ctx, &row, q, userID, id); err != nil {
		return calendar.Event{}, repo.trapNoRowsErr(err, "getting event")
	}
	ev := row.unmarshal()

	children, err := repo.queryChildren(ctx, ev.ID)
	if err != nil {
		return calendar.Event{}, err
	}
	ev.Children = children[ev.ID]
	return ev, nil
}

func (repo calendarRepository) QueryEvents(ctx context.Context, userID string) ([]calendar.Event, error) {
	var rows []eventRow
	q := `SELECT * FROM calendar_event WHERE user_id = $1 ORDER BY start_date, title`
	if err := repo.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, errors.Wrap(err, "querying events")
	}
	return repo.unmarshalEvents(ctx, rows)
}

func (repo calendarRepository) QueryEventsOverlapping(ctx context.Context, userID, from, to string) ([]calendar.Event, error) {
	var rows []eventRow
	q := `SELECT * FROM calendar_event WHERE user_id = $1 AND start_date <= $2
		AND (end_date IS NULL OR end_date >= $3)
		ORDER BY start_date, title`
	if err := repo.db.SelectContext(ctx, &rows, q, userID, to, from); err != nil {
		return nil, errors.Wrap(err, "querying overlapping events")
	}
	return repo.unmarshalEvents(ctx, rows)
}

func (repo calendarRepository) UpdateEvent(ctx context.Context, ev calendar.Event, childIDs []string) (calendar.Event, error) {
	row := marshalEvent(ev)

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return calendar.Event{}, errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	q := `UPDATE calendar_event SET title = :title, description = :description, recurrence = :recurrence,
		day_of_week = :day_of_week, start_date = :start_date, end_date = :end_date,
		start_time = :start_time, end_time = :end_time, all_day = :all_day, color = :color,
		location = :location, travel_minutes = :travel_minutes, exception_dates = :exception_dates,
		updated_at = :updated_at
		WHERE user_id = :user_id AND id = :id`
	res, err := tx.NamedExecContext(ctx, q, row)
	if err != nil {
		return calendar.Event{}, errors.Wrap(err, "updating event")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return calendar.Event{}, calendar.ErrNotFound
	}
	if err = repo.linkChildren(ctx, tx, ev.UserID, ev.ID, childIDs); err != nil {
		return calendar.Event{}, err
	}
	if err = tx.Commit(); err != nil {
		return calendar.Event{}, errors.Wrap(err, "committing tx")
	}
	return repo.GetEventByID(ctx, ev.UserID, ev.ID)
}

func (repo calendarRepository) DeleteEventsByID(ctx context.Context, userID string, ids ...string) error {
	q := `DELETE FROM calendar_event WHERE user_id = $1 AND id = ANY($2)`
	if _, err := repo.db.ExecContext(ctx, q, userID, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting events")
	}
	return nil
}

// queryChildren loads the linked children of the given events, keyed by event ID.
func (repo calendarRepository) queryChildren(ctx context.Context, eventIDs ...string) (map[string][]calendar.ChildRef, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}
	var rows []eventChildRow
	q := `SELECT ec.event_id, c.id, c.name FROM calendar_event_child ec
		JOIN child c ON c.id = ec.child_id
		WHERE ec.event_id = ANY($1)
		ORDER BY c.name`
	if err := repo.db.SelectContext(ctx, &rows, q, pq.Array(eventIDs)); err != nil {
		return nil, errors.Wrap(err, "querying event children")
	}
	refs := make(map[string][]calendar.ChildRef, len(eventIDs))
	for _, r := range rows {
		refs[r.EventID] = append(refs[r.EventID], calendar.ChildRef{ID: r.ID, Name: r.Name})
	}
	return refs, nil
}

func (repo calendarRepository) unmarshalEvents(ctx context.Context, rows []eventRow) ([]calendar.Event, error) {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	children, err := repo.queryChildren(ctx, ids...)
	if err != nil {
		return nil, err
	}

	events := make([]calendar.Event, 0, len(rows))
	for _, r := range rows {
		ev := r.unmarshal()
		ev.Children = children[ev.ID]
		events = append(events, ev)
	}
	return events, nil
}
