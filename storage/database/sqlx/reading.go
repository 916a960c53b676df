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

	"github.com/harmonyhs/harmony/core/reading"
)

type readingRow struct {
	ID        string      `db:"id"`
	UserID    string      `db:"user_id"`
	ChildID   string      `db:"child_id"`
	BookTitle string      `db:"book_title"`
	Author    null.String `db:"author"`
	Date      string      `db:"date"`
	Minutes   int         `db:"minutes"`
	Pages     int         `db:"pages"`
	Notes     null.String `db:"notes"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

func (r readingRow) unmarshal() reading.Entry {
	return reading.Entry{
		ID:        r.ID,
		UserID:    r.UserID,
		ChildID:   r.ChildID,
		BookTitle: r.BookTitle,
		Author:    r.Author.String,
		Date:      r.Date,
		Minutes:   r.Minutes,
		Pages:     r.Pages,
		Notes:     r.Notes.String,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func marshalReading(e reading.Entry) readingRow {
	return readingRow{
		ID:        e.ID,
		UserID:    e.UserID,
		ChildID:   e.ChildID,
		BookTitle: e.BookTitle,
		Author:    null.NewString(e.Author, e.Author != ""),
		Date:      e.Date,
		Minutes:   e.Minutes,
		Pages:     e.Pages,
		Notes:     null.NewString(e.Notes, e.Notes != ""),
		CreatedAt: e.CreatedAt.UTC(),
		UpdatedAt: e.UpdatedAt.UTC(),
	}
}

type readingRepository struct {
	db *sqlx.DB
}

var _ reading.Repository = (*readingRepository)(nil) // interface compliance check

func NewReadingRepository(db *sqlx.DB) *readingRepository {
	return &readingRepository{db: db}
}

func (repo readingRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return reading.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo readingRepository) CreateEntry(ctx context.Context, e reading.Entry) (reading.Entry, error) {
	e.ID = uuid.New().String()
	row := marshalReading(e)
	q := `INSERT INTO reading_entry (id, user_id, child_id, book_title, author, date, minutes, pages, notes, created_at, updated_at)
		VALUES (:id, :user_id, :child_id, :book_title, :author, :date, :minutes, :pages, :notes, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return reading.Entry{}, errors.Wrap(err, "inserting reading entry")
	}
	return e, nil
}

func (repo readingRepository) GetEntryByID(ctx context.Context, userID, id string) (reading.Entry, error) {
	var row readingRow
	q := `SELECT * FROM reading_entry WHERE user_id = $1 AND id = $2`
	if err := repo.db.GetContext(ctx, &row, q, userID, id); err != nil {
		return reading.Entry{}, repo.trapNoRowsErr(err, "getting reading entry")
	}
	return row.unmarshal(), nil
}

func (repo readingRepository) FilterEntries(ctx context.Context, userID string, filter reading.QueryFilter) ([]reading.Entry, error) {
	q := `SELECT * FROM reading_entry WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.ChildID != "" {
		args = append(args, filter.ChildID)
		q += ` AND child_id = ` + placeholder(len(args))
	}
	if filter.From != "" {
		args = append(args, filter.From)
		q += ` AND date >= ` + placeholder(len(args))
	}
	if filter.To != "" {
		args = append(args, filter.To)
		q += ` AND date <= ` + placeholder(len(args))
	}
	q += ` ORDER BY date DESC, created_at DESC`

	var rows []readingRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering reading entries")
	}
	entries := make([]reading.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.unmarshal())
	}
	return entries, nil
}

func (repo readingRepository) UpdateEntry(ctx context.Context, e reading.Entry) (reading.Entry, error) {
	row := marshalReading(e)
	q := `UPDATE reading_entry SET book_title = :book_title, author = :author, date = :date,
		minutes = :minutes, pages = :pages, notes = :notes, updated_at = :updated_at
		WHERE user_id = :user_id AND id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, row)
	if err != nil {
		return reading.Entry{}, errors.Wrap(err, "updating reading entry")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return reading.Entry{}, reading.ErrNotFound
	}
	return e, nil
}

func (repo readingRepository) DeleteEntriesByID(ctx context.Context, userID string, ids ...string) error {
	q := `DELETE FROM reading_entry WHERE user_id = $1 AND id = ANY($2)`
	if _, err := repo.db.ExecContext(ctx, q, userID, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting reading entries")
	}
	return nil
}
