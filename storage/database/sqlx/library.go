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

	"github.com/harmonyhs/harmony/core/library"
)

type resourceRow struct {
	ID        string      `db:"id"`
	UserID    string      `db:"user_id"`
	Title     string      `db:"title"`
	URL       null.String `db:"url"`
	Kind      string      `db:"kind"`
	Notes     null.String `db:"notes"`
	SubjectID null.String `db:"subject_id"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

func (r resourceRow) unmarshal() library.Resource {
	return library.Resource{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		URL:       r.URL.String,
		Kind:      r.Kind,
		Notes:     r.Notes.String,
		SubjectID: r.SubjectID.String,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func marshalResource(res library.Resource) resourceRow {
	return resourceRow{
		ID:        res.ID,
		UserID:    res.UserID,
		Title:     res.Title,
		URL:       null.NewString(res.URL, res.URL != ""),
		Kind:      res.Kind,
		Notes:     null.NewString(res.Notes, res.Notes != ""),
		SubjectID: null.NewString(res.SubjectID, res.SubjectID != ""),
		CreatedAt: res.CreatedAt.UTC(),
		UpdatedAt: res.UpdatedAt.UTC(),
	}
}

type booklistRow struct {
	ID        string      `db:"id"`
	UserID    string      `db:"user_id"`
	ChildID   null.String `db:"child_id"`
	Title     string      `db:"title"`
	Author    null.String `db:"author"`
	Status    string      `db:"status"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

func (r booklistRow) unmarshal() library.BooklistEntry {
	return library.BooklistEntry{
		ID:        r.ID,
		UserID:    r.UserID,
		ChildID:   r.ChildID.String,
		Title:     r.Title,
		Author:    r.Author.String,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func marshalBooklist(b library.BooklistEntry) booklistRow {
	return booklistRow{
		ID:        b.ID,
		UserID:    b.UserID,
		ChildID:   null.NewString(b.ChildID, b.ChildID != ""),
		Title:     b.Title,
		Author:    null.NewString(b.Author, b.Author != ""),
		Status:    b.Status,
		CreatedAt: b.CreatedAt.UTC(),
		UpdatedAt: b.UpdatedAt.UTC(),
	}
}

type libraryRepository struct {
	db *sqlx.DB
}

var _ library.Repository = (*libraryRepository)(nil) // interface compliance check

func NewLibraryRepository(db *sqlx.DB) *libraryRepository {
	return &libraryRepository{db: db}
}

func (repo libraryRepository) CreateResource(ctx context.Context, r library.Resource) (library.Resource, error) {
	r.ID = uuid.New().String()
	row := marshalResource(r)
	q := `INSERT INTO resource (id, user_id, title, url, kind, notes, subject_id, created_at, updated_at)
		VALUES (:id, :user_id, :title, :url, :kind, :notes, :subject_id, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return library.Resource{}, errors.Wrap(err, "inserting resource")
	}
	return r, nil
}

func (repo libraryRepository) GetResourceByID(ctx context.Context, userID, id string) (library.Resource, error) {
	var row resourceRow
	q := `SELECT * FROM resource WHERE user_id = $1 AND id = $2`
	if err := repo.db.GetContext(ctx, &row, q, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return library.Resource{}, library.ErrResourceNotFound
		}
		return library.Resource{}, errors.Wrap(err, "getting resource")
	}
	return row.unmarshal(), nil
}

func (repo libraryRepository) FilterResources(ctx context.Context, userID string, filter library.ResourceFilter) ([]library.Resource, error) {
	q := `SELECT * FROM resource WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.Kind != "" {
		args = append(args, filter.Kind)
		q += ` AND kind = ` + placeholder(len(args))
	}
	if filter.SubjectID != "" {
		args = append(args, filter.SubjectID)
		q += ` AND subject_id = ` + placeholder(len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		p := placeholder(len(args))
		q += ` AND (title ILIKE ` + p + ` OR notes ILIKE ` + p + `)`
	}
	q += ` ORDER BY title`

	var rows []resourceRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering resources")
	}
	resources := make([]library.Resource, 0, len(rows))
	for _, r := range rows {
		resources = append(resources, r.unmarshal())
	}
	return resources, nil
}

func (repo libraryRepository) UpdateResource(ctx context.Context, r library.Resource) (library.Resource, error) {
	row := marshalResource(r)
	q := `UPDATE resource SET title = :title, url = :url, kind = :kind, notes = :notes,
		subject_id = :subject_id, updated_at = :updated_at
		WHERE user_id = :user_id AND id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, row)
	if err != nil {
		return library.Resource{}, errors.Wrap(err, "updating resource")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return library.Resource{}, library.ErrResourceNotFound
	}
	return r, nil
}

func (repo libraryRepository) DeleteResourcesByID(ctx context.Context, userID string, ids ...string) error {
	q := `DELETE FROM resource WHERE user_id = $1 AND id = ANY($2)`
	if _, err := repo.db.ExecContext(ctx, q, userID, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting resources")
	}
	return nil
}

func (repo libraryRepository) CreateBooklistEntry(ctx context.Context, b library.BooklistEntry) (library.BooklistEntry, error) {
	b.ID = uuid.New().String()
	row := marshalBooklist(b)
	q := `INSERT INTO booklist_entry (id, user_id, child_id, title, author, status, created_at, updated_at)
		VALUES (:id, :user_id, :child_id, :title, :author, :status, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return library.BooklistEntry{}, errors.Wrap(err, "inserting booklist entry")
	}
	return b, nil
}

func (repo libraryRepository) GetBooklistEntryByID(ctx context.Context, userID, id string) (library.BooklistEntry, error) {
	var row booklistRow
	q := `SELECT * FROM booklist_entry WHERE user_id = $1 AND id = $2`
	if err := repo.db.GetContext(ctx, &row, q, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return library.BooklistEntry{}, library.ErrBooklistNotFound
		}
		return library.BooklistEntry{}, errors.Wrap(err, "getting booklist entry")
	}
	return row.unmarshal(), nil
}

func (repo libraryRepository) FilterBooklist(ctx context.Context, userID string, filter library.BooklistFilter) ([]library.BooklistEntry, error) {
	q := `SELECT * FROM booklist_entry WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.ChildID != "" {
		args = append(args, filter.ChildID)
		q += ` AND child_id = ` + placeholder(len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		q += ` AND status = ` + placeholder(len(args))
	}
	q += ` ORDER BY title`

	var rows []booklistRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering booklist")
	}
	entries := make([]library.BooklistEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.unmarshal())
	}
	return entries, nil
}

func (repo libraryRepository) UpdateBooklistEntry(ctx context.Context, b library.BooklistEntry) (library.BooklistEntry, error) {
	row := marshalBooklist(b)
	q := `UPDATE booklist_entry SET child_id = :child_id, title = :title, author = :author,
		status = :status, updated_at = :updated_at
		WHERE user_id = :user_id AND id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, row)
	if err != nil {
		return library.BooklistEntry{}, errors.Wrap(err, "updating booklist entry")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return library.BooklistEntry{}, library.ErrBooklistNotFound
	}
	return b, nil
}

func (repo libraryRepository) DeleteBooklistEntriesByID(ctx context.Context, userID string, ids ...string) error {
	q := `DELETE FROM booklist_entry WHERE user_id = $1 AND id = ANY($2)`
	if _, err := repo.db.ExecContext(ctx, q, userID, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting booklist entries")
	}
	return nil
}
