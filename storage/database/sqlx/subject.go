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

	"github.com/harmonyhs/harmony/core/subject"
)

type subjectRow struct {
	ID        string      `db:"id"`
	UserID    string      `db:"user_id"`
	Name      string      `db:"name"`
	Color     null.String `db:"color"`
	Archived  bool        `db:"archived"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

func (r subjectRow) unmarshal() subject.Subject {
	return subject.Subject{
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Name,
		Color:     r.Color.String,
		Archived:  r.Archived,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type curriculumRow struct {
	ID          string      `db:"id"`
	UserID      string      `db:"user_id"`
	SubjectID   string      `db:"subject_id"`
	ChildID     string      `db:"child_id"`
	Name        string      `db:"name"`
	Description null.String `db:"description"`
	ResourceURL null.String `db:"resource_url"`
	SchoolYear  null.String `db:"school_year"`
	Archived    bool        `db:"archived"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

func (r curriculumRow) unmarshal() subject.Curriculum {
	return subject.Curriculum{
		ID:          r.ID,
		UserID:      r.UserID,
		SubjectID:   r.SubjectID,
		ChildID:     r.ChildID,
		Name:        r.Name,
		Description: r.Description.String,
		ResourceURL: r.ResourceURL.String,
		SchoolYear:  r.SchoolYear.String,
		Archived:    r.Archived,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func marshalCurriculum(c subject.Curriculum) curriculumRow {
	return curriculumRow{
		ID:          c.ID,
		UserID:      c.UserID,
		SubjectID:   c.SubjectID,
		ChildID:     c.ChildID,
		Name:        c.Name,
		Description: null.NewString(c.Description, c.Description != ""),
		ResourceURL: null.NewString(c.ResourceURL, c.ResourceURL != ""),
		SchoolYear:  null.NewString(c.SchoolYear, c.SchoolYear != ""),
		Archived:    c.Archived,
		CreatedAt:   c.CreatedAt.UTC(),
		UpdatedAt:   c.UpdatedAt.UTC(),
	}
}

type subjectRepository struct {
	db *sqlx.DB
}

var _ subject.Repository = (*subjectRepository)(nil) // interface compliance check

func NewSubjectRepository(db *sqlx.DB) *subjectRepository {
	return &subjectRepository{db: db}
}

func (repo subjectRepository) CreateSubject(ctx context.Context, s subject.Subject) (subject.Subject, error) {
	s.ID = uuid.New().String()
	row := subjectRow{
		ID:        s.ID,
		UserID:    s.UserID,
		Name:      s.Name,
		Color:     null.NewString(s.Color, s.Color != ""),
		Archived:  s.Archived,
		CreatedAt: s.CreatedAt.UTC(),
		UpdatedAt: s.UpdatedAt.UTC(),
	}
	q := `INSERT INTO subject (id, user_id, name, color, archived, created_at, updated_at)
		VALUES (:id, :user_id, :name, :color, :archived, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return subject.Subject{}, errors.Wrap(err, "inserting subject")
	}
	return s, nil
}

func (repo subjectRepository) QuerySubjects(ctx context.Context, userID string) ([]subject.Subject, error) {
	var rows []subjectRow
	q := `SELECT * FROM subject WHERE user_id = $1 ORDER BY name`
	if err := repo.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	subjects := make([]subject.Subject, 0, len(rows))
	for _, r := range rows {
		subjects = append(subjects, r.unmarshal())
	}
	return subjects, nil
}

func (repo subjectRepository) GetSubjectByID(ctx context.Context, userID, id string) (subject.Subject, error) {
	var row subjectRow
	q := `SELECT * FROM subject WHERE user_id = $1 AND id = $2`
	if err := repo.db.GetContext(ctx, &row, q, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return subject.Subject{}, subject.ErrNotFound
		}
		return subject.Subject{}, errors.Wrap(err, "getting subject")
	}
	return row.unmarshal(), nil
}

func (repo subjectRepository) UpdateSubject(ctx context.Context, s subject.Subject, archived *bool) (subject.Subject, error) {
	if archived != nil {
		s.Archived = *archived
	}
	q := `UPDATE subject SET name = $3, color = $4, archived = $5, updated_at = $6
		WHERE user_id = $1 AND id = $2`
	res, err := repo.db.ExecContext(ctx, q, s.UserID, s.ID, s.Name,
		null.NewString(s.Color, s.Color != ""), s.Archived, s.UpdatedAt.UTC())
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "updating subject")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return subject.Subject{}, subject.ErrNotFound
	}
	return s, nil
}

func (repo subjectRepository) DeleteSubjectsByID(ctx context.Context, userID string, ids ...string) error {
	q := `DELETE FROM subject WHERE user_id = $1 AND id = ANY($2)`
	if _, err := repo.db.ExecContext(ctx, q, userID, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting subjects")
	}
	return nil
}

func (repo subjectRepository) CreateCurriculum(ctx context.Context, c subject.Curriculum) (subject.Curriculum, error) {
	c.ID = uuid.New().String()
	row := marshalCurriculum(c)
	q := `INSERT INTO curriculum (id, user_id, subject_id, child_id, name, description, resource_url, school_year, archived, created_at, updated_at)
		VALUES (:id, :user_id, :subject_id, :child_id, :name, :description, :resource_url, :school_year, :archived, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return subject.Curriculum{}, errors.Wrap(err, "inserting curriculum")
	}
	return c, nil
}

func (repo subjectRepository) GetCurriculumByID(ctx context.Context, userID, id string) (subject.Curriculum, error) {
	var row curriculumRow
	q := `SELECT * FROM curriculum WHERE user_id = $1 AND id = $2`
	if err := repo.db.GetContext(ctx, &row, q, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return subject.Curriculum{}, subject.ErrCurriculumNotFound
		}
		return subject.Curriculum{}, errors.Wrap(err, "getting curriculum")
	}
	return row.unmarshal(), nil
}

func (repo subjectRepository) FilterCurricula(ctx context.Context, userID string, filter subject.CurriculumFilter) ([]subject.Curriculum, error) {
	q := `SELECT * FROM curriculum WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.SubjectID != "" {
		args = append(args, filter.SubjectID)
		q += ` AND subject_id = ` + placeholder(len(args))
	}
	if filter.ChildID != "" {
		args = append(args, filter.ChildID)
		q += ` AND child_id = ` + placeholder(len(args))
	}
	if filter.Archived != nil {
		args = append(args, *filter.Archived)
		q += ` AND archived = ` + placeholder(len(args))
	}
	q += ` ORDER BY name`

	var rows []curriculumRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering curricula")
	}
	curricula := make([]subject.Curriculum, 0, len(rows))
	for _, r := range rows {
		curricula = append(curricula, r.unmarshal())
	}
	return curricula, nil
}

func (repo subjectRepository) UpdateCurriculum(ctx context.Context, c subject.Curriculum, archived *bool) (subject.Curriculum, error) {
	if archived != nil {
		c.Archived = *archived
	}
	row := marshalCurriculum(c)
	q := `UPDATE curriculum SET name = :name, description = :description, resource_url = :resource_url,
		school_year = :school_year, archived = :archived, updated_at = :updated_at
		WHERE user_id = :user_id AND id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, row)
	if err != nil {
		return subject.Curriculum{}, errors.Wrap(err, "updating curriculum")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return subject.Curriculum{}, subject.ErrCurriculumNotFound
	}
	return c, nil
}

func (repo subjectRepository) DeleteCurriculaByID(ctx context.Context, userID string, ids ...string) error {
	q := `DELETE FROM curriculum WHERE user_id = $1 AND id = ANY($2)`
	if _, err := repo.db.ExecContext(ctx, q, userID, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting curricula")
	}
	return nil
}
