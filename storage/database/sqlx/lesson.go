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

	"github.com/harmonyhs/harmony/core/lesson"
)

type lessonRow struct {
	ID           string       `db:"id"`
	UserID       string       `db:"user_id"`
	CurriculumID string       `db:"curriculum_id"`
	Title        string       `db:"title"`
	Notes        null.String  `db:"notes"`
	Date         null.String  `db:"date"`
	SortOrder    int          `db:"sort_order"`
	Status       string       `db:"status"`
	GradeScore   null.Float64 `db:"grade_score"`
	GradeMax     null.Float64 `db:"grade_max"`
	GradeLetter  null.String  `db:"grade_letter"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

func (r lessonRow) unmarshal() lesson.Lesson {
	l := lesson.Lesson{
		ID:           r.ID,
		UserID:       r.UserID,
		CurriculumID: r.CurriculumID,
		Title:        r.Title,
		Notes:        r.Notes.String,
		Date:         r.Date.String,
		SortOrder:    r.SortOrder,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.GradeMax.Valid {
		l.Grade = &lesson.Grade{
			Score:  r.GradeScore.Float64,
			Max:    r.GradeMax.Float64,
			Letter: r.GradeLetter.String,
		}
	}
	return l
}

func marshalLesson(l lesson.Lesson) lessonRow {
	row := lessonRow{
		ID:           l.ID,
		UserID:       l.UserID,
		CurriculumID: l.CurriculumID,
		Title:        l.Title,
		Notes:        null.NewString(l.Notes, l.Notes != ""),
		Date:         null.NewString(l.Date, l.Date != ""),
		SortOrder:    l.SortOrder,
		Status:       l.Status,
		CreatedAt:    l.CreatedAt.UTC(),
		UpdatedAt:    l.UpdatedAt.UTC(),
	}
	if l.Grade != nil {
		row.GradeScore = null.Float64From(l.Grade.Score)
		row.GradeMax = null.Float64From(l.Grade.Max)
		row.GradeLetter = null.NewString(l.Grade.Letter, l.Grade.Letter != "")
	}
	return row
}

type lessonRepository struct {
	db *sqlx.DB
}

var _ lesson.Repository = (*lessonRepository)(nil) // interface compliance check

func NewLessonRepository(db *sqlx.DB) *lessonRepository {
	return &lessonRepository{db: db}
}

func (repo lessonRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return lesson.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo lessonRepository) CreateLesson(ctx context.Context, l lesson.Lesson) (lesson.Lesson, error) {
	l.ID = uuid.New().String()
	row := marshalLesson(l)
	q := `INSERT INTO lesson (id, user_id, curriculum_id, title, notes, date, sort_order, status,
		grade_score, grade_max, grade_letter, created_at, updated_at)
		VALUES (:id, :user_id, :curriculum_id, :title, :notes, :date, :sort_order, :status,
		:grade_score, :grade_max, :grade_letter, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return lesson.Lesson{}, errors.Wrap(err, "inserting lesson")
	}
	return l, nil
}

func (repo lessonRepository) GetLessonByID(ctx context.Context, userID, id string) (lesson.Lesson, error) {
	var row lessonRow
	q := `SELECT * FROM lesson WHERE user_id = $1 AND id = $2`
	if err := repo.db.GetContext(ctx, &row, q, userID, id); err != nil {
		return lesson.Lesson{}, repo.trapNoRowsErr(err, "getting lesson")
	}
	return row.unmarshal(), nil
}

func (repo lessonRepository) FilterLessons(ctx context.Context, userID string, filter lesson.QueryFilter) ([]lesson.Lesson, error) {
	q := `SELECT * FROM lesson WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.CurriculumID != "" {
		args = append(args, filter.CurriculumID)
		q += ` AND curriculum_id = ` + placeholder(len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		q += ` AND status = ` + placeholder(len(args))
	}
	if filter.From != "" {
		args = append(args, filter.From)
		q += ` AND date >= ` + placeholder(len(args))
	}
	if filter.To != "" {
		args = append(args, filter.To)
		q += ` AND date <= ` + placeholder(len(args))
	}
	q += ` ORDER BY date NULLS LAST, sort_order, created_at`

	var rows []lessonRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering lessons")
	}
	lessons := make([]lesson.Lesson, 0, len(rows))
	for _, r := range rows {
		lessons = append(lessons, r.unmarshal())
	}
	return lessons, nil
}

func (repo lessonRepository) UpdateLesson(ctx context.Context, l lesson.Lesson) (lesson.Lesson, error) {
	row := marshalLesson(l)
	q := `UPDATE lesson SET title = :title, notes = :notes, date = :date, sort_order = :sort_order,
		status = :status, grade_score = :grade_score, grade_max = :grade_max, grade_letter = :grade_letter,
		updated_at = :updated_at
		WHERE user_id = :user_id AND id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, row)
	if err != nil {
		return lesson.Lesson{}, errors.Wrap(err, "updating lesson")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return lesson.Lesson{}, lesson.ErrNotFound
	}
	return l, nil
}

func (repo lessonRepository) DeleteLessonsByID(ctx context.Context, userID string, ids ...string) error {
	q := `DELETE FROM lesson WHERE user_id = $1 AND id = ANY($2)`
	if _, err := repo.db.ExecContext(ctx, q, userID, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting lessons")
	}
	return nil
}
