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

	"github.com/harmonyhs/harmony/core/child"
)

type childRow struct {
	ID         string      `db:"id"`
	UserID     string      `db:"user_id"`
	Name       string      `db:"name"`
	Birthdate  null.String `db:"birthdate"`
	GradeLevel null.String `db:"grade_level"`
	Color      null.String `db:"color"`
	Archived   bool        `db:"archived"`
	CreatedAt  time.Time   `db:"created_at"`
	UpdatedAt  time.Time   `db:"updated_at"`
}

func (r childRow) unmarshal() child.Child {
	return child.Child{
		ID:         r.ID,
		UserID:     r.UserID,
		Name:       r.Name,
		Birthdate:  r.Birthdate.String,
		GradeLevel: r.GradeLevel.String,
		Color:      r.Color.String,
		Archived:   r.Archived,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func marshalChild(c child.Child) childRow {
	return childRow{
		ID:         c.ID,
		UserID:     c.UserID,
		Name:       c.Name,
		Birthdate:  null.NewString(c.Birthdate, c.Birthdate != ""),
		GradeLevel: null.NewString(c.GradeLevel, c.GradeLevel != ""),
		Color:      null.NewString(c.Color, c.Color != ""),
		Archived:   c.Archived,
		CreatedAt:  c.CreatedAt.UTC(),
		UpdatedAt:  c.UpdatedAt.UTC(),
	}
}

type childRepository struct {
	db *sqlx.DB
}

var _ child.Repository = (*childRepository)(nil) // interface compliance check

func NewChildRepository(db *sqlx.DB) *childRepository {
	return &childRepository{db: db}
}

func (repo childRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return child.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo childRepository) CreateChild(ctx context.Context, c child.Child) (child.Child, error) {
	c.ID = uuid.New().String()
	row := marshalChild(c)
	q := `INSERT INTO child (id, user_id, name, birthdate, grade_level, color, archived, created_at, updated_at)
		VALUES (:id, :user_id, :name, :birthdate, :grade_level, :color, :archived, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return child.Child{}, errors.Wrap(err, "inserting child")
	}
	return c, nil
}

func (repo childRepository) QueryChildren(ctx context.Context, userID string) ([]child.Child, error) {
	var rows []childRow
	q := `SELECT * FROM child WHERE user_id = $1 ORDER BY name`
	if err := repo.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, errors.Wrap(err, "querying children")
	}
	return unmarshalChildren(rows), nil
}

func (repo childRepository) GetChildByID(ctx context.Context, userID, id string) (child.Child, error) {
	var row childRow
	q := `SELECT * FROM child WHERE user_id = $1 AND id = $2`
	if err := repo.db.GetContext(ctx, &row, q, userID, id); err != nil {
		return child.Child{}, repo.trapNoRowsErr(err, "getting child")
	}
	return row.unmarshal(), nil
}

func (repo childRepository) FilterChildren(ctx context.Context, userID string, filter child.QueryFilter) ([]child.Child, error) {
	q := `SELECT * FROM child WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		q += ` AND name ILIKE ` + placeholder(len(args))
	}
	if filter.Archived != nil {
		args = append(args, *filter.Archived)
		q += ` AND archived = ` + placeholder(len(args))
	}
	q += ` ORDER BY name`

	var rows []childRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering children")
	}
	return unmarshalChildren(rows), nil
}

func (repo childRepository) UpdateChild(ctx context.Context, c child.Child, archived *bool) (child.Child, error) {
	if archived != nil {
		c.Archived = *archived
	}
	row := marshalChild(c)
	q := `UPDATE child SET name = :name, birthdate = :birthdate, grade_level = :grade_level,
		color = :color, archived = :archived, updated_at = :updated_at
		WHERE user_id = :user_id AND id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, row)
	if err != nil {
		return child.Child{}, errors.Wrap(err, "updating child")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return child.Child{}, child.ErrNotFound
	}
	return c, nil
}

func (repo childRepository) DeleteChildrenByID(ctx context.Context, userID string, ids ...string) error {
	q := `DELETE FROM child WHERE user_id = $1 AND id = ANY($2)`
	if _, err := repo.db.ExecContext(ctx, q, userID, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting children")
	}
	return nil
}

func unmarshalChildren(rows []childRow) []child.Child {
	children := make([]child.Child, 0, len(rows))
	for _, r := range rows {
		children = append(children, r.unmarshal())
	}
	return children
}
