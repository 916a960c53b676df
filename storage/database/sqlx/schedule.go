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

	"github.com/harmonyhs/harmony/core/schedule"
)

type settingsRow struct {
	UserID    string        `db:"user_id"`
	Weekdays  pq.Int64Array `db:"weekdays"`
	UpdatedAt time.Time     `db:"updated_at"`
}

func (r settingsRow) unmarshal() schedule.Settings {
	days := make([]int, 0, len(r.Weekdays))
	for _, d := range r.Weekdays {
		days = append(days, int(d))
	}
	return schedule.Settings{
		UserID:    r.UserID,
		Weekdays:  days,
		UpdatedAt: r.UpdatedAt,
	}
}

type overrideRow struct {
	ID        string      `db:"id"`
	UserID    string      `db:"user_id"`
	Date      string      `db:"date"`
	Kind      string      `db:"kind"`
	Note      null.String `db:"note"`
	CreatedAt time.Time   `db:"created_at"`
}

func (r overrideRow) unmarshal() schedule.DayOverride {
	return schedule.DayOverride{
		ID:        r.ID,
		UserID:    r.UserID,
		Date:      r.Date,
		Kind:      schedule.OverrideKind(r.Kind),
		Note:      r.Note.String,
		CreatedAt: r.CreatedAt,
	}
}

type scheduleRepository struct {
	db *sqlx.DB
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *sqlx.DB) *scheduleRepository {
	return &scheduleRepository{db: db}
}

func (repo scheduleRepository) GetSettings(ctx context.Context, userID string) (schedule.Settings, error) {
	var row settingsRow
	q := `SELECT * FROM schedule_settings WHERE user_id = $1`
	if err := repo.db.GetContext(ctx, &row, q, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return schedule.Settings{}, schedule.ErrSettingsNotFound
		}
		return schedule.Settings{}, errors.Wrap(err, "getting schedule settings")
	}
	return row.unmarshal(), nil
}

func (repo scheduleRepository) SaveSettings(ctx context.Context, settings schedule.Settings) (schedule.Settings, error) {
	days := make(pq.Int64Array, 0, len(settings.Weekdays))
	for _, d := range settings.Weekdays {
		days = append(days, int64(d))
	}
	q := `INSERT INTO schedule_settings (user_id, weekdays, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET weekdays = EXCLUDED.weekdays, updated_at = EXCLUDED.updated_at`
	if _, err := repo.db.ExecContext(ctx, q, settings.UserID, days, settings.UpdatedAt.UTC()); err != nil {
		return schedule.Settings{}, errors.Wrap(err, "saving schedule settings")
	}
	return settings, nil
}

func (repo scheduleRepository) QueryOverrides(ctx context.Context, userID string) ([]schedule.DayOverride, error) {
	var rows []overrideRow
	q := `SELECT * FROM day_override WHERE user_id = $1 ORDER BY date`
	if err := repo.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, errors.Wrap(err, "querying day overrides")
	}
	overrides := make([]schedule.DayOverride, 0, len(rows))
	for _, r := range rows {
		overrides = append(overrides, r.unmarshal())
	}
	return overrides, nil
}

func (repo scheduleRepository) SaveOverride(ctx context.Context, ovr schedule.DayOverride) (schedule.DayOverride, error) {
	if ovr.ID == "" {
		ovr.ID = uuid.New().String()
	}
	q := `INSERT INTO day_override (id, user_id, date, kind, note, created_at) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, date) DO UPDATE SET kind = EXCLUDED.kind, note = EXCLUDED.note`
	_, err := repo.db.ExecContext(ctx, q, ovr.ID, ovr.UserID, ovr.Date, string(ovr.Kind),
		null.NewString(ovr.Note, ovr.Note != ""), ovr.CreatedAt.UTC())
	if err != nil {
		return schedule.DayOverride{}, errors.Wrap(err, "saving day override")
	}
	return ovr, nil
}

func (repo scheduleRepository) DeleteOverride(ctx context.Context, userID, date string) error {
	q := `DELETE FROM day_override WHERE user_id = $1 AND date = $2`
	res, err := repo.db.ExecContext(ctx, q, userID, date)
	if err != nil {
		return errors.Wrap(err, "deleting day override")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return schedule.ErrOverrideNotFound
	}
	return nil
}
