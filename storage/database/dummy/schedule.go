package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/harmonyhs/harmony/core/schedule"
)

type scheduleRepository struct {
	db *scheduleTable
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *DB) *scheduleRepository {
	return &scheduleRepository{db: db.schedule}
}

func overrideKey(userID, date string) string {
	return userID + "/" + date
}

func (repo *scheduleRepository) GetSettings(ctx context.Context, userID string) (schedule.Settings, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.settings[userID]; ok {
		return *s, nil
	}
	return schedule.Settings{}, schedule.ErrSettingsNotFound
}

func (repo *scheduleRepository) SaveSettings(ctx context.Context, settings schedule.Settings) (schedule.Settings, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.settings[settings.UserID] = &settings
	return settings, nil
}

func (repo *scheduleRepository) QueryOverrides(ctx context.Context, userID string) ([]schedule.DayOverride, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	overrides := make([]schedule.DayOverride, 0, len(repo.db.overrides))
	for _, o := range repo.db.overrides {
		if o.UserID == userID {
			overrides = append(overrides, *o)
		}
	}
	sort.Slice(overrides, func(i, j int) bool { return overrides[i].Date < overrides[j].Date })
	return overrides, nil
}

func (repo *scheduleRepository) SaveOverride(ctx context.Context, ovr schedule.DayOverride) (schedule.DayOverride, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	key := overrideKey(ovr.UserID, ovr.Date)
	if orig, ok := repo.db.overrides[key]; ok {
		ovr.ID = orig.ID
		ovr.CreatedAt = orig.CreatedAt
	} else if ovr.ID == "" {
		ovr.ID = uuid.New().String()
	}
	repo.db.overrides[key] = &ovr
	return ovr, nil
}

func (repo *scheduleRepository) DeleteOverride(ctx context.Context, userID, date string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	key := overrideKey(userID, date)
	if _, ok := repo.db.overrides[key]; !ok {
		return schedule.ErrOverrideNotFound
	}
	delete(repo.db.overrides, key)
	return nil
}
