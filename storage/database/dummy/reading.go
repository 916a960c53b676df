package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/harmonyhs/harmony/core/reading"
)

type readingRepository struct {
	db *readingTable
}

var _ reading.Repository = (*readingRepository)(nil) // interface compliance check

func NewReadingRepository(db *DB) *readingRepository {
	return &readingRepository{db: db.reading}
}

func (repo *readingRepository) CreateEntry(ctx context.Context, e reading.Entry) (reading.Entry, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	e.ID = uuid.New().String()
	repo.db.table[e.ID] = &e
	return e, nil
}

func (repo *readingRepository) GetEntryByID(ctx context.Context, userID, id string) (reading.Entry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if e, ok := repo.db.table[id]; ok && e.UserID == userID {
		return *e, nil
	}
	return reading.Entry{}, reading.ErrNotFound
}

func (repo *readingRepository) FilterEntries(ctx context.Context, userID string, filter reading.QueryFilter) ([]reading.Entry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	entries := make([]reading.Entry, 0, len(repo.db.table))
	for _, e := range repo.db.table {
		if e.UserID != userID {
			continue
		}
		if filter.ChildID != "" && e.ChildID != filter.ChildID {
			continue
		}
		if filter.From != "" && e.Date < filter.From {
			continue
		}
		if filter.To != "" && e.Date > filter.To {
			continue
		}
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
	return entries, nil
}

func (repo *readingRepository) UpdateEntry(ctx context.Context, e reading.Entry) (reading.Entry, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[e.ID]
	if !ok || orig.UserID != e.UserID {
		return reading.Entry{}, reading.ErrNotFound
	}
	repo.db.table[e.ID] = &e
	return e, nil
}

func (repo *readingRepository) DeleteEntriesByID(ctx context.Context, userID string, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		if e, ok := repo.db.table[id]; ok && e.UserID == userID {
			delete(repo.db.table, id)
		}
	}
	return nil
}
