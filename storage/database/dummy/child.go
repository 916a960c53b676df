package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/harmonyhs/harmony/core/child"
)

type childRepository struct {
	db *childTable
}

var _ child.Repository = (*childRepository)(nil) // interface compliance check

func NewChildRepository(db *DB) *childRepository {
	return &childRepository{db: db.child}
}

func (repo *childRepository) query(userID string) []child.Child {
	children := make([]child.Child, 0, len(repo.db.table))
	for _, c := range repo.db.table {
		if c.UserID == userID {
			children = append(children, *c)
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })
	return children
}

func (repo *childRepository) CreateChild(ctx context.Context, c child.Child) (child.Child, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	c.ID = uuid.New().String()
	repo.db.table[c.ID] = &c
	return c, nil
}

func (repo *childRepository) QueryChildren(ctx context.Context, userID string) ([]child.Child, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(userID), nil
}

func (repo *childRepository) GetChildByID(ctx context.Context, userID, id string) (child.Child, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if c, ok := repo.db.table[id]; ok && c.UserID == userID {
		return *c, nil
	}
	return child.Child{}, child.ErrNotFound
}

func (repo *childRepository) FilterChildren(ctx context.Context, userID string, filter child.QueryFilter) ([]child.Child, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	children := repo.query(userID)

	if filter.Search != "" {
		var filtered []child.Child
		search := strings.ToLower(filter.Search)
		for _, c := range children {
			if strings.Contains(strings.ToLower(c.Name), search) {
				filtered = append(filtered, c)
			}
		}
		children = filtered
	}

	if filter.Archived != nil {
		var filtered []child.Child
		for _, c := range children {
			if c.Archived == *filter.Archived {
				filtered = append(filtered, c)
			}
		}
		children = filtered
	}

	return children, nil
}

func (repo *childRepository) UpdateChild(ctx context.Context, c child.Child, archived *bool) (child.Child, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[c.ID]
	if !ok || orig.UserID != c.UserID {
		return child.Child{}, child.ErrNotFound
	}
	if archived != nil {
		c.Archived = *archived
	}
	repo.db.table[c.ID] = &c
	return c, nil
}

func (repo *childRepository) DeleteChildrenByID(ctx context.Context, userID string, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		if c, ok := repo.db.table[id]; ok && c.UserID == userID {
			delete(repo.db.table, id)
		}
	}
	return nil
}
