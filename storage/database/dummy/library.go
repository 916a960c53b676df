package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/harmonyhs/harmony/core/library"
)

type libraryRepository struct {
	db *libraryTable
}

var _ library.Repository = (*libraryRepository)(nil) // interface compliance check

func NewLibraryRepository(db *DB) *libraryRepository {
	return &libraryRepository{db: db.library}
}

func (repo *libraryRepository) CreateResource(ctx context.Context, r library.Resource) (library.Resource, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	r.ID = uuid.New().String()
	repo.db.resources[r.ID] = &r
	return r, nil
}

func (repo *libraryRepository) GetResourceByID(ctx context.Context, userID, id string) (library.Resource, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if r, ok := repo.db.resources[id]; ok && r.UserID == userID {
		return *r, nil
	}
	return library.Resource{}, library.ErrResourceNotFound
}

func (repo *libraryRepository) FilterResources(ctx context.Context, userID string, filter library.ResourceFilter) ([]library.Resource, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	resources := make([]library.Resource, 0, len(repo.db.resources))
	for _, r := range repo.db.resources {
		if r.UserID != userID {
			continue
		}
		if filter.Kind != "" && r.Kind != filter.Kind {
			continue
		}
		if filter.SubjectID != "" && r.SubjectID != filter.SubjectID {
			continue
		}
		if filter.Search != "" {
			search := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(r.Title), search) &&
				!strings.Contains(strings.ToLower(r.Notes), search) {
				continue
			}
		}
		resources = append(resources, *r)
	}
	sort.Slice(resources, func(i, j int) bool { return resources[i].Title < resources[j].Title })
	return resources, nil
}

func (repo *libraryRepository) UpdateResource(ctx context.Context, r library.Resource) (library.Resource, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.resources[r.ID]
	if !ok || orig.UserID != r.UserID {
		return library.Resource{}, library.ErrResourceNotFound
	}
	repo.db.resources[r.ID] = &r
	return r, nil
}

func (repo *libraryRepository) DeleteResourcesByID(ctx context.Context, userID string, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		if r, ok := repo.db.resources[id]; ok && r.UserID == userID {
			delete(repo.db.resources, id)
		}
	}
	return nil
}

func (repo *libraryRepository) CreateBooklistEntry(ctx context.Context, b library.BooklistEntry) (library.BooklistEntry, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	b.ID = uuid.New().String()
	repo.db.booklist[b.ID] = &b
	return b, nil
}

func (repo *libraryRepository) GetBooklistEntryByID(ctx context.Context, userID, id string) (library.BooklistEntry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if b, ok := repo.db.booklist[id]; ok && b.UserID == userID {
		return *b, nil
	}
	return library.BooklistEntry{}, library.ErrBooklistNotFound
}

func (repo *libraryRepository) FilterBooklist(ctx context.Context, userID string, filter library.BooklistFilter) ([]library.BooklistEntry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	entries := make([]library.BooklistEntry, 0, len(repo.db.booklist))
	for _, b := range repo.db.booklist {
		if b.UserID != userID {
			continue
		}
		if filter.ChildID != "" && b.ChildID != filter.ChildID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		entries = append(entries, *b)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Title < entries[j].Title })
	return entries, nil
}

func (repo *libraryRepository) UpdateBooklistEntry(ctx context.Context, b library.BooklistEntry) (library.BooklistEntry, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.booklist[b.ID]
	if !ok || orig.UserID != b.UserID {
		return library.BooklistEntry{}, library.ErrBooklistNotFound
	}
	repo.db.booklist[b.ID] = &b
	return b, nil
}

func (repo *libraryRepository) DeleteBooklistEntriesByID(ctx context.Context, userID string, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		if b, ok := repo.db.booklist[id]; ok && b.UserID == userID {
			delete(repo.db.booklist, id)
		}
	}
	return nil
}
