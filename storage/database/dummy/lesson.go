package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/harmonyhs/harmony/core/lesson"
)

type lessonRepository struct {
	db *lessonTable
}

var _ lesson.Repository = (*lessonRepository)(nil) // interface compliance check

func NewLessonRepository(db *DB) *lessonRepository {
	return &lessonRepository{db: db.lesson}
}

func (repo *lessonRepository) CreateLesson(ctx context.Context, l lesson.Lesson) (lesson.Lesson, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	l.ID = uuid.New().String()
	repo.db.table[l.ID] = &l
	return l, nil
}

func (repo *lessonRepository) GetLessonByID(ctx context.Context, userID, id string) (lesson.Lesson, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if l, ok := repo.db.table[id]; ok && l.UserID == userID {
		return *l, nil
	}
	return lesson.Lesson{}, lesson.ErrNotFound
}

func (repo *lessonRepository) FilterLessons(ctx context.Context, userID string, filter lesson.QueryFilter) ([]lesson.Lesson, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	lessons := make([]lesson.Lesson, 0, len(repo.db.table))
	for _, l := range repo.db.table {
		if l.UserID != userID {
			continue
		}
		if filter.CurriculumID != "" && l.CurriculumID != filter.CurriculumID {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		if filter.From != "" && (l.Date == "" || l.Date < filter.From) {
			continue
		}
		if filter.To != "" && (l.Date == "" || l.Date > filter.To) {
			continue
		}
		lessons = append(lessons, *l)
	}
	sort.Slice(lessons, func(i, j int) bool {
		if lessons[i].Date != lessons[j].Date {
			// scheduled lessons first, in date order
			if lessons[i].Date == "" {
				return false
			}
			if lessons[j].Date == "" {
				return true
			}
			return lessons[i].Date < lessons[j].Date
		}
		return lessons[i].SortOrder < lessons[j].SortOrder
	})
	return lessons, nil
}

func (repo *lessonRepository) UpdateLesson(ctx context.Context, l lesson.Lesson) (lesson.Lesson, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[l.ID]
	if !ok || orig.UserID != l.UserID {
		return lesson.Lesson{}, lesson.ErrNotFound
	}
	repo.db.table[l.ID] = &l
	return l, nil
}

func (repo *lessonRepository) DeleteLessonsByID(ctx context.Context, userID string, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		if l, ok := repo.db.table[id]; ok && l.UserID == userID {
			delete(repo.db.table, id)
		}
	}
	return nil
}
