package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/harmonyhs/harmony/core/subject"
)

type subjectRepository struct {
	db *subjectTable
}

var _ subject.Repository = (*subjectRepository)(nil) // interface compliance check

func NewSubjectRepository(db *DB) *subjectRepository {
	return &subjectRepository{db: db.subject}
}

func (repo *subjectRepository) CreateSubject(ctx context.Context, s subject.Subject) (subject.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	s.ID = uuid.New().String()
	repo.db.subjects[s.ID] = &s
	return s, nil
}

func (repo *subjectRepository) QuerySubjects(ctx context.Context, userID string) ([]subject.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	subjects := make([]subject.Subject, 0, len(repo.db.subjects))
	for _, s := range repo.db.subjects {
		if s.UserID == userID {
			subjects = append(subjects, *s)
		}
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].Name < subjects[j].Name })
	return subjects, nil
}

func (repo *subjectRepository) GetSubjectByID(ctx context.Context, userID, id string) (subject.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.subjects[id]; ok && s.UserID == userID {
		return *s, nil
	}
	return subject.Subject{}, subject.ErrNotFound
}

func (repo *subjectRepository) UpdateSubject(ctx context.Context, s subject.Subject, archived *bool) (subject.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.subjects[s.ID]
	if !ok || orig.UserID != s.UserID {
		return subject.Subject{}, subject.ErrNotFound
	}
	if archived != nil {
		s.Archived = *archived
	}
	repo.db.subjects[s.ID] = &s
	return s, nil
}

func (repo *subjectRepository) DeleteSubjectsByID(ctx context.Context, userID string, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		if s, ok := repo.db.subjects[id]; ok && s.UserID == userID {
			delete(repo.db.subjects, id)
		}
	}
	return nil
}

func (repo *subjectRepository) CreateCurriculum(ctx context.Context, c subject.Curriculum) (subject.Curriculum, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	c.ID = uuid.New().String()
	repo.db.curricula[c.ID] = &c
	return c, nil
}

func (repo *subjectRepository) GetCurriculumByID(ctx context.Context, userID, id string) (subject.Curriculum, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if c, ok := repo.db.curricula[id]; ok && c.UserID == userID {
		return *c, nil
	}
	return subject.Curriculum{}, subject.ErrCurriculumNotFound
}

func (repo *subjectRepository) FilterCurricula(ctx context.Context, userID string, filter subject.CurriculumFilter) ([]subject.Curriculum, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	curricula := make([]subject.Curriculum, 0, len(repo.db.curricula))
	for _, c := range repo.db.curricula {
		if c.UserID != userID {
			continue
		}
		if filter.SubjectID != "" && c.SubjectID != filter.SubjectID {
			continue
		}
		if filter.ChildID != "" && c.ChildID != filter.ChildID {
			continue
		}
		if filter.Archived != nil && c.Archived != *filter.Archived {
			continue
		}
		curricula = append(curricula, *c)
	}
	sort.Slice(curricula, func(i, j int) bool { return curricula[i].Name < curricula[j].Name })
	return curricula, nil
}

func (repo *subjectRepository) UpdateCurriculum(ctx context.Context, c subject.Curriculum, archived *bool) (subject.Curriculum, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.curricula[c.ID]
	if !ok || orig.UserID != c.UserID {
		return subject.Curriculum{}, subject.ErrCurriculumNotFound
	}
	if archived != nil {
		c.Archived = *archived
	}
	repo.db.curricula[c.ID] = &c
	return c, nil
}

func (repo *subjectRepository) DeleteCurriculaByID(ctx context.Context, userID string, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		if c, ok := repo.db.curricula[id]; ok && c.UserID == userID {
			delete(repo.db.curricula, id)
		}
	}
	return nil
}
