package subject

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrNotFound           = errors.New("subject not found")
	ErrCurriculumNotFound = errors.New("curriculum not found")
)

type (
	Repository interface {
		CreateSubject(ctx context.Context, s Subject) (Subject, error)
		QuerySubjects(ctx context.Context, userID string) ([]Subject, error)
		GetSubjectByID(ctx context.Context, userID, id string) (Subject, error)
		UpdateSubject(ctx context.Context, s Subject, archived *bool) (Subject, error)
		DeleteSubjectsByID(ctx context.Context, userID string, ids ...string) error

		CreateCurriculum(ctx context.Context, c Curriculum) (Curriculum, error)
		GetCurriculumByID(ctx context.Context, userID, id string) (Curriculum, error)
		FilterCurricula(ctx context.Context, userID string, filter CurriculumFilter) ([]Curriculum, error)
		UpdateCurriculum(ctx context.Context, c Curriculum, archived *bool) (Curriculum, error)
		DeleteCurriculaByID(ctx context.Context, userID string, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID string, ns NewSubject) (Subject, error) {
	now := time.Now().UTC()
	return svc.repo.CreateSubject(ctx, Subject{
		UserID:    userID,
		Name:      ns.Name,
		Color:     ns.Color,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *Service) QueryAll(ctx context.Context, userID string) ([]Subject, error) {
	return svc.repo.QuerySubjects(ctx, userID)
}

func (svc *Service) GetByID(ctx context.Context, userID, id string) (Subject, error) {
	return svc.repo.GetSubjectByID(ctx, userID, id)
}

func (svc *Service) Update(ctx context.Context, userID, id string, us UpdateSubject) (Subject, error) {
	orig, err := svc.repo.GetSubjectByID(ctx, userID, id)
	if err != nil {
		return Subject{}, err
	}
	s := Subject{
		ID:        orig.ID,
		UserID:    orig.UserID,
		Name:      us.Name,
		Color:     us.Color,
		CreatedAt: orig.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpdateSubject(ctx, s, us.Archived)
}

func (svc *Service) Delete(ctx context.Context, userID string, ids ...string) error {
	return svc.repo.DeleteSubjectsByID(ctx, userID, ids...)
}

func (svc *Service) CreateCurriculum(ctx context.Context, userID string, nc NewCurriculum) (Curriculum, error) {
	now := time.Now().UTC()
	return svc.repo.CreateCurriculum(ctx, Curriculum{
		UserID:      userID,
		SubjectID:   nc.SubjectID,
		ChildID:     nc.ChildID,
		Name:        nc.Name,
		Description: nc.Description,
		ResourceURL: nc.ResourceURL,
		SchoolYear:  nc.SchoolYear,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (svc *Service) GetCurriculumByID(ctx context.Context, userID, id string) (Curriculum, error) {
	return svc.repo.GetCurriculumByID(ctx, userID, id)
}

func (svc *Service) FilterCurricula(ctx context.Context, userID string, filter CurriculumFilter) ([]Curriculum, error) {
	return svc.repo.FilterCurricula(ctx, userID, filter)
}

func (svc *Service) UpdateCurriculum(ctx context.Context, userID, id string, uc UpdateCurriculum) (Curriculum, error) {
	orig, err := svc.repo.GetCurriculumByID(ctx, userID, id)
	if err != nil {
		return Curriculum{}, err
	}
	c := Curriculum{
		ID:          orig.ID,
		UserID:      orig.UserID,
		SubjectID:   orig.SubjectID,
		ChildID:     orig.ChildID,
		Name:        uc.Name,
		Description: uc.Description,
		ResourceURL: uc.ResourceURL,
		SchoolYear:  uc.SchoolYear,
		CreatedAt:   orig.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}
	return svc.repo.UpdateCurriculum(ctx, c, uc.Archived)
}

func (svc *Service) DeleteCurricula(ctx context.Context, userID string, ids ...string) error {
	return svc.repo.DeleteCurriculaByID(ctx, userID, ids...)
}
