package child

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("child not found")

type (
	Repository interface {
		CreateChild(ctx context.Context, c Child) (Child, error)
		QueryChildren(ctx context.Context, userID string) ([]Child, error)
		GetChildByID(ctx context.Context, userID, id string) (Child, error)
		FilterChildren(ctx context.Context, userID string, filter QueryFilter) ([]Child, error)
		UpdateChild(ctx context.Context, c Child, archived *bool) (Child, error)
		DeleteChildrenByID(ctx context.Context, userID string, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID string, nc NewChild) (Child, error) {
	now := time.Now().UTC()
	return svc.repo.CreateChild(ctx, Child{
		UserID:     userID,
		Name:       nc.Name,
		Birthdate:  nc.Birthdate,
		GradeLevel: nc.GradeLevel,
		Color:      nc.Color,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func (svc *Service) QueryAll(ctx context.Context, userID string) ([]Child, error) {
	return svc.repo.QueryChildren(ctx, userID)
}

func (svc *Service) GetByID(ctx context.Context, userID, id string) (Child, error) {
	return svc.repo.GetChildByID(ctx, userID, id)
}

func (svc *Service) Filter(ctx context.Context, userID string, filter QueryFilter) ([]Child, error) {
	return svc.repo.FilterChildren(ctx, userID, filter)
}

func (svc *Service) Update(ctx context.Context, userID, id string, uc UpdateChild) (Child, error) {
	orig, err := svc.repo.GetChildByID(ctx, userID, id)
	if err != nil {
		return Child{}, err
	}
	c := Child{
		ID:         orig.ID,
		UserID:     orig.UserID,
		Name:       uc.Name,
		Birthdate:  uc.Birthdate,
		GradeLevel: uc.GradeLevel,
		Color:      uc.Color,
		CreatedAt:  orig.CreatedAt,
		UpdatedAt:  time.Now().UTC(),
	}
	return svc.repo.UpdateChild(ctx, c, uc.Archived)
}

func (svc *Service) Delete(ctx context.Context, userID string, ids ...string) error {
	return svc.repo.DeleteChildrenByID(ctx, userID, ids...)
}
