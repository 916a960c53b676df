package library

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrBooklistNotFound = errors.New("booklist entry not found")
)

type (
	Repository interface {
		CreateResource(ctx context.Context, r Resource) (Resource, error)
		GetResourceByID(ctx context.Context, userID, id string) (Resource, error)
		FilterResources(ctx context.Context, userID string, filter ResourceFilter) ([]Resource, error)
		UpdateResource(ctx context.Context, r Resource) (Resource, error)
		DeleteResourcesByID(ctx context.Context, userID string, ids ...string) error

		CreateBooklistEntry(ctx context.Context, b BooklistEntry) (BooklistEntry, error)
		GetBooklistEntryByID(ctx context.Context, userID, id string) (BooklistEntry, error)
		FilterBooklist(ctx context.Context, userID string, filter BooklistFilter) ([]BooklistEntry, error)
		UpdateBooklistEntry(ctx context.Context, b BooklistEntry) (BooklistEntry, error)
		DeleteBooklistEntriesByID(ctx context.Context, userID string, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CreateResource(ctx context.Context, userID string, nr NewResource) (Resource, error) {
	now := time.Now().UTC()
	return svc.repo.CreateResource(ctx, Resource{
		UserID:    userID,
		Title:     nr.Title,
		URL:       nr.URL,
		Kind:      nr.Kind,
		Notes:     nr.Notes,
		SubjectID: nr.SubjectID,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *Service) GetResourceByID(ctx context.Context, userID, id string) (Resource, error) {
	return svc.repo.GetResourceByID(ctx, userID, id)
}

func (svc *Service) FilterResources(ctx context.Context, userID string, filter ResourceFilter) ([]Resource, error) {
	filter.Clean()
	return svc.repo.FilterResources(ctx, userID, filter)
}

func (svc *Service) UpdateResource(ctx context.Context, userID, id string, ur UpdateResource) (Resource, error) {
	orig, err := svc.repo.GetResourceByID(ctx, userID, id)
	if err != nil {
		return Resource{}, err
	}
	r := orig
	r.Title = ur.Title
	r.URL = ur.URL
	r.Kind = ur.Kind
	r.Notes = ur.Notes
	r.SubjectID = ur.SubjectID
	r.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateResource(ctx, r)
}

func (svc *Service) DeleteResources(ctx context.Context, userID string, ids ...string) error {
	return svc.repo.DeleteResourcesByID(ctx, userID, ids...)
}

func (svc *Service) CreateBooklistEntry(ctx context.Context, userID string, nb NewBooklistEntry) (BooklistEntry, error) {
	now := time.Now().UTC()
	return svc.repo.CreateBooklistEntry(ctx, BooklistEntry{
		UserID:    userID,
		ChildID:   nb.ChildID,
		Title:     nb.Title,
		Author:    nb.Author,
		Status:    nb.Status,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *Service) GetBooklistEntryByID(ctx context.Context, userID, id string) (BooklistEntry, error) {
	return svc.repo.GetBooklistEntryByID(ctx, userID, id)
}

func (svc *Service) FilterBooklist(ctx context.Context, userID string, filter BooklistFilter) ([]BooklistEntry, error) {
	return svc.repo.FilterBooklist(ctx, userID, filter)
}

func (svc *Service) UpdateBooklistEntry(ctx context.Context, userID, id string, ub UpdateBooklistEntry) (BooklistEntry, error) {
	orig, err := svc.repo.GetBooklistEntryByID(ctx, userID, id)
	if err != nil {
		return BooklistEntry{}, err
	}
	b := orig
	b.ChildID = ub.ChildID
	b.Title = ub.Title
	b.Author = ub.Author
	b.Status = ub.Status
	b.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateBooklistEntry(ctx, b)
}

func (svc *Service) DeleteBooklistEntries(ctx context.Context, userID string, ids ...string) error {
	return svc.repo.DeleteBooklistEntriesByID(ctx, userID, ids...)
}
