package reading

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("reading entry not found")

type (
	Repository interface {
		CreateEntry(ctx context.Context, e Entry) (Entry, error)
		GetEntryByID(ctx context.Context, userID, id string) (Entry, error)
		FilterEntries(ctx context.Context, userID string, filter QueryFilter) ([]Entry, error)
		UpdateEntry(ctx context.Context, e Entry) (Entry, error)
		DeleteEntriesByID(ctx context.Context, userID string, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID string, ne NewEntry) (Entry, error) {
	now := time.Now().UTC()
	return svc.repo.CreateEntry(ctx, Entry{
		UserID:    userID,
		ChildID:   ne.ChildID,
		BookTitle: ne.BookTitle,
		Author:    ne.Author,
		Date:      ne.Date,
		Minutes:   ne.Minutes,
		Pages:     ne.Pages,
		Notes:     ne.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *Service) GetByID(ctx context.Context, userID, id string) (Entry, error) {
	return svc.repo.GetEntryByID(ctx, userID, id)
}

func (svc *Service) Filter(ctx context.Context, userID string, filter QueryFilter) ([]Entry, error) {
	return svc.repo.FilterEntries(ctx, userID, filter)
}

func (svc *Service) Update(ctx context.Context, userID, id string, ue UpdateEntry) (Entry, error) {
	orig, err := svc.repo.GetEntryByID(ctx, userID, id)
	if err != nil {
		return Entry{}, err
	}
	e := orig
	e.BookTitle = ue.BookTitle
	e.Author = ue.Author
	e.Date = ue.Date
	e.Notes = ue.Notes
	if ue.Minutes != nil {
		e.Minutes = *ue.Minutes
	}
	if ue.Pages != nil {
		e.Pages = *ue.Pages
	}
	e.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateEntry(ctx, e)
}

func (svc *Service) Delete(ctx context.Context, userID string, ids ...string) error {
	return svc.repo.DeleteEntriesByID(ctx, userID, ids...)
}

// Totals aggregates the filtered entries per child, ordered by childID.
func (svc *Service) Totals(ctx context.Context, userID string, filter QueryFilter) ([]ChildTotals, error) {
	entries, err := svc.repo.FilterEntries(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	byChild := make(map[string]*ChildTotals)
	for _, e := range entries {
		t, ok := byChild[e.ChildID]
		if !ok {
			t = &ChildTotals{ChildID: e.ChildID}
			byChild[e.ChildID] = t
		}
		t.Entries++
		t.Minutes += e.Minutes
		t.Pages += e.Pages
	}

	totals := make([]ChildTotals, 0, len(byChild))
	for _, t := range byChild {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].ChildID < totals[j].ChildID })
	return totals, nil
}
