package library

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/harmonyhs/harmony/core"
)

// Resource kinds.
const (
	KindBook  = "book"
	KindSite  = "site"
	KindVideo = "video"
	KindOther = "other"
)

// Booklist statuses.
const (
	StatusWishlist = "wishlist"
	StatusReading  = "reading"
	StatusFinished = "finished"
)

// Resource is one saved teaching resource, optionally tied to a subject.
type Resource struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Title     string    `json:"title"`
	URL       string    `json:"url,omitempty"`
	Kind      string    `json:"kind"`
	Notes     string    `json:"notes,omitempty"`
	SubjectID string    `json:"subject_id,omitempty"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// NewResource contains information needed to create a new Resource.
type NewResource struct {
	Title     string `json:"title" validate:"required"`
	URL       string `json:"url" validate:"omitempty,url"`
	Kind      string `json:"kind" validate:"required,oneof=book site video other"`
	Notes     string `json:"notes"`
	SubjectID string `json:"subject_id" validate:"omitempty,uuid4"`
}

func (nr *NewResource) Validate(validate *validator.Validate) error {
	nr.Title = core.CleanString(nr.Title)
	return validate.Struct(nr)
}

// UpdateResource defines what may be modified on an existing Resource.
type UpdateResource struct {
	Title     string `json:"title"`
	URL       string `json:"url" validate:"omitempty,url"`
	Kind      string `json:"kind" validate:"omitempty,oneof=book site video other"`
	Notes     string `json:"notes"`
	SubjectID string `json:"subject_id" validate:"omitempty,uuid4"`
}

func (ur *UpdateResource) Validate(validate *validator.Validate, orig Resource) error {
	title := core.CleanString(ur.Title)
	if title != "" {
		ur.Title = title
	} else {
		ur.Title = orig.Title
	}
	if ur.Kind == "" {
		ur.Kind = orig.Kind
	}
	return validate.Struct(ur)
}

type ResourceFilter struct {
	Kind      string `query:"kind"`
	SubjectID string `query:"subject"`
	Search    string `query:"search"`
}

func (rf *ResourceFilter) IsEmpty() bool {
	return rf.Kind == "" && rf.SubjectID == "" && rf.Search == ""
}

func (rf *ResourceFilter) Clean() {
	rf.Search = core.CleanString(rf.Search)
}

// BooklistEntry is one book on the family's reading wish/progress list,
// optionally assigned to a child.
type BooklistEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	ChildID   string    `json:"child_id,omitempty"`
	Title     string    `json:"title"`
	Author    string    `json:"author,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// NewBooklistEntry contains information needed to create a new BooklistEntry.
type NewBooklistEntry struct {
	ChildID string `json:"child_id" validate:"omitempty,uuid4"`
	Title   string `json:"title" validate:"required"`
	Author  string `json:"author"`
	Status  string `json:"status" validate:"required,oneof=wishlist reading finished"`
}

func (nb *NewBooklistEntry) Validate(validate *validator.Validate) error {
	nb.Title = core.CleanString(nb.Title)
	nb.Author = core.CleanString(nb.Author)
	if nb.Status == "" {
		nb.Status = StatusWishlist
	}
	return validate.Struct(nb)
}

// UpdateBooklistEntry defines what may be modified on an existing BooklistEntry.
type UpdateBooklistEntry struct {
	ChildID string `json:"child_id" validate:"omitempty,uuid4"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Status  string `json:"status" validate:"omitempty,oneof=wishlist reading finished"`
}

func (ub *UpdateBooklistEntry) Validate(validate *validator.Validate, orig BooklistEntry) error {
	title := core.CleanString(ub.Title)
	if title != "" {
		ub.Title = title
	} else {
		ub.Title = orig.Title
	}
	if ub.Status == "" {
		ub.Status = orig.Status
	}
	return validate.Struct(ub)
}

type BooklistFilter struct {
	ChildID string `query:"child"`
	Status  string `query:"status"`
}

func (bf *BooklistFilter) IsEmpty() bool {
	return bf.ChildID == "" && bf.Status == ""
}
