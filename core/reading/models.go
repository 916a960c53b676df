package reading

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/harmonyhs/harmony/core"
)

// Entry is one reading-log record for a child.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	ChildID   string    `json:"child_id"`
	BookTitle string    `json:"book_title"`
	Author    string    `json:"author,omitempty"`
	Date      string    `json:"date"` // date key
	Minutes   int       `json:"minutes"`
	Pages     int       `json:"pages"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// NewEntry contains information needed to create a new Entry.
type NewEntry struct {
	ChildID   string `json:"child_id" validate:"required,uuid4"`
	BookTitle string `json:"book_title" validate:"required"`
	Author    string `json:"author"`
	Date      string `json:"date" validate:"required,datekey"`
	Minutes   int    `json:"minutes" validate:"min=0"`
	Pages     int    `json:"pages" validate:"min=0"`
	Notes     string `json:"notes"`
}

func (ne *NewEntry) Validate(validate *validator.Validate) error {
	ne.BookTitle = core.CleanString(ne.BookTitle)
	ne.Author = core.CleanString(ne.Author)
	return validate.Struct(ne)
}

// UpdateEntry defines what may be modified on an existing Entry.
type UpdateEntry struct {
	BookTitle string `json:"book_title"`
	Author    string `json:"author"`
	Date      string `json:"date" validate:"omitempty,datekey"`
	Minutes   *int   `json:"minutes" validate:"omitempty,min=0"`
	Pages     *int   `json:"pages" validate:"omitempty,min=0"`
	Notes     string `json:"notes"`
}

func (ue *UpdateEntry) Validate(validate *validator.Validate, orig Entry) error {
	title := core.CleanString(ue.BookTitle)
	if title != "" {
		ue.BookTitle = title
	} else {
		ue.BookTitle = orig.BookTitle
	}
	if ue.Date == "" {
		ue.Date = orig.Date
	}
	return validate.Struct(ue)
}

type QueryFilter struct {
	ChildID string `query:"child"`
	From    string `query:"from"` // date key, inclusive
	To      string `query:"to"`   // date key, inclusive
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.ChildID == "" && qf.From == "" && qf.To == ""
}

// ChildTotals aggregates a child's reading over a filtered range.
type ChildTotals struct {
	ChildID string `json:"child_id"`
	Entries int    `json:"entries"`
	Minutes int    `json:"minutes"`
	Pages   int    `json:"pages"`
}
