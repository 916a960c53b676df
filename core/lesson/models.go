package lesson

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/harmonyhs/harmony/core"
)

// Lesson statuses.
const (
	StatusPlanned = "planned"
	StatusDone    = "done"
	StatusSkipped = "skipped"
)

// Grade is an optional score attached to a completed lesson.
type Grade struct {
	Score  float64 `json:"score"`
	Max    float64 `json:"max"`
	Letter string  `json:"letter,omitempty"`
}

// Lesson is one unit of work inside a curriculum. Date stays empty
// until the lesson is scheduled onto a school day.
type Lesson struct {
	ID           string    `json:"id"`
	UserID       string    `json:"-"`
	CurriculumID string    `json:"curriculum_id"`
	Title        string    `json:"title"`
	Notes        string    `json:"notes,omitempty"`
	Date         string    `json:"date,omitempty"` // date key
	SortOrder    int       `json:"sort_order"`
	Status       string    `json:"status"`
	Grade        *Grade    `json:"grade,omitempty"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
}

// NewLesson contains information needed to create a new Lesson.
type NewLesson struct {
	CurriculumID string `json:"curriculum_id" validate:"required,uuid4"`
	Title        string `json:"title" validate:"required"`
	Notes        string `json:"notes"`
	Date         string `json:"date" validate:"omitempty,datekey"`
	SortOrder    int    `json:"sort_order" validate:"min=0"`
}

func (nl *NewLesson) Validate(validate *validator.Validate) error {
	nl.Title = core.CleanString(nl.Title)
	return validate.Struct(nl)
}

// UpdateLesson defines what may be modified on an existing Lesson.
type UpdateLesson struct {
	Title     string `json:"title"`
	Notes     string `json:"notes"`
	Date      string `json:"date" validate:"omitempty,datekey"`
	SortOrder *int   `json:"sort_order" validate:"omitempty,min=0"`
	Status    string `json:"status" validate:"omitempty,oneof=planned done skipped"`
}

func (ul *UpdateLesson) Validate(validate *validator.Validate, orig Lesson) error {
	title := core.CleanString(ul.Title)
	if title != "" {
		ul.Title = title
	} else {
		ul.Title = orig.Title
	}
	if ul.Status == "" {
		ul.Status = orig.Status
	}
	return validate.Struct(ul)
}

// SetGrade contains a grade assignment for a lesson.
type SetGrade struct {
	Score  float64 `json:"score" validate:"min=0"`
	Max    float64 `json:"max" validate:"required,gtefield=Score"`
	Letter string  `json:"letter"`
}

func (sg *SetGrade) Validate(validate *validator.Validate) error {
	sg.Letter = core.CleanString(sg.Letter)
	return validate.Struct(sg)
}

type QueryFilter struct {
	CurriculumID string `query:"curriculum"`
	Status       string `query:"status"`
	From         string `query:"from"` // date key, inclusive
	To           string `query:"to"`   // date key, inclusive
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.CurriculumID == "" && qf.Status == "" && qf.From == "" && qf.To == ""
}
