package child

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/harmonyhs/harmony/core"
)

// Child is one student in a family account.
type Child struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	Name       string    `json:"name"`
	Birthdate  string    `json:"birthdate,omitempty"` // date key
	GradeLevel string    `json:"grade_level,omitempty"`
	Color      string    `json:"color,omitempty"`
	Archived   bool      `json:"archived"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

// NewChild contains information needed to create a new Child.
type NewChild struct {
	Name       string `json:"name" validate:"required"`
	Birthdate  string `json:"birthdate" validate:"omitempty,datekey"`
	GradeLevel string `json:"grade_level"`
	Color      string `json:"color"`
}

func (nc *NewChild) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	return validate.Struct(nc)
}

// UpdateChild defines what may be modified on an existing Child.
type UpdateChild struct {
	Name       string `json:"name"`
	Birthdate  string `json:"birthdate" validate:"omitempty,datekey"`
	GradeLevel string `json:"grade_level"`
	Color      string `json:"color"`
	Archived   *bool  `json:"archived"`
}

func (uc *UpdateChild) Validate(validate *validator.Validate, orig Child) error {
	name := core.CleanString(uc.Name)
	if name != "" {
		uc.Name = name
	} else {
		uc.Name = orig.Name
	}
	return validate.Struct(uc)
}

type QueryFilter struct {
	Search   string `query:"search"`
	Archived *bool  `query:"archived"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Archived == nil
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
