package subject

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/harmonyhs/harmony/core"
)

// Subject is a course of study (Math, History, ...).
type Subject struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// Curriculum binds one subject to one child for a school year, e.g.
// "Saxon Math 5/4 — Ada, 2026-2027". Lessons hang off curricula.
type Curriculum struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	SubjectID   string    `json:"subject_id"`
	ChildID     string    `json:"child_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ResourceURL string    `json:"resource_url,omitempty"`
	SchoolYear  string    `json:"school_year,omitempty"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

type NewSubject struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color"`
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	return validate.Struct(ns)
}

type UpdateSubject struct {
	Name     string `json:"name"`
	Color    string `json:"color"`
	Archived *bool  `json:"archived"`
}

func (us *UpdateSubject) Validate(validate *validator.Validate, orig Subject) error {
	name := core.CleanString(us.Name)
	if name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}
	return validate.Struct(us)
}

type NewCurriculum struct {
	SubjectID   string `json:"subject_id" validate:"required"`
	ChildID     string `json:"child_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ResourceURL string `json:"resource_url" validate:"omitempty,url"`
	SchoolYear  string `json:"school_year"`
}

func (nc *NewCurriculum) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	return validate.Struct(nc)
}

type UpdateCurriculum struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ResourceURL string `json:"resource_url" validate:"omitempty,url"`
	SchoolYear  string `json:"school_year"`
	Archived    *bool  `json:"archived"`
}

func (uc *UpdateCurriculum) Validate(validate *validator.Validate, orig Curriculum) error {
	name := core.CleanString(uc.Name)
	if name != "" {
		uc.Name = name
	} else {
		uc.Name = orig.Name
	}
	return validate.Struct(uc)
}

// CurriculumFilter narrows curriculum queries; fields AND together.
type CurriculumFilter struct {
	SubjectID string `query:"subject_id"`
	ChildID   string `query:"child_id"`
	Archived  *bool  `query:"archived"`
}

func (qf *CurriculumFilter) IsEmpty() bool {
	return qf.SubjectID == "" && qf.ChildID == "" && qf.Archived == nil
}
