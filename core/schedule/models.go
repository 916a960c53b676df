package schedule

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Settings holds an account's default school weekdays.
type Settings struct {
	UserID    string    `json:"user_id"`
	Weekdays  []int     `json:"weekdays"` // 0=Sunday ... 6=Saturday
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// WeekdaySet converts the stored weekday integers into a WeekdaySet.
func (s Settings) WeekdaySet() WeekdaySet {
	return NewWeekdaySet(s.Weekdays...)
}

// DefaultSettings is the schedule used before an account saves its own:
// Monday through Friday.
func DefaultSettings(userID string) Settings {
	return Settings{
		UserID:   userID,
		Weekdays: []int{1, 2, 3, 4, 5},
	}
}

// DayOverride is a per-date exception to the weekday schedule.
type DayOverride struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Date      string       `json:"date"` // date key
	Kind      OverrideKind `json:"kind"`
	Note      string       `json:"note,omitempty"`
	CreatedAt time.Time    `json:"created_at"` // UTC
}

// UpdateSettings defines the payload for replacing an account's weekday set.
type UpdateSettings struct {
	Weekdays []int `json:"weekdays" validate:"required,max=7,dive,min=0,max=6"`
}

func (us *UpdateSettings) Validate(validate *validator.Validate) error {
	return validate.Struct(us)
}

// NewDayOverride defines the payload for setting a day override. Saving
// an override for a date that already has one replaces it.
type NewDayOverride struct {
	Date string       `json:"date" validate:"required,datekey"`
	Kind OverrideKind `json:"kind" validate:"required,oneof=include exclude"`
	Note string       `json:"note"`
}

func (no *NewDayOverride) Validate(validate *validator.Validate) error {
	return validate.Struct(no)
}
