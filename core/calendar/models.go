package calendar

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/harmonyhs/harmony/core"
	"github.com/harmonyhs/harmony/core/schedule"
)

// RecurrenceType enumerates how an external event repeats.
type RecurrenceType string

const (
	RecurrenceOnce     RecurrenceType = "once"
	RecurrenceWeekly   RecurrenceType = "weekly"
	RecurrenceBiweekly RecurrenceType = "biweekly"
	RecurrenceMonthly  RecurrenceType = "monthly"
)

// ChildRef links an event to a child; informational only, it never
// affects occurrence dates.
type ChildRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Event is a stored external-event definition (co-op classes, sports
// practice, appointments) expanded on demand into Occurrences.
//
// StartDate is the anchor date: the exact date for `once`, the first
// eligible date and cadence anchor for recurring types. DayOfWeek
// (0=Sunday) only applies to weekly/biweekly; monthly recurs on
// StartDate's day-of-month. Empty EndDate means the event recurs
// indefinitely. ExceptionDates cancel exact dates; they never shift an
// occurrence.
type Event struct {
	ID             string         `json:"id"`
	UserID         string         `json:"-"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	Recurrence     RecurrenceType `json:"recurrence_type"`
	DayOfWeek      *int           `json:"day_of_week,omitempty"` // 0=Sunday ... 6=Saturday
	StartDate      string         `json:"start_date"`            // date key
	EndDate        string         `json:"end_date,omitempty"`    // date key; "" = indefinite
	StartTime      string         `json:"start_time,omitempty"`  // HH:MM[:SS]; "" when AllDay
	EndTime        string         `json:"end_time,omitempty"`
	AllDay         bool           `json:"all_day"`
	Color          string         `json:"color,omitempty"`
	Location       string         `json:"location,omitempty"`
	TravelMinutes  int            `json:"travel_minutes,omitempty"`
	Children       []ChildRef     `json:"children,omitempty"`
	ExceptionDates []string       `json:"exception_dates,omitempty"` // date keys
	CreatedAt      time.Time      `json:"created_at"`                // UTC
	UpdatedAt      time.Time      `json:"updated_at"`                // UTC
}

// Occurrence is one concrete calendar-date instance of an Event.
// Derived and ephemeral: recomputed on every query, never persisted,
// identified only by (EventID, Date).
type Occurrence struct {
	EventID     string     `json:"event_id"`
	Date        string     `json:"date"` // date key
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Color       string     `json:"color,omitempty"`
	StartTime   string     `json:"start_time,omitempty"`
	EndTime     string     `json:"end_time,omitempty"`
	AllDay      bool       `json:"all_day"`
	Location    string     `json:"location,omitempty"`
	Children    []ChildRef `json:"children,omitempty"`
}

// NewEvent contains information needed to create an Event.
type NewEvent struct {
	Title          string         `json:"title" validate:"required"`
	Description    string         `json:"description"`
	Recurrence     RecurrenceType `json:"recurrence_type" validate:"required,oneof=once weekly biweekly monthly"`
	DayOfWeek      *int           `json:"day_of_week" validate:"omitempty,min=0,max=6"`
	StartDate      string         `json:"start_date" validate:"required,datekey"`
	EndDate        string         `json:"end_date" validate:"omitempty,datekey"`
	StartTime      string         `json:"start_time" validate:"omitempty,timeofday"`
	EndTime        string         `json:"end_time" validate:"omitempty,timeofday"`
	AllDay         bool           `json:"all_day"`
	Color          string         `json:"color"`
	Location       string         `json:"location"`
	TravelMinutes  int            `json:"travel_minutes" validate:"min=0"`
	ChildIDs       []string       `json:"child_ids"`
	ExceptionDates []string       `json:"exception_dates" validate:"dive,datekey"`
}

func (ne *NewEvent) Validate(validate *validator.Validate) error {
	ne.Title = core.CleanString(ne.Title)
	return validate.Struct(ne)
}

// UpdateEvent defines what may be modified on an existing Event.
// Recurrence fields are always provided in full; partial recurrence
// edits are too error-prone to merge server-side.
type UpdateEvent struct {
	Title          string         `json:"title" validate:"required"`
	Description    string         `json:"description"`
	Recurrence     RecurrenceType `json:"recurrence_type" validate:"required,oneof=once weekly biweekly monthly"`
	DayOfWeek      *int           `json:"day_of_week" validate:"omitempty,min=0,max=6"`
	StartDate      string         `json:"start_date" validate:"required,datekey"`
	EndDate        string         `json:"end_date" validate:"omitempty,datekey"`
	StartTime      string         `json:"start_time" validate:"omitempty,timeofday"`
	EndTime        string         `json:"end_time" validate:"omitempty,timeofday"`
	AllDay         bool           `json:"all_day"`
	Color          string         `json:"color"`
	Location       string         `json:"location"`
	TravelMinutes  int            `json:"travel_minutes" validate:"min=0"`
	ChildIDs       []string       `json:"child_ids"`
	ExceptionDates []string       `json:"exception_dates" validate:"dive,datekey"`
}

func (ue *UpdateEvent) Validate(validate *validator.Validate) error {
	ue.Title = core.CleanString(ue.Title)
	return validate.Struct(ue)
}

var (
	endBeforeStartTag  = "end_before_start"
	endBeforeStartText = "end date cannot precede start date"

	dayOfWeekRequiredTag  = "day_of_week_required"
	dayOfWeekRequiredText = "day of week is required for weekly and biweekly events"

	timesRequiredTag  = "times_required"
	timesRequiredText = "start and end times are required unless the event is all-day"
)

// InitValidators registers the struct-level event validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(eventStructValidation, NewEvent{})
	validate.RegisterStructValidation(eventStructValidation, UpdateEvent{})
	core.RegisterCustomTranslation(validate, translator, endBeforeStartTag, endBeforeStartText)
	core.RegisterCustomTranslation(validate, translator, dayOfWeekRequiredTag, dayOfWeekRequiredText)
	core.RegisterCustomTranslation(validate, translator, timesRequiredTag, timesRequiredText)
}

// eventStructValidation enforces the cross-field event invariants:
// endDate >= startDate, dayOfWeek present for weekly/biweekly, and
// times present for timed events. An event whose endDate precedes its
// startDate is rejected here, at the boundary; the expander assumes
// well-formed definitions.
func eventStructValidation(sl validator.StructLevel) {
	var (
		recurrence           RecurrenceType
		dayOfWeek            *int
		startDate, endDate   string
		startTime, endTime   string
		allDay               bool
	)
	switch ev := sl.Current().Interface().(type) {
	case NewEvent:
		recurrence, dayOfWeek, allDay = ev.Recurrence, ev.DayOfWeek, ev.AllDay
		startDate, endDate, startTime, endTime = ev.StartDate, ev.EndDate, ev.StartTime, ev.EndTime
	case UpdateEvent:
		recurrence, dayOfWeek, allDay = ev.Recurrence, ev.DayOfWeek, ev.AllDay
		startDate, endDate, startTime, endTime = ev.StartDate, ev.EndDate, ev.StartTime, ev.EndTime
	default:
		return
	}

	if endDate != "" && startDate != "" {
		start, err1 := schedule.ParseDateKey(startDate)
		end, err2 := schedule.ParseDateKey(endDate)
		if err1 == nil && err2 == nil && end.Before(start) {
			sl.ReportError(endDate, "end_date", "EndDate", endBeforeStartTag, "")
		}
	}

	if (recurrence == RecurrenceWeekly || recurrence == RecurrenceBiweekly) && dayOfWeek == nil {
		sl.ReportError(dayOfWeek, "day_of_week", "DayOfWeek", dayOfWeekRequiredTag, "")
	}

	if !allDay && (startTime == "" || endTime == "") {
		sl.ReportError(startTime, "start_time", "StartTime", timesRequiredTag, "")
	}
}
