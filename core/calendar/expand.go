package calendar

import (
	"sort"
	"time"

	"github.com/harmonyhs/harmony/core/schedule"
)

// Expand materializes the occurrences of one event inside the closed
// range [rangeStart, rangeEnd]. It is a pure function of (event, range):
// no I/O, no shared state, safe to call concurrently across events.
// Degenerate inputs (inverted range, range outside the event's life,
// malformed keys) yield an empty slice, never an error.
func Expand(ev Event, rangeStart, rangeEnd string) []Occurrence {
	start, err := schedule.ParseDateKey(rangeStart)
	if err != nil {
		return nil
	}
	end, err := schedule.ParseDateKey(rangeEnd)
	if err != nil || end.Before(start) {
		return nil
	}
	anchor, err := schedule.ParseDateKey(ev.StartDate)
	if err != nil {
		return nil
	}

	// occurrences never extend past the event's own end date
	limit := end
	if ev.EndDate != "" {
		if eventEnd, err := schedule.ParseDateKey(ev.EndDate); err == nil && eventEnd.Before(limit) {
			limit = eventEnd
		}
	}

	exceptions := make(map[string]bool, len(ev.ExceptionDates))
	for _, d := range ev.ExceptionDates {
		exceptions[d] = true
	}

	var occurrences []Occurrence
	emit := func(d time.Time) {
		key := schedule.FormatDateKey(d)
		if exceptions[key] {
			return
		}
		occurrences = append(occurrences, ev.occurrenceOn(key))
	}

	switch ev.Recurrence {
	case RecurrenceOnce:
		if !anchor.Before(start) && !anchor.After(limit) {
			emit(anchor)
		}

	case RecurrenceWeekly, RecurrenceBiweekly:
		step := 7
		if ev.Recurrence == RecurrenceBiweekly {
			step = 14
		}
		// First occurrence: the anchor date advanced, if needed, to the
		// event's weekday. For biweekly events all later occurrences must
		// stay on the anchor's own 14-day cadence, so candidates advance
		// from here in whole steps rather than being re-derived from the
		// query range.
		first := anchor
		if ev.DayOfWeek != nil {
			offset := (*ev.DayOfWeek - int(anchor.Weekday()) + 7) % 7
			first = anchor.AddDate(0, 0, offset)
		}
		if first.Before(start) {
			days := int(start.Sub(first).Hours() / 24)
			first = first.AddDate(0, 0, (days/step)*step)
			if first.Before(start) {
				first = first.AddDate(0, 0, step)
			}
		}
		for d := first; !d.After(limit); d = d.AddDate(0, 0, step) {
			emit(d)
		}

	case RecurrenceMonthly:
		// Same day-of-month as the anchor, clamped to short months.
		day := anchor.Day()
		for y, m := anchor.Year(), anchor.Month(); ; y, m = nextMonth(y, m) {
			if time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).After(limit) {
				break
			}
			d := day
			if last := daysInMonth(y, m); d > last {
				d = last
			}
			candidate := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
			if candidate.After(limit) {
				break
			}
			if !candidate.Before(start) && !candidate.Before(anchor) {
				emit(candidate)
			}
		}
	}

	return occurrences
}

// ExpandAll expands every event over the range and merges the results,
// sorted ascending by date with title as the stable tie-break.
func ExpandAll(events []Event, rangeStart, rangeEnd string) []Occurrence {
	var occurrences []Occurrence
	for _, ev := range events {
		occurrences = append(occurrences, Expand(ev, rangeStart, rangeEnd)...)
	}
	sort.SliceStable(occurrences, func(i, j int) bool {
		if occurrences[i].Date != occurrences[j].Date {
			return occurrences[i].Date < occurrences[j].Date
		}
		return occurrences[i].Title < occurrences[j].Title
	})
	return occurrences
}

func (ev Event) occurrenceOn(dateKey string) Occurrence {
	return Occurrence{
		EventID:     ev.ID,
		Date:        dateKey,
		Title:       ev.Title,
		Description: ev.Description,
		Color:       ev.Color,
		StartTime:   ev.StartTime,
		EndTime:     ev.EndTime,
		AllDay:      ev.AllDay,
		Location:    ev.Location,
		Children:    ev.Children,
	}
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
