package calendar

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/harmonyhs/harmony/core/schedule"
)

// BuildICS renders expanded occurrences as an iCalendar feed. Each
// occurrence becomes its own VEVENT: recurrence is already resolved by
// the expander, so consumers never see RRULEs or exception dates.
func BuildICS(appName string, occurrences []Occurrence) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//" + appName + "//Calendar//EN")

	now := time.Now().UTC()
	for _, occ := range occurrences {
		ev := cal.AddEvent(fmt.Sprintf("%s-%s@%s", occ.EventID, occ.Date, "harmony"))
		ev.SetDtStampTime(now)
		ev.SetSummary(occ.Title)
		if occ.Description != "" {
			ev.SetDescription(occ.Description)
		}
		if occ.Location != "" {
			ev.SetLocation(occ.Location)
		}

		day := schedule.MustParseDateKey(occ.Date)
		if occ.AllDay {
			ev.SetAllDayStartAt(day)
			ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
			continue
		}
		start, end := occurrenceTimes(day, occ.StartTime, occ.EndTime)
		ev.SetStartAt(start)
		ev.SetEndAt(end)
	}
	return cal.Serialize()
}

// occurrenceTimes anchors HH:MM[:SS] strings onto the occurrence date.
// Missing or malformed times degrade to an all-day-like midnight span
// rather than dropping the entry.
func occurrenceTimes(day time.Time, startStr, endStr string) (time.Time, time.Time) {
	start := day
	if t, err := parseTimeOfDay(startStr); err == nil {
		start = day.Add(t)
	}
	end := start.Add(time.Hour)
	if t, err := parseTimeOfDay(endStr); err == nil {
		end = day.Add(t)
	}
	if !end.After(start) {
		end = start.Add(time.Hour)
	}
	return start, end
}

func parseTimeOfDay(s string) (time.Duration, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("invalid time of day: %q", s)
}
