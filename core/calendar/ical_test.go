package calendar

import (
	"strings"
	"testing"
)

func Test_BuildICS(t *testing.T) {
	occs := []Occurrence{
		{
			EventID: "e1", Date: "2026-01-07", Title: "Co-op science",
			StartTime: "09:30", EndTime: "11:00", Location: "Community hall",
		},
		{
			EventID: "e2", Date: "2026-01-08", Title: "Field trip", AllDay: true,
			Description: "pack lunch",
		},
	}

	out := BuildICS("Harmony", occs)

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"END:VCALENDAR",
		"METHOD:PUBLISH",
		"UID:e1-2026-01-07@harmony",
		"UID:e2-2026-01-08@harmony",
		"SUMMARY:Co-op science",
		"SUMMARY:Field trip",
		"LOCATION:Community hall",
		"DESCRIPTION:pack lunch",
		"DTSTART:20260107T093000Z",
		"DTEND:20260107T110000Z",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ICS output missing %q\n%s", want, out)
		}
	}

	// all-day events carry DATE values, not timestamps
	if !strings.Contains(out, "DTSTART;VALUE=DATE:20260108") {
		t.Errorf("ICS output missing all-day DTSTART\n%s", out)
	}
	if strings.Count(out, "BEGIN:VEVENT") != 2 {
		t.Errorf("expected 2 VEVENTs\n%s", out)
	}
}

func Test_BuildICS_empty(t *testing.T) {
	out := BuildICS("Harmony", nil)
	if !strings.Contains(out, "BEGIN:VCALENDAR") || strings.Contains(out, "BEGIN:VEVENT") {
		t.Errorf("empty feed should be a calendar with no events\n%s", out)
	}
}
