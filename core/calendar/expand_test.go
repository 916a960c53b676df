package calendar

import (
	"testing"
)

func intPtr(i int) *int { return &i }

func datesOf(occs []Occurrence) []string {
	dates := make([]string, 0, len(occs))
	for _, o := range occs {
		dates = append(dates, o.Date)
	}
	return dates
}

func assertDates(t *testing.T, occs []Occurrence, want ...string) {
	t.Helper()
	got := datesOf(occs)
	if len(got) != len(want) {
		t.Fatalf("got %d occurrences %v; want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("occurrence[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}

func Test_Expand_once(t *testing.T) {
	ev := Event{ID: "e1", Title: "Dentist", Recurrence: RecurrenceOnce, StartDate: "2026-03-10"}

	t.Run("inside range", func(t *testing.T) {
		assertDates(t, Expand(ev, "2026-03-01", "2026-03-31"), "2026-03-10")
	})
	t.Run("range before start date", func(t *testing.T) {
		assertDates(t, Expand(ev, "2026-02-01", "2026-02-28"))
	})
	t.Run("range after start date", func(t *testing.T) {
		assertDates(t, Expand(ev, "2026-04-01", "2026-04-30"))
	})
	t.Run("excepted", func(t *testing.T) {
		excepted := ev
		excepted.ExceptionDates = []string{"2026-03-10"}
		assertDates(t, Expand(excepted, "2026-03-01", "2026-03-31"))
	})
}

func Test_Expand_weekly(t *testing.T) {
	// anchored on Wednesday 2026-01-07, no end date
	ev := Event{
		ID:         "e1",
		Title:      "Co-op science",
		Recurrence: RecurrenceWeekly,
		DayOfWeek:  intPtr(3),
		StartDate:  "2026-01-07",
	}

	t.Run("four week range yields four occurrences 7 days apart", func(t *testing.T) {
		assertDates(t, Expand(ev, "2026-01-05", "2026-02-01"),
			"2026-01-07", "2026-01-14", "2026-01-21", "2026-01-28")
	})

	t.Run("exception date is dropped, not shifted", func(t *testing.T) {
		excepted := ev
		excepted.ExceptionDates = []string{"2026-01-14"}
		assertDates(t, Expand(excepted, "2026-01-05", "2026-02-01"),
			"2026-01-07", "2026-01-21", "2026-01-28")
	})

	t.Run("end date truncates", func(t *testing.T) {
		ended := ev
		ended.EndDate = "2026-01-20"
		assertDates(t, Expand(ended, "2026-01-05", "2026-02-01"),
			"2026-01-07", "2026-01-14")
	})

	t.Run("range starting mid-cadence", func(t *testing.T) {
		assertDates(t, Expand(ev, "2026-01-15", "2026-01-29"),
			"2026-01-21", "2026-01-28")
	})

	t.Run("range before start date", func(t *testing.T) {
		assertDates(t, Expand(ev, "2025-12-01", "2025-12-31"))
	})

	t.Run("anchor not on weekday advances to first match", func(t *testing.T) {
		skewed := ev
		skewed.StartDate = "2026-01-05" // a Monday
		assertDates(t, Expand(skewed, "2026-01-05", "2026-01-18"),
			"2026-01-07", "2026-01-14")
	})
}

func Test_Expand_biweekly(t *testing.T) {
	// anchored Monday 2026-01-05
	ev := Event{
		ID:         "e1",
		Title:      "Nature club",
		Recurrence: RecurrenceBiweekly,
		DayOfWeek:  intPtr(1),
		StartDate:  "2026-01-05",
	}

	t.Run("opposite parity week is empty", func(t *testing.T) {
		assertDates(t, Expand(ev, "2026-01-12", "2026-01-12"))
	})

	t.Run("matching parity week has one occurrence", func(t *testing.T) {
		assertDates(t, Expand(ev, "2026-01-19", "2026-01-19"), "2026-01-19")
	})

	t.Run("anchor cadence survives a far range", func(t *testing.T) {
		// 2026-03-02 is 8 weeks after the anchor (matching parity);
		// 2026-03-09 is 9 weeks after (opposite parity).
		assertDates(t, Expand(ev, "2026-03-01", "2026-03-15"),
			"2026-03-02")
	})

	t.Run("full month from anchor", func(t *testing.T) {
		assertDates(t, Expand(ev, "2026-01-01", "2026-02-04"),
			"2026-01-05", "2026-01-19", "2026-02-02")
	})
}

func Test_Expand_monthly(t *testing.T) {
	t.Run("day 31 clamps in short months", func(t *testing.T) {
		ev := Event{ID: "e1", Title: "Library day", Recurrence: RecurrenceMonthly, StartDate: "2026-01-31"}
		assertDates(t, Expand(ev, "2026-02-01", "2026-02-28"), "2026-02-28")
		assertDates(t, Expand(ev, "2026-04-01", "2026-04-30"), "2026-04-30")
	})

	t.Run("day 31 clamps to Feb 29 in a leap year", func(t *testing.T) {
		ev := Event{ID: "e1", Title: "Library day", Recurrence: RecurrenceMonthly, StartDate: "2028-01-31"}
		assertDates(t, Expand(ev, "2028-02-01", "2028-02-29"), "2028-02-29")
	})

	t.Run("multi month range", func(t *testing.T) {
		ev := Event{ID: "e1", Title: "Museum pass", Recurrence: RecurrenceMonthly, StartDate: "2026-01-15"}
		assertDates(t, Expand(ev, "2026-01-01", "2026-04-30"),
			"2026-01-15", "2026-02-15", "2026-03-15", "2026-04-15")
	})

	t.Run("end date and exceptions apply", func(t *testing.T) {
		ev := Event{
			ID: "e1", Title: "Museum pass", Recurrence: RecurrenceMonthly,
			StartDate: "2026-01-15", EndDate: "2026-03-31",
			ExceptionDates: []string{"2026-02-15"},
		}
		assertDates(t, Expand(ev, "2026-01-01", "2026-06-30"),
			"2026-01-15", "2026-03-15")
	})

	t.Run("day of week is ignored", func(t *testing.T) {
		ev := Event{
			ID: "e1", Title: "Museum pass", Recurrence: RecurrenceMonthly,
			StartDate: "2026-01-15", DayOfWeek: intPtr(0),
		}
		assertDates(t, Expand(ev, "2026-02-01", "2026-02-28"), "2026-02-15")
	})
}

func Test_Expand_degenerateRanges(t *testing.T) {
	ev := Event{ID: "e1", Title: "Co-op", Recurrence: RecurrenceWeekly, DayOfWeek: intPtr(3), StartDate: "2026-01-07"}

	t.Run("inverted range is empty, not an error", func(t *testing.T) {
		assertDates(t, Expand(ev, "2026-02-01", "2026-01-01"))
	})
	t.Run("single day range", func(t *testing.T) {
		assertDates(t, Expand(ev, "2026-01-14", "2026-01-14"), "2026-01-14")
	})
}

func Test_ExpandAll_ordering(t *testing.T) {
	events := []Event{
		{ID: "e1", Title: "Swimming", Recurrence: RecurrenceWeekly, DayOfWeek: intPtr(2), StartDate: "2026-01-06"},
		{ID: "e2", Title: "Art class", Recurrence: RecurrenceWeekly, DayOfWeek: intPtr(2), StartDate: "2026-01-06"},
		{ID: "e3", Title: "Dentist", Recurrence: RecurrenceOnce, StartDate: "2026-01-05"},
	}

	occs := ExpandAll(events, "2026-01-05", "2026-01-13")
	assertDates(t, occs, "2026-01-05", "2026-01-06", "2026-01-06", "2026-01-13", "2026-01-13")

	// same-date ties sort ascending by title
	if occs[1].Title != "Art class" || occs[2].Title != "Swimming" {
		t.Errorf("tie-break order = %q, %q; want Art class, Swimming", occs[1].Title, occs[2].Title)
	}
	if occs[3].Title != "Art class" || occs[4].Title != "Swimming" {
		t.Errorf("tie-break order = %q, %q; want Art class, Swimming", occs[3].Title, occs[4].Title)
	}
}

func Test_Expand_copiesEventFields(t *testing.T) {
	ev := Event{
		ID: "e9", Title: "Choir", Description: "bring sheet music",
		Recurrence: RecurrenceOnce, StartDate: "2026-05-01",
		StartTime: "16:00", EndTime: "17:30", Color: "violet",
		Location: "St. Mary's hall",
		Children:  []ChildRef{{ID: "c1", Name: "Ada"}},
	}
	occs := Expand(ev, "2026-05-01", "2026-05-01")
	if len(occs) != 1 {
		t.Fatalf("got %d occurrences; want 1", len(occs))
	}
	occ := occs[0]
	if occ.EventID != "e9" || occ.Date != "2026-05-01" {
		t.Errorf("identity = (%s, %s); want (e9, 2026-05-01)", occ.EventID, occ.Date)
	}
	if occ.Title != ev.Title || occ.Description != ev.Description || occ.Color != ev.Color ||
		occ.StartTime != ev.StartTime || occ.EndTime != ev.EndTime || occ.Location != ev.Location {
		t.Errorf("occurrence fields not copied from event: %+v", occ)
	}
	if len(occ.Children) != 1 || occ.Children[0].Name != "Ada" {
		t.Errorf("children not carried: %+v", occ.Children)
	}
}
