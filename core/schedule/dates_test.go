package schedule

import (
	"testing"
	"time"
)

func Test_dateKeyRoundTrip(t *testing.T) {
	keys := []string{"2026-01-01", "2026-02-28", "2028-02-29", "1999-12-31", "2026-07-04"}
	for _, key := range keys {
		d, err := ParseDateKey(key)
		if err != nil {
			t.Fatalf("ParseDateKey(%q): %v", key, err)
		}
		if got := FormatDateKey(d); got != key {
			t.Errorf("round trip failed: %q -> %q", key, got)
		}
	}
}

func Test_WeekStart(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"Monday maps to itself", "2026-01-05", "2026-01-05"},
		{"Wednesday", "2026-01-07", "2026-01-05"},
		{"Sunday maps to previous Monday", "2026-01-11", "2026-01-05"},
		{"Saturday", "2026-01-10", "2026-01-05"},
		{"across month boundary", "2026-02-01", "2026-01-26"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(tt.date)
			if got != tt.want {
				t.Errorf("WeekStart(%q) = %q; want %q", tt.date, got, tt.want)
			}
			// idempotent, and always a Monday
			if again := WeekStart(got); again != got {
				t.Errorf("WeekStart not idempotent: %q -> %q", got, again)
			}
			if wd := MustParseDateKey(got).Weekday(); wd != time.Monday {
				t.Errorf("WeekStart(%q) weekday = %v; want Monday", tt.date, wd)
			}
		})
	}
}

func Test_weekBounds(t *testing.T) {
	if got := WeekEnd("2026-01-05"); got != "2026-01-09" {
		t.Errorf("WeekEnd = %q; want 2026-01-09", got)
	}
	if got := FullWeekEnd("2026-01-05"); got != "2026-01-11" {
		t.Errorf("FullWeekEnd = %q; want 2026-01-11", got)
	}
}

func Test_weekDates(t *testing.T) {
	dates := WeekDates("2026-01-05")
	want := []string{"2026-01-05", "2026-01-06", "2026-01-07", "2026-01-08", "2026-01-09"}
	if len(dates) != len(want) {
		t.Fatalf("WeekDates len = %d; want %d", len(dates), len(want))
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("WeekDates[%d] = %q; want %q", i, dates[i], want[i])
		}
	}

	full := FullWeekDates("2026-01-05")
	if len(full) != 7 {
		t.Fatalf("FullWeekDates len = %d; want 7", len(full))
	}
	if full[6] != "2026-01-11" {
		t.Errorf("FullWeekDates[6] = %q; want 2026-01-11", full[6])
	}
}

func Test_IsSchoolDay(t *testing.T) {
	monToFri := NewWeekdaySet(1, 2, 3, 4, 5)

	tests := []struct {
		name      string
		date      string
		weekdays  WeekdaySet
		overrides map[string]OverrideKind
		want      bool
	}{
		{"weekday match", "2026-01-07", monToFri, nil, true},
		{"weekend", "2026-01-10", monToFri, nil, false},
		{"exclude override wins over weekday set", "2026-01-07", monToFri,
			map[string]OverrideKind{"2026-01-07": OverrideExclude}, false},
		{"include override wins over weekend", "2026-01-10", monToFri,
			map[string]OverrideKind{"2026-01-10": OverrideInclude}, true},
		{"override on another date is ignored", "2026-01-08", monToFri,
			map[string]OverrideKind{"2026-01-07": OverrideExclude}, true},
		{"empty weekday set", "2026-01-07", NewWeekdaySet(), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSchoolDay(tt.date, tt.weekdays, tt.overrides); got != tt.want {
				t.Errorf("IsSchoolDay(%q) = %v; want %v", tt.date, got, tt.want)
			}
		})
	}
}

func Test_NextSchoolDay(t *testing.T) {
	monToFri := NewWeekdaySet(1, 2, 3, 4, 5)

	// 2026-01-10 is a Saturday; next school day is Monday the 12th.
	if got := NextSchoolDay("2026-01-10", monToFri, nil); got != "2026-01-12" {
		t.Errorf("NextSchoolDay(Sat) = %q; want 2026-01-12", got)
	}

	// a school day returns itself
	if got := NextSchoolDay("2026-01-12", monToFri, nil); got != "2026-01-12" {
		t.Errorf("NextSchoolDay(Mon) = %q; want 2026-01-12", got)
	}

	// exclude override pushes the result forward
	overrides := map[string]OverrideKind{"2026-01-12": OverrideExclude}
	if got := NextSchoolDay("2026-01-10", monToFri, overrides); got != "2026-01-13" {
		t.Errorf("NextSchoolDay with exclude = %q; want 2026-01-13", got)
	}

	// degenerate schedule: no weekdays, no includes -> identity fallback,
	// and it must terminate.
	if got := NextSchoolDay("2026-01-10", NewWeekdaySet(), nil); got != "2026-01-10" {
		t.Errorf("NextSchoolDay degenerate = %q; want identity 2026-01-10", got)
	}

	// include override alone can satisfy the scan
	overrides = map[string]OverrideKind{"2026-01-18": OverrideInclude}
	if got := NextSchoolDay("2026-01-10", NewWeekdaySet(), overrides); got != "2026-01-18" {
		t.Errorf("NextSchoolDay include-only = %q; want 2026-01-18", got)
	}
}

func Test_formatHelpers(t *testing.T) {
	if got := WeekdayName("2026-01-07"); got != "Wednesday" {
		t.Errorf("WeekdayName = %q; want Wednesday", got)
	}
	if got := WeekdayShortName("2026-01-07"); got != "Wed" {
		t.Errorf("WeekdayShortName = %q; want Wed", got)
	}
	if got := MonthDayLabel("2026-01-07"); got != "Jan 7" {
		t.Errorf("MonthDayLabel = %q; want Jan 7", got)
	}
}
