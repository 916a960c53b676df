package schedule

import (
	"time"

	"github.com/harmonyhs/harmony/core"
)

// All date keys are YYYY-MM-DD strings pinned to UTC midnight so that
// FormatDateKey(MustParseDateKey(k)) == k for every valid key. Callers
// own the contract that keys are well-formed; helpers that take keys
// panic on garbage rather than guessing.

// nextSchoolDayCap bounds the forward scan in NextSchoolDay (~10 years).
const nextSchoolDayCap = 3660

// OverrideKind marks a per-date exception to the weekday schedule.
type OverrideKind string

const (
	OverrideInclude OverrideKind = "include"
	OverrideExclude OverrideKind = "exclude"
)

// WeekdaySet holds the default school weekdays (time.Weekday: Sunday=0).
type WeekdaySet map[time.Weekday]bool

// NewWeekdaySet builds a WeekdaySet from weekday integers 0-6 (Sunday=0).
func NewWeekdaySet(days ...int) WeekdaySet {
	set := make(WeekdaySet, len(days))
	for _, d := range days {
		if d >= 0 && d <= 6 {
			set[time.Weekday(d)] = true
		}
	}
	return set
}

// ParseDateKey parses a YYYY-MM-DD key into a UTC-midnight time.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(core.DateKeyLayout, key, time.UTC)
}

// MustParseDateKey parses a date key and panics on malformed input.
func MustParseDateKey(key string) time.Time {
	t, err := ParseDateKey(key)
	if err != nil {
		panic(err)
	}
	return t
}

// FormatDateKey formats a time as a YYYY-MM-DD key (UTC).
func FormatDateKey(t time.Time) string {
	return t.UTC().Format(core.DateKeyLayout)
}

// WeekStart returns the Monday on or before the given date key.
func WeekStart(key string) string {
	d := MustParseDateKey(key)
	shift := (int(d.Weekday()) + 6) % 7 // Monday -> 0 ... Sunday -> 6
	return FormatDateKey(d.AddDate(0, 0, -shift))
}

// WeekEnd returns the Friday of the week starting at the given Monday key.
func WeekEnd(weekStartKey string) string {
	return FormatDateKey(MustParseDateKey(weekStartKey).AddDate(0, 0, 4))
}

// FullWeekEnd returns the Sunday of the week starting at the given Monday key.
func FullWeekEnd(weekStartKey string) string {
	return FormatDateKey(MustParseDateKey(weekStartKey).AddDate(0, 0, 6))
}

// WeekDates returns the 5 school-week date keys (Mon-Fri) starting at
// the given Monday key.
func WeekDates(weekStartKey string) []string {
	return datesFrom(weekStartKey, 5)
}

// FullWeekDates returns the 7 date keys (Mon-Sun) starting at the given
// Monday key.
func FullWeekDates(weekStartKey string) []string {
	return datesFrom(weekStartKey, 7)
}

func datesFrom(startKey string, n int) []string {
	start := MustParseDateKey(startKey)
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, FormatDateKey(start.AddDate(0, 0, i)))
	}
	return dates
}

// IsSchoolDay reports whether the date is a designated school day.
// An explicit override for the exact date always wins; absent one,
// membership in the weekday set decides.
func IsSchoolDay(key string, weekdays WeekdaySet, overrides map[string]OverrideKind) bool {
	if kind, ok := overrides[key]; ok {
		return kind == OverrideInclude
	}
	return weekdays[MustParseDateKey(key).Weekday()]
}

// NextSchoolDay scans forward day by day from `after` (inclusive) and
// returns the first school day. The scan is capped; when nothing
// matches within the cap (empty weekday set, no include overrides) the
// original date is returned as a safe fallback.
func NextSchoolDay(after string, weekdays WeekdaySet, overrides map[string]OverrideKind) string {
	d := MustParseDateKey(after)
	for i := 0; i < nextSchoolDayCap; i++ {
		key := FormatDateKey(d)
		if IsSchoolDay(key, weekdays, overrides) {
			return key
		}
		d = d.AddDate(0, 0, 1)
	}
	return after
}

// WeekdayName returns the full weekday name for a date key.
func WeekdayName(key string) string {
	return MustParseDateKey(key).Weekday().String()
}

// WeekdayShortName returns the 3-letter weekday name for a date key.
func WeekdayShortName(key string) string {
	return MustParseDateKey(key).Format("Mon")
}

// MonthDayLabel returns a short "Jan 2" display label for a date key.
func MonthDayLabel(key string) string {
	return MustParseDateKey(key).Format("Jan 2")
}
