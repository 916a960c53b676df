package schedule

import (
	"context"
	"errors"
	"time"
)

var ErrOverrideNotFound = errors.New("day override not found")

type (
	Repository interface {
		// GetSettings returns ErrSettingsNotFound when the account never saved any.
		GetSettings(ctx context.Context, userID string) (Settings, error)
		SaveSettings(ctx context.Context, settings Settings) (Settings, error)
		QueryOverrides(ctx context.Context, userID string) ([]DayOverride, error)
		// SaveOverride upserts by (userID, date).
		SaveOverride(ctx context.Context, ovr DayOverride) (DayOverride, error)
		DeleteOverride(ctx context.Context, userID, date string) error
	}

	Service struct {
		repo Repository
	}
)

// ErrSettingsNotFound signals that an account has no stored settings;
// Service.GetSettings translates it into the Mon-Fri default.
var ErrSettingsNotFound = errors.New("schedule settings not found")

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetSettings returns the account's schedule settings, falling back to
// the Mon-Fri default when none were ever saved.
func (svc *Service) GetSettings(ctx context.Context, userID string) (Settings, error) {
	settings, err := svc.repo.GetSettings(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrSettingsNotFound) {
			return DefaultSettings(userID), nil
		}
		return Settings{}, err
	}
	return settings, nil
}

func (svc *Service) SetSettings(ctx context.Context, userID string, us UpdateSettings) (Settings, error) {
	return svc.repo.SaveSettings(ctx, Settings{
		UserID:    userID,
		Weekdays:  dedupWeekdays(us.Weekdays),
		UpdatedAt: time.Now().UTC(),
	})
}

func (svc *Service) Overrides(ctx context.Context, userID string) ([]DayOverride, error) {
	return svc.repo.QueryOverrides(ctx, userID)
}

func (svc *Service) SetOverride(ctx context.Context, userID string, no NewDayOverride) (DayOverride, error) {
	return svc.repo.SaveOverride(ctx, DayOverride{
		UserID:    userID,
		Date:      no.Date,
		Kind:      no.Kind,
		Note:      no.Note,
		CreatedAt: time.Now().UTC(),
	})
}

func (svc *Service) RemoveOverride(ctx context.Context, userID, date string) error {
	return svc.repo.DeleteOverride(ctx, userID, date)
}

// OverrideMap materializes the account's overrides keyed by date, the
// form the date utilities consume.
func (svc *Service) OverrideMap(ctx context.Context, userID string) (map[string]OverrideKind, error) {
	ovrs, err := svc.repo.QueryOverrides(ctx, userID)
	if err != nil {
		return nil, err
	}
	m := make(map[string]OverrideKind, len(ovrs))
	for _, o := range ovrs {
		m[o.Date] = o.Kind
	}
	return m, nil
}

// SchoolWeek describes one planner week: the Mon-Fri date keys and
// which of them are school days under the account's schedule.
type SchoolWeek struct {
	WeekStart  string   `json:"week_start"`
	Dates      []string `json:"dates"`
	SchoolDays []bool   `json:"school_days"`
}

// Week computes the school week containing the given date key.
func (svc *Service) Week(ctx context.Context, userID, dateKey string) (SchoolWeek, error) {
	settings, err := svc.GetSettings(ctx, userID)
	if err != nil {
		return SchoolWeek{}, err
	}
	overrides, err := svc.OverrideMap(ctx, userID)
	if err != nil {
		return SchoolWeek{}, err
	}

	start := WeekStart(dateKey)
	dates := WeekDates(start)
	days := make([]bool, len(dates))
	weekdays := settings.WeekdaySet()
	for i, d := range dates {
		days[i] = IsSchoolDay(d, weekdays, overrides)
	}
	return SchoolWeek{WeekStart: start, Dates: dates, SchoolDays: days}, nil
}

func dedupWeekdays(days []int) []int {
	seen := make(map[int]bool, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
