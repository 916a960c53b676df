package lesson

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/harmonyhs/harmony/core/schedule"
)

var ErrNotFound = errors.New("lesson not found")

type (
	Repository interface {
		CreateLesson(ctx context.Context, l Lesson) (Lesson, error)
		GetLessonByID(ctx context.Context, userID, id string) (Lesson, error)
		FilterLessons(ctx context.Context, userID string, filter QueryFilter) ([]Lesson, error)
		UpdateLesson(ctx context.Context, l Lesson) (Lesson, error)
		DeleteLessonsByID(ctx context.Context, userID string, ids ...string) error
	}

	Service struct {
		repo        Repository
		scheduleSvc *schedule.Service
	}
)

func NewService(repo Repository, scheduleSvc *schedule.Service) *Service {
	return &Service{repo: repo, scheduleSvc: scheduleSvc}
}

func (svc *Service) Create(ctx context.Context, userID string, nl NewLesson) (Lesson, error) {
	now := time.Now().UTC()
	return svc.repo.CreateLesson(ctx, Lesson{
		UserID:       userID,
		CurriculumID: nl.CurriculumID,
		Title:        nl.Title,
		Notes:        nl.Notes,
		Date:         nl.Date,
		SortOrder:    nl.SortOrder,
		Status:       StatusPlanned,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (svc *Service) GetByID(ctx context.Context, userID, id string) (Lesson, error) {
	return svc.repo.GetLessonByID(ctx, userID, id)
}

func (svc *Service) Filter(ctx context.Context, userID string, filter QueryFilter) ([]Lesson, error) {
	return svc.repo.FilterLessons(ctx, userID, filter)
}

func (svc *Service) Update(ctx context.Context, userID, id string, ul UpdateLesson) (Lesson, error) {
	orig, err := svc.repo.GetLessonByID(ctx, userID, id)
	if err != nil {
		return Lesson{}, err
	}
	l := orig
	l.Title = ul.Title
	l.Notes = ul.Notes
	l.Date = ul.Date
	l.Status = ul.Status
	if ul.SortOrder != nil {
		l.SortOrder = *ul.SortOrder
	}
	l.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateLesson(ctx, l)
}

// AssignGrade records a grade on a lesson and marks it done.
func (svc *Service) AssignGrade(ctx context.Context, userID, id string, sg SetGrade) (Lesson, error) {
	orig, err := svc.repo.GetLessonByID(ctx, userID, id)
	if err != nil {
		return Lesson{}, err
	}
	l := orig
	l.Grade = &Grade{Score: sg.Score, Max: sg.Max, Letter: sg.Letter}
	l.Status = StatusDone
	l.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateLesson(ctx, l)
}

// ClearGrade removes a lesson's grade without touching its status.
func (svc *Service) ClearGrade(ctx context.Context, userID, id string) (Lesson, error) {
	orig, err := svc.repo.GetLessonByID(ctx, userID, id)
	if err != nil {
		return Lesson{}, err
	}
	l := orig
	l.Grade = nil
	l.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateLesson(ctx, l)
}

func (svc *Service) Delete(ctx context.Context, userID string, ids ...string) error {
	return svc.repo.DeleteLessonsByID(ctx, userID, ids...)
}

// WeekDay is one planner day: its date, whether lessons are
// schedulable on it, and the lessons already scheduled.
type WeekDay struct {
	Date      string   `json:"date"`
	SchoolDay bool     `json:"school_day"`
	Lessons   []Lesson `json:"lessons"`
}

// WeekPlan is the Mon-Fri planner view for one week.
type WeekPlan struct {
	WeekStart string    `json:"week_start"`
	Days      []WeekDay `json:"days"`
}

// Week builds the planner week containing the given date key: the
// account's school week plus the lessons scheduled on each of its days.
func (svc *Service) Week(ctx context.Context, userID, dateKey string) (WeekPlan, error) {
	wk, err := svc.scheduleSvc.Week(ctx, userID, dateKey)
	if err != nil {
		return WeekPlan{}, err
	}

	lessons, err := svc.repo.FilterLessons(ctx, userID, QueryFilter{
		From: wk.Dates[0],
		To:   wk.Dates[len(wk.Dates)-1],
	})
	if err != nil {
		return WeekPlan{}, err
	}

	byDate := make(map[string][]Lesson, len(wk.Dates))
	for _, l := range lessons {
		byDate[l.Date] = append(byDate[l.Date], l)
	}

	plan := WeekPlan{WeekStart: wk.WeekStart, Days: make([]WeekDay, len(wk.Dates))}
	for i, d := range wk.Dates {
		plan.Days[i] = WeekDay{Date: d, SchoolDay: wk.SchoolDays[i], Lessons: byDate[d]}
	}
	return plan, nil
}
