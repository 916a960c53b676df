// Package dummydb provides in-memory repository implementations
// backing the tests.
package dummydb

import (
	"sync"

	"github.com/harmonyhs/harmony/core/calendar"
	"github.com/harmonyhs/harmony/core/child"
	"github.com/harmonyhs/harmony/core/lesson"
	"github.com/harmonyhs/harmony/core/library"
	"github.com/harmonyhs/harmony/core/reading"
	"github.com/harmonyhs/harmony/core/schedule"
	"github.com/harmonyhs/harmony/core/subject"
	"github.com/harmonyhs/harmony/core/user"
)

type (
	DB struct {
		user     *userTable
		child    *childTable
		subject  *subjectTable
		lesson   *lessonTable
		reading  *readingTable
		library  *libraryTable
		schedule *scheduleTable
		calendar *calendarTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	childTable struct {
		sync.RWMutex
		table map[string]*child.Child
	}

	subjectTable struct {
		sync.RWMutex
		subjects  map[string]*subject.Subject
		curricula map[string]*subject.Curriculum
	}

	lessonTable struct {
		sync.RWMutex
		table map[string]*lesson.Lesson
	}

	readingTable struct {
		sync.RWMutex
		table map[string]*reading.Entry
	}

	libraryTable struct {
		sync.RWMutex
		resources map[string]*library.Resource
		booklist  map[string]*library.BooklistEntry
	}

	scheduleTable struct {
		sync.RWMutex
		settings  map[string]*schedule.Settings    // keyed by userID
		overrides map[string]*schedule.DayOverride // keyed by userID+date
	}

	calendarTable struct {
		sync.RWMutex
		events   map[string]*calendar.Event
		children map[string][]string // eventID -> childIDs
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:    &userTable{table: make(map[string]*user.User)},
		child:   &childTable{table: make(map[string]*child.Child)},
		subject: &subjectTable{subjects: make(map[string]*subject.Subject), curricula: make(map[string]*subject.Curriculum)},
		lesson:  &lessonTable{table: make(map[string]*lesson.Lesson)},
		reading: &readingTable{table: make(map[string]*reading.Entry)},
		library: &libraryTable{resources: make(map[string]*library.Resource), booklist: make(map[string]*library.BooklistEntry)},
		schedule: &scheduleTable{
			settings:  make(map[string]*schedule.Settings),
			overrides: make(map[string]*schedule.DayOverride),
		},
		calendar: &calendarTable{events: make(map[string]*calendar.Event), children: make(map[string][]string)},
	}
	return db, nil
}

// Reset wipes all tables. For use between tests.
func (db *DB) Reset() {
	db.user.Lock()
	db.user.table = make(map[string]*user.User)
	db.user.Unlock()

	db.child.Lock()
	db.child.table = make(map[string]*child.Child)
	db.child.Unlock()

	db.subject.Lock()
	db.subject.subjects = make(map[string]*subject.Subject)
	db.subject.curricula = make(map[string]*subject.Curriculum)
	db.subject.Unlock()

	db.lesson.Lock()
	db.lesson.table = make(map[string]*lesson.Lesson)
	db.lesson.Unlock()

	db.reading.Lock()
	db.reading.table = make(map[string]*reading.Entry)
	db.reading.Unlock()

	db.library.Lock()
	db.library.resources = make(map[string]*library.Resource)
	db.library.booklist = make(map[string]*library.BooklistEntry)
	db.library.Unlock()

	db.schedule.Lock()
	db.schedule.settings = make(map[string]*schedule.Settings)
	db.schedule.overrides = make(map[string]*schedule.DayOverride)
	db.schedule.Unlock()

	db.calendar.Lock()
	db.calendar.events = make(map[string]*calendar.Event)
	db.calendar.children = make(map[string][]string)
	db.calendar.Unlock()
}
