package tests

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/harmonyhs/harmony/apps/api/echo"
	"github.com/harmonyhs/harmony/core"
	"github.com/harmonyhs/harmony/core/calendar"
	"github.com/harmonyhs/harmony/core/child"
	"github.com/harmonyhs/harmony/core/lesson"
	"github.com/harmonyhs/harmony/core/library"
	"github.com/harmonyhs/harmony/core/reading"
	"github.com/harmonyhs/harmony/core/schedule"
	"github.com/harmonyhs/harmony/core/subject"
	"github.com/harmonyhs/harmony/core/user"
	emailsvc "github.com/harmonyhs/harmony/services/email"
	logsvc "github.com/harmonyhs/harmony/services/logger"
	dummydb "github.com/harmonyhs/harmony/storage/database/dummy"
)

var (
	conf *core.Config
	app  *Server
	db   *dummydb.DB

	usrRepo user.Repository

	childSvc    *child.Service
	subjectSvc  *subject.Service
	lessonSvc   *lesson.Service
	readingSvc  *reading.Service
	librarySvc  *library.Service
	scheduleSvc *schedule.Service
	calendarSvc *calendar.Service

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

func TestMain(m *testing.M) {
	conf = core.NewTestConfig()

	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags), conf)
	logger.Enable(false)

	// set up DB & repos
	var err error
	if db, err = dummydb.Open(); err != nil {
		logger.Fatal("opening database", err)
	}
	usrRepo = dummydb.NewUserRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	usrSvc := user.NewServiceMock(usrRepo, mailSvc)
	childSvc = child.NewService(dummydb.NewChildRepository(db))
	subjectSvc = subject.NewService(dummydb.NewSubjectRepository(db))
	readingSvc = reading.NewService(dummydb.NewReadingRepository(db))
	librarySvc = library.NewService(dummydb.NewLibraryRepository(db))
	scheduleSvc = schedule.NewService(dummydb.NewScheduleRepository(db))
	lessonSvc = lesson.NewService(dummydb.NewLessonRepository(db), scheduleSvc)
	calendarSvc = calendar.NewService(dummydb.NewCalendarRepository(db))

	validate, translator := newValidators()

	// set up server
	app = NewServer(ServerDeps{
		Conf:        conf,
		Logger:      logger,
		UserSvc:     usrSvc,
		ChildSvc:    childSvc,
		SubjectSvc:  subjectSvc,
		LessonSvc:   lessonSvc,
		ReadingSvc:  readingSvc,
		LibrarySvc:  librarySvc,
		ScheduleSvc: scheduleSvc,
		CalendarSvc: calendarSvc,
		Validate:    validate,
		Translator:  translator,
	})

	os.Exit(m.Run())
}

func newValidators() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	calendar.InitValidators(validate, translator)
	return validate, translator
}

func resetDB(t *testing.T) {
	t.Helper()
	db.Reset()
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()
	claims := GetUserClaims(usr, conf)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj(): %v", err)
	}
	return data
}

func marshallList(t *testing.T, objs ...interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marshallList(): %v", err)
	}
	return data
}

func unmarshallObj(t *testing.T, data []byte, obj interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, obj); err != nil {
		t.Fatalf("unmarshallObj(): %v", err)
	}
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
