package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/harmonyhs/harmony/core"
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
	ServerDeps struct {
		Conf        *core.Config
		Logger      core.Logger
		UserSvc     user.ServiceInterface
		ChildSvc    *child.Service
		SubjectSvc  *subject.Service
		LessonSvc   *lesson.Service
		ReadingSvc  *reading.Service
		LibrarySvc  *library.Service
		ScheduleSvc *schedule.Service
		CalendarSvc *calendar.Service
		Validate    *validator.Validate
		Translator  ut.Translator
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf
	initJWTConfig(conf)

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerUserAPI(v1, jwt, s.deps.UserSvc, conf, s.deps.Validate)
	registerChildAPI(v1, jwt, s.deps.ChildSvc, s.deps.Validate)
	registerSubjectAPI(v1, jwt, s.deps.SubjectSvc, s.deps.Validate)
	registerLessonAPI(v1, jwt, s.deps.LessonSvc, s.deps.Validate)
	registerReadingAPI(v1, jwt, s.deps.ReadingSvc, s.deps.Validate)
	registerLibraryAPI(v1, jwt, s.deps.LibrarySvc, s.deps.Validate)
	registerScheduleAPI(v1, jwt, s.deps.ScheduleSvc, s.deps.Validate)
	registerCalendarAPI(v1, jwt, s.deps.CalendarSvc, s.deps.LessonSvc, conf, s.deps.Validate)
}

func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Addr()); err != nil && err != http.ErrServerClosed {
		s.errs <- err
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) Errors() <-chan error {
	return s.errs
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// signalShutdown lets the error handler trigger a graceful shutdown.
func (s *Server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Harmony API!")
}
